package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	userserrors "booklt/internal/users/errors"
	"booklt/internal/users/repository"
	"booklt/pkg/config"
	apperrors "booklt/pkg/errors"
	"booklt/pkg/model"
	"booklt/pkg/sanitizer"
)

// bcryptCost matches the work factor the rest of the stack has always used.
const bcryptCost = 10

type UserService interface {
	Signup(ctx context.Context, creds *model.UserCredentials) (*model.User, error)
	Login(ctx context.Context, creds *model.UserCredentials) (*model.User, error)
	GetSummary(ctx context.Context, id string) (*model.UserSummary, error)
}

type userService struct {
	repo     repository.UserRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *userService) Signup(ctx context.Context, creds *model.UserCredentials) (*model.User, error) {
	s.sanitize(creds)
	if creds.Name == "" {
		return nil, apperrors.InvalidInput("Name is required")
	}
	if err := s.validate.Struct(creds); err != nil {
		s.cfg.Log.Warn("User signup validation failed", "error", err)
		return nil, apperrors.InvalidInput("Name, email and password are required")
	}

	if _, err := s.repo.FindByEmail(ctx, creds.Email); err == nil {
		return nil, apperrors.InvalidInput("Email already registered")
	} else if !errors.Is(err, userserrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to check existing users", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:         creds.Name,
		Email:        creds.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrEmailTaken) {
			// Lost the race against a concurrent signup with the same email;
			// the unique index is the authority.
			return nil, apperrors.InvalidInput("Email already registered")
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "email", user.Email)
	return user, nil
}

func (s *userService) Login(ctx context.Context, creds *model.UserCredentials) (*model.User, error) {
	s.sanitize(creds)
	if creds.Email == "" || creds.Password == "" {
		return nil, apperrors.InvalidInput("Email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("User not found")
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperrors.InvalidInput("Invalid password")
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return user, nil
}

func (s *userService) GetSummary(ctx context.Context, id string) (*model.UserSummary, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return &model.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (s *userService) sanitize(creds *model.UserCredentials) {
	creds.Name = sanitizer.NormalizeName(creds.Name)
	creds.Email = sanitizer.NormalizeEmail(creds.Email)
}
