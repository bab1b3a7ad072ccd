package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	adminserrors "booklt/internal/admins/errors"
	"booklt/internal/admins/repository"
	"booklt/pkg/config"
	apperrors "booklt/pkg/errors"
	"booklt/pkg/model"
	"booklt/pkg/sanitizer"
)

const bcryptCost = 10

type AdminService interface {
	Signup(ctx context.Context, signup *model.AdminSignup) (*model.Admin, error)
	Login(ctx context.Context, login *model.AdminLogin) (*model.Admin, error)
}

type adminService struct {
	repo     repository.AdminRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewAdminService(repo repository.AdminRepository, cfg *config.Config) AdminService {
	return &adminService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *adminService) Signup(ctx context.Context, signup *model.AdminSignup) (*model.Admin, error) {
	signup.Name = sanitizer.NormalizeName(signup.Name)
	signup.Email = sanitizer.NormalizeEmail(signup.Email)

	if err := s.validate.Struct(signup); err != nil {
		s.cfg.Log.Warn("Admin signup validation failed", "error", err)
		return nil, apperrors.InvalidInput("Name, email, password and secretCode are required")
	}

	// The signup gate: one process-wide secret, compared in constant time.
	if subtle.ConstantTimeCompare([]byte(signup.SecretCode), []byte(s.cfg.AdminSecretCode)) != 1 {
		s.cfg.Log.Warn("Admin signup rejected: bad secret code", "email", signup.Email)
		return nil, apperrors.Forbidden("Invalid secret code")
	}

	if _, err := s.repo.FindByEmail(ctx, signup.Email); err == nil {
		return nil, apperrors.InvalidInput("Email already registered")
	} else if !errors.Is(err, adminserrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to check existing admins", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	admin := &model.Admin{
		Name:         signup.Name,
		Email:        signup.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, adminserrors.ErrEmailTaken) {
			return nil, apperrors.InvalidInput("Email already registered")
		}
		return nil, apperrors.Internal("Failed to create admin", err)
	}

	s.cfg.Log.Info("Admin registered", "id", admin.ID, "email", admin.Email)
	return admin, nil
}

func (s *adminService) Login(ctx context.Context, login *model.AdminLogin) (*model.Admin, error) {
	login.Email = sanitizer.NormalizeEmail(login.Email)

	if login.Email == "" || login.Password == "" {
		return nil, apperrors.InvalidInput("Email and password are required")
	}

	admin, err := s.repo.FindByEmail(ctx, login.Email)
	if err != nil {
		if errors.Is(err, adminserrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("Admin not found")
		}
		return nil, apperrors.Internal("Failed to look up admin", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(login.Password)); err != nil {
		return nil, apperrors.InvalidInput("Invalid password")
	}

	s.cfg.Log.Info("Admin logged in", "id", admin.ID)
	return admin, nil
}
