package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	userserrors "booklt/internal/users/errors"
	"booklt/pkg/config"
	apperrors "booklt/pkg/errors"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

type mockUserRepository struct {
	createFunc      func(ctx context.Context, user *model.User) error
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "68a000000000000000000001"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, userserrors.ErrNotFound
}

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatJSON,
			Service: "test",
		}),
	}
}

func TestSignup_HashesPassword(t *testing.T) {
	var stored *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			stored = user
			return nil
		},
	}
	svc := NewUserService(repo, newTestConfig())

	user, err := svc.Signup(context.Background(), &model.UserCredentials{
		Name:     "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "hunter2222",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.PasswordHash == "hunter2222" {
		t.Fatal("password must never be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2222")); err != nil {
		t.Errorf("stored hash does not verify against the original password: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("email must be normalized, got %q", user.Email)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "68a000000000000000000001", Email: email}, nil
		},
	}
	svc := NewUserService(repo, newTestConfig())

	_, err := svc.Signup(context.Background(), &model.UserCredentials{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter2222",
	})
	if err == nil {
		t.Fatal("expected duplicate email rejection")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 400 {
		t.Errorf("expected 400, got %d", appErr.StatusCode())
	}
}

func TestSignup_LostRaceAgainstConcurrentSignup(t *testing.T) {
	// The pre-check missed, but the unique index caught the duplicate.
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrEmailTaken
		},
	}
	svc := NewUserService(repo, newTestConfig())

	_, err := svc.Signup(context.Background(), &model.UserCredentials{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter2222",
	})
	if err == nil {
		t.Fatal("expected duplicate email rejection")
	}
	if apperrors.AsAppError(err).Message != "Email already registered" {
		t.Errorf("unexpected message: %q", apperrors.AsAppError(err).Message)
	}
}

func TestSignup_MissingFields(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, newTestConfig())

	_, err := svc.Signup(context.Background(), &model.UserCredentials{
		Name: "Jane",
	})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if apperrors.AsAppError(err).StatusCode() != 400 {
		t.Errorf("expected 400, got %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2222"), bcrypt.DefaultCost)
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           "68a000000000000000000001",
				Email:        email,
				PasswordHash: string(hash),
			}, nil
		},
	}
	svc := NewUserService(repo, newTestConfig())

	user, err := svc.Login(context.Background(), &model.UserCredentials{
		Email:    "jane@example.com",
		Password: "hunter2222",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected the stored user back")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := NewUserService(repo, newTestConfig())

	_, err := svc.Login(context.Background(), &model.UserCredentials{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	if err == nil {
		t.Fatal("expected login rejection")
	}
	if apperrors.AsAppError(err).Message != "Invalid password" {
		t.Errorf("unexpected message: %q", apperrors.AsAppError(err).Message)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, newTestConfig())

	_, err := svc.Login(context.Background(), &model.UserCredentials{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if err == nil {
		t.Fatal("expected login rejection")
	}
	if apperrors.AsAppError(err).Message != "User not found" {
		t.Errorf("unexpected message: %q", apperrors.AsAppError(err).Message)
	}
}
