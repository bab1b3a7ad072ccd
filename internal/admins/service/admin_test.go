package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	adminserrors "booklt/internal/admins/errors"
	"booklt/pkg/config"
	apperrors "booklt/pkg/errors"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

type mockAdminRepository struct {
	createFunc      func(ctx context.Context, admin *model.Admin) error
	findByEmailFunc func(ctx context.Context, email string) (*model.Admin, error)
}

func (m *mockAdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, admin)
	}
	admin.ID = "68a000000000000000000020"
	return nil
}

func (m *mockAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, adminserrors.ErrNotFound
}

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatJSON,
			Service: "test",
		}),
		AdminSecretCode: "let-me-in",
	}
}

func validSignup() *model.AdminSignup {
	return &model.AdminSignup{
		Name:       "Site Admin",
		Email:      "admin@example.com",
		Password:   "sup3rsecret",
		SecretCode: "let-me-in",
	}
}

func TestSignup_Success(t *testing.T) {
	svc := NewAdminService(&mockAdminRepository{}, newTestConfig())

	admin, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.ID == "" {
		t.Error("expected admin ID to be set")
	}
	if admin.PasswordHash == "sup3rsecret" {
		t.Error("password must be hashed before storage")
	}
}

func TestSignup_WrongSecretCode(t *testing.T) {
	created := false
	repo := &mockAdminRepository{
		createFunc: func(ctx context.Context, admin *model.Admin) error {
			created = true
			return nil
		},
	}
	svc := NewAdminService(repo, newTestConfig())

	signup := validSignup()
	signup.SecretCode = "guessing"

	_, err := svc.Signup(context.Background(), signup)
	if err == nil {
		t.Fatal("expected secret code rejection")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 403 {
		t.Errorf("expected 403, got %d", appErr.StatusCode())
	}
	if appErr.Message != "Invalid secret code" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
	if created {
		t.Error("no admin may be created with a wrong secret code")
	}
}

func TestSignup_MissingSecretCode(t *testing.T) {
	svc := NewAdminService(&mockAdminRepository{}, newTestConfig())

	signup := validSignup()
	signup.SecretCode = ""

	_, err := svc.Signup(context.Background(), signup)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if apperrors.AsAppError(err).StatusCode() != 400 {
		t.Errorf("expected 400, got %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := &mockAdminRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Admin, error) {
			return &model.Admin{ID: "68a000000000000000000020", Email: email}, nil
		},
	}
	svc := NewAdminService(repo, newTestConfig())

	_, err := svc.Signup(context.Background(), validSignup())
	if err == nil {
		t.Fatal("expected duplicate email rejection")
	}
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("sup3rsecret"), bcrypt.DefaultCost)
	repo := &mockAdminRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Admin, error) {
			return &model.Admin{
				ID:           "68a000000000000000000020",
				Email:        email,
				PasswordHash: string(hash),
			}, nil
		},
	}
	svc := NewAdminService(repo, newTestConfig())

	admin, err := svc.Login(context.Background(), &model.AdminLogin{
		Email:    "admin@example.com",
		Password: "sup3rsecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.ID == "" {
		t.Error("expected the stored admin back")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	repo := &mockAdminRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Admin, error) {
			return &model.Admin{Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := NewAdminService(repo, newTestConfig())

	_, err := svc.Login(context.Background(), &model.AdminLogin{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	if err == nil {
		t.Fatal("expected login rejection")
	}
}
