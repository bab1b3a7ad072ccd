package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"booklt/internal/bookings/validator"
	expsvc "booklt/internal/experiences/service"
	"booklt/pkg/config"
	mongodb "booklt/pkg/db/mongo"
	apperrors "booklt/pkg/errors"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

type mockBookingRepository struct {
	createFunc     func(ctx context.Context, booking *model.Booking) error
	findByUserFunc func(ctx context.Context, userID string) ([]*model.Booking, error)
	findBySlotFunc func(ctx context.Context, userID, experienceID, date string) ([]*model.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "68a000000000000000000099"
	return nil
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindBySlot(ctx context.Context, userID, experienceID, date string) ([]*model.Booking, error) {
	if m.findBySlotFunc != nil {
		return m.findBySlotFunc(ctx, userID, experienceID, date)
	}
	return nil, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongodb.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockLockRepository struct {
	createFunc func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	deleted    []string
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockUserService struct {
	getSummaryFunc func(ctx context.Context, id string) (*model.UserSummary, error)
}

func (m *mockUserService) Signup(ctx context.Context, creds *model.UserCredentials) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Login(ctx context.Context, creds *model.UserCredentials) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) GetSummary(ctx context.Context, id string) (*model.UserSummary, error) {
	if m.getSummaryFunc != nil {
		return m.getSummaryFunc(ctx, id)
	}
	return &model.UserSummary{ID: id, Name: "Test User", Email: "test@example.com"}, nil
}

type mockExperienceService struct {
	getSummaryFunc func(ctx context.Context, id string) (*model.ExperienceSummary, error)
}

func (m *mockExperienceService) Create(ctx context.Context, input *expsvc.CreateInput) (*model.Experience, error) {
	return nil, errors.New("not implemented")
}

func (m *mockExperienceService) GetAll(ctx context.Context) ([]*model.Experience, error) {
	return nil, errors.New("not implemented")
}

func (m *mockExperienceService) GetDetails(ctx context.Context, id string) (*model.Experience, error) {
	return nil, errors.New("not implemented")
}

func (m *mockExperienceService) GetSummary(ctx context.Context, id string) (*model.ExperienceSummary, error) {
	if m.getSummaryFunc != nil {
		return m.getSummaryFunc(ctx, id)
	}
	return &model.ExperienceSummary{ID: id, Title: "Kayaking", Price: 49.99}, nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatJSON,
			Service: "test",
		}),
		BookingLockTTL: 30 * time.Second,
	}
}

func newTestService(cfg *config.Config, repo *mockBookingRepository, locks *mockLockRepository) BookingService {
	return NewBookingService(
		repo,
		locks,
		validator.NewBookingValidator(cfg.Log),
		&mockUserService{},
		&mockExperienceService{},
		nil,
		cfg,
	)
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		UserID:     "68a000000000000000000001",
		ExpID:      "68a000000000000000000002",
		Date:       "2026-09-15",
		StartTime:  "10:00 AM",
		EndTime:    "11:00 AM",
		FinalPrice: 49.99,
	}
}

func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

func TestCreate_Success(t *testing.T) {
	cfg := newTestConfig()
	locks := &mockLockRepository{}
	svc := newTestService(cfg, &mockBookingRepository{}, locks)

	booking, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ID == "" {
		t.Error("expected booking ID to be set")
	}
	if booking.Timing.StartTime != "10:00 AM" || booking.Timing.EndTime != "11:00 AM" {
		t.Errorf("unexpected timing: %+v", booking.Timing)
	}
	if len(locks.deleted) != 1 {
		t.Errorf("expected lock to be released once, got %d releases", len(locks.deleted))
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	cfg := newTestConfig()
	svc := newTestService(cfg, &mockBookingRepository{}, &mockLockRepository{})

	req := validRequest()
	req.StartTime = "not a time"

	_, err := svc.Create(context.Background(), req)
	if err == nil {
		t.Fatal("expected error for invalid start time")
	}
	if apperrors.AsAppError(err).StatusCode() != 400 {
		t.Errorf("expected 400, got %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestCreate_EndBeforeStart(t *testing.T) {
	cfg := newTestConfig()
	svc := newTestService(cfg, &mockBookingRepository{}, &mockLockRepository{})

	req := validRequest()
	req.StartTime = "11:00 AM"
	req.EndTime = "10:00 AM"

	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Fatal("expected error when end precedes start")
	}
}

func TestCreate_RejectsOverlapForSameUser(t *testing.T) {
	cfg := newTestConfig()
	created := false
	repo := &mockBookingRepository{
		findBySlotFunc: func(ctx context.Context, userID, experienceID, date string) ([]*model.Booking, error) {
			return []*model.Booking{{
				UserID:       "68a000000000000000000001",
				ExperienceID: experienceID,
				Date:         date,
				Timing:       model.BookingTiming{StartTime: "10:30 AM", EndTime: "11:30 AM"},
			}}, nil
		},
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			created = true
			return nil
		},
	}
	locks := &mockLockRepository{}
	svc := newTestService(cfg, repo, locks)

	_, err := svc.Create(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected overlap rejection")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 400 {
		t.Errorf("expected 400, got %d", appErr.StatusCode())
	}
	if appErr.Message != "You've already booked this experience for the selected time slot." {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
	if created {
		t.Error("booking must not be inserted after a conflict")
	}
	if len(locks.deleted) != 1 {
		t.Error("lock must be released even when the booking is rejected")
	}
}

func TestCreate_RejectsExactResubmission(t *testing.T) {
	cfg := newTestConfig()
	repo := &mockBookingRepository{
		findBySlotFunc: func(ctx context.Context, userID, experienceID, date string) ([]*model.Booking, error) {
			return []*model.Booking{{
				UserID: "68a000000000000000000001",
				Timing: model.BookingTiming{StartTime: "10:00 AM", EndTime: "11:00 AM"},
			}}, nil
		},
	}
	svc := newTestService(cfg, repo, &mockLockRepository{})

	if _, err := svc.Create(context.Background(), validRequest()); err == nil {
		t.Fatal("retrying an identical booking must be rejected")
	}
}

func TestCreate_AllowsAdjacentInterval(t *testing.T) {
	cfg := newTestConfig()
	repo := &mockBookingRepository{
		findBySlotFunc: func(ctx context.Context, userID, experienceID, date string) ([]*model.Booking, error) {
			// Ends exactly when the new booking starts.
			return []*model.Booking{{
				UserID: "68a000000000000000000001",
				Timing: model.BookingTiming{StartTime: "9:00 AM", EndTime: "10:00 AM"},
			}}, nil
		},
	}
	svc := newTestService(cfg, repo, &mockLockRepository{})

	if _, err := svc.Create(context.Background(), validRequest()); err != nil {
		t.Fatalf("back-to-back bookings must be allowed: %v", err)
	}
}

func TestCreate_AllowsOtherUsersByDefault(t *testing.T) {
	cfg := newTestConfig()
	var searchedUser string
	repo := &mockBookingRepository{
		findBySlotFunc: func(ctx context.Context, userID, experienceID, date string) ([]*model.Booking, error) {
			searchedUser = userID
			return nil, nil
		},
	}
	svc := newTestService(cfg, repo, &mockLockRepository{})

	if _, err := svc.Create(context.Background(), validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if searchedUser != "68a000000000000000000001" {
		t.Errorf("default policy must scope the conflict check to the requester, searched %q", searchedUser)
	}
}

func TestCreate_ExclusiveSlotsRejectsOtherUser(t *testing.T) {
	cfg := newTestConfig()
	cfg.BookingExclusiveSlots = true

	var searchedUser string
	repo := &mockBookingRepository{
		findBySlotFunc: func(ctx context.Context, userID, experienceID, date string) ([]*model.Booking, error) {
			searchedUser = userID
			return []*model.Booking{{
				UserID: "68a000000000000000000042",
				Timing: model.BookingTiming{StartTime: "10:00 AM", EndTime: "11:00 AM"},
			}}, nil
		},
	}
	svc := newTestService(cfg, repo, &mockLockRepository{})

	_, err := svc.Create(context.Background(), validRequest())
	if err == nil {
		t.Fatal("exclusive slots must reject another user's overlap")
	}
	if searchedUser != "" {
		t.Errorf("exclusive policy must search all users, searched %q", searchedUser)
	}
	if apperrors.AsAppError(err).Message != "This slot is already booked by another user." {
		t.Errorf("unexpected message: %q", apperrors.AsAppError(err).Message)
	}
}

func TestCreate_LockContention(t *testing.T) {
	cfg := newTestConfig()
	locks := &mockLockRepository{
		createFunc: func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
			return nil, duplicateKeyErr()
		},
	}
	svc := newTestService(cfg, &mockBookingRepository{}, locks)

	_, err := svc.Create(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected contention error")
	}
	if apperrors.AsAppError(err).StatusCode() != 409 {
		t.Errorf("expected 409, got %d", apperrors.AsAppError(err).StatusCode())
	}
	if len(locks.deleted) != 0 {
		t.Error("a lock that was never acquired must not be released")
	}
}

func TestGetForUser_Empty(t *testing.T) {
	cfg := newTestConfig()
	svc := newTestService(cfg, &mockBookingRepository{}, &mockLockRepository{})

	_, err := svc.GetForUser(context.Background(), "68a000000000000000000001")
	if err == nil {
		t.Fatal("expected not found for user with no bookings")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != 404 {
		t.Errorf("expected 404, got %d", appErr.StatusCode())
	}
	if appErr.Message != "No bookings found" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestGetForUser_HydratesSummaries(t *testing.T) {
	cfg := newTestConfig()
	repo := &mockBookingRepository{
		findByUserFunc: func(ctx context.Context, userID string) ([]*model.Booking, error) {
			return []*model.Booking{
				{
					ID:           "68a000000000000000000010",
					UserID:       userID,
					ExperienceID: "68a000000000000000000002",
					Date:         "2026-09-15",
					Timing:       model.BookingTiming{StartTime: "10:00 AM", EndTime: "11:00 AM"},
					Price:        49.99,
				},
				{
					ID:           "68a000000000000000000011",
					UserID:       userID,
					ExperienceID: "68a000000000000000000002",
					Date:         "2026-09-16",
					Timing:       model.BookingTiming{StartTime: "2:00 PM", EndTime: "3:00 PM"},
					Price:        39.99,
				},
			}, nil
		},
	}

	expCalls := 0
	svc := NewBookingService(
		repo,
		&mockLockRepository{},
		validator.NewBookingValidator(cfg.Log),
		&mockUserService{},
		&mockExperienceService{
			getSummaryFunc: func(ctx context.Context, id string) (*model.ExperienceSummary, error) {
				expCalls++
				return &model.ExperienceSummary{ID: id, Title: "Kayaking", Price: 49.99}, nil
			},
		},
		nil,
		cfg,
	)

	views, err := svc.GetForUser(context.Background(), "68a000000000000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].User == nil || views[0].User.Name != "Test User" {
		t.Error("expected user summary on the view")
	}
	if views[0].Experience == nil || views[0].Experience.Title != "Kayaking" {
		t.Error("expected experience summary on the view")
	}
	if expCalls != 1 {
		t.Errorf("expected one summary fetch per distinct experience, got %d", expCalls)
	}
}

func TestGetForUser_SurvivesMissingExperience(t *testing.T) {
	cfg := newTestConfig()
	repo := &mockBookingRepository{
		findByUserFunc: func(ctx context.Context, userID string) ([]*model.Booking, error) {
			return []*model.Booking{{
				ID:           "68a000000000000000000010",
				UserID:       userID,
				ExperienceID: "68a000000000000000000002",
			}}, nil
		},
	}

	svc := NewBookingService(
		repo,
		&mockLockRepository{},
		validator.NewBookingValidator(cfg.Log),
		&mockUserService{},
		&mockExperienceService{
			getSummaryFunc: func(ctx context.Context, id string) (*model.ExperienceSummary, error) {
				return nil, apperrors.NotFoundWithID("Experience", id)
			},
		},
		nil,
		cfg,
	)

	views, err := svc.GetForUser(context.Background(), "68a000000000000000000001")
	if err != nil {
		t.Fatalf("a deleted experience must not break the bookings page: %v", err)
	}
	if views[0].Experience != nil {
		t.Error("expected nil experience summary when hydration fails")
	}
}
