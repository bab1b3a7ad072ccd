package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"booklt/internal/bookings/repository"
	"booklt/internal/bookings/validator"
	expsvc "booklt/internal/experiences/service"
	usersvc "booklt/internal/users/service"
	"booklt/pkg/clock"
	"booklt/pkg/config"
	apperrors "booklt/pkg/errors"
	"booklt/pkg/events"
	"booklt/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetForUser(ctx context.Context, userID string) ([]*model.BookingView, error)
}

type bookingService struct {
	repo        repository.BookingRepository
	lockRepo    repository.BookingLockRepository
	validator   *validator.BookingValidator
	users       usersvc.UserService
	experiences expsvc.ExperienceService
	producer    *events.Producer
	cfg         *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	users usersvc.UserService,
	experiences expsvc.ExperienceService,
	producer *events.Producer,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:        repo,
		lockRepo:    lockRepo,
		validator:   validator,
		users:       users,
		experiences: experiences,
		producer:    producer,
		cfg:         cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation(err.Error(), nil)
	}

	// Serialize concurrent attempts on this slot before checking for
	// conflicts; otherwise two requests can both pass the check and both
	// insert.
	lockID, err := s.acquireSlotLock(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	booking := &model.Booking{
		UserID:       req.UserID,
		ExperienceID: req.ExpID,
		Date:         req.Date,
		Timing: model.BookingTiming{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		},
		Price: req.FinalPrice,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, req); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"user", req.UserID,
			"experience", req.ExpID,
			"date", req.Date,
			"error", err,
		)
		return nil, err
	}

	s.producer.Emit(ctx, events.TypeBookingCreated, booking.UserID, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user", booking.UserID,
		"experience", booking.ExperienceID,
		"date", booking.Date,
		"start_time", booking.Timing.StartTime,
	)
	return booking, nil
}

func (s *bookingService) GetForUser(ctx context.Context, userID string) ([]*model.BookingView, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID is required")
	}

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch bookings", "user", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	if len(bookings) == 0 {
		return nil, apperrors.NotFound("No bookings found")
	}

	user, err := s.users.GetSummary(ctx, userID)
	if err != nil {
		s.cfg.Log.Warn("Failed to hydrate booking user", "user", userID, "error", err)
		user = nil
	}

	// Hydrate experience summaries once per distinct experience.
	summaries := make(map[string]*model.ExperienceSummary)
	views := make([]*model.BookingView, 0, len(bookings))
	for _, b := range bookings {
		summary, ok := summaries[b.ExperienceID]
		if !ok {
			summary, err = s.experiences.GetSummary(ctx, b.ExperienceID)
			if err != nil {
				s.cfg.Log.Warn("Failed to hydrate booking experience",
					"booking", b.ID,
					"experience", b.ExperienceID,
					"error", err,
				)
				summary = nil
			}
			summaries[b.ExperienceID] = summary
		}

		views = append(views, &model.BookingView{
			ID:         b.ID,
			User:       user,
			Experience: summary,
			Date:       b.Date,
			Timing:     b.Timing,
			Price:      b.Price,
			CreatedAt:  b.CreatedAt,
		})
	}

	return views, nil
}

// --- Helpers ---

func (s *bookingService) verifyNoConflict(ctx context.Context, req *model.BookingRequest) error {
	newStart, err := clock.Minutes(req.StartTime)
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}
	newEnd, err := clock.Minutes(req.EndTime)
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	// Overbooking across users is allowed unless exclusive slots are
	// switched on, so by default only the requester's own bookings are
	// fetched.
	searchUser := req.UserID
	if s.cfg.BookingExclusiveSlots {
		searchUser = ""
	}

	existing, err := s.repo.FindBySlot(ctx, searchUser, req.ExpID, req.Date)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		start, err := clock.Minutes(b.Timing.StartTime)
		if err != nil {
			continue
		}
		end, err := clock.Minutes(b.Timing.EndTime)
		if err != nil {
			continue
		}
		if !clock.Overlaps(start, end, newStart, newEnd) {
			continue
		}

		if b.UserID == req.UserID {
			return apperrors.Rejected("You've already booked this experience for the selected time slot.")
		}
		return apperrors.Rejected("This slot is already booked by another user.")
	}

	return nil
}

func (s *bookingService) acquireSlotLock(ctx context.Context, req *model.BookingRequest) (string, error) {
	// The lock key deliberately omits the user: all attempts on one slot
	// serialize, which the exclusive-slots policy depends on.
	lockID := fmt.Sprintf("booking_lock_%s_%s_%s_%s", req.ExpID, req.Date, req.StartTime, req.EndTime)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Contended("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
