package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	promoserrors "booklt/internal/promos/errors"
	"booklt/internal/promos/repository"
	"booklt/pkg/config"
	apperrors "booklt/pkg/errors"
	"booklt/pkg/events"
	"booklt/pkg/model"
	"booklt/pkg/sanitizer"
)

type PromoService interface {
	Apply(ctx context.Context, code string) (*model.PromoCode, error)
	GetAll(ctx context.Context) ([]*model.PromoCode, error)
	Create(ctx context.Context, input *model.PromoCreate) (*model.PromoCode, error)
	DeactivateExpired(ctx context.Context) (int64, error)
}

type promoService struct {
	repo     repository.PromoRepository
	validate *validator.Validate
	producer *events.Producer
	cfg      *config.Config
}

func NewPromoService(repo repository.PromoRepository, producer *events.Producer, cfg *config.Config) PromoService {
	return &promoService{
		repo:     repo,
		validate: validator.New(),
		producer: producer,
		cfg:      cfg,
	}
}

// Apply redeems a promo code, counting the use. The increment is conditional
// and atomic, so the usage limit holds under concurrent redemptions; when it
// matches nothing the code is re-read once just to report why.
func (s *promoService) Apply(ctx context.Context, code string) (*model.PromoCode, error) {
	code = sanitizer.NormalizePromoCode(code)
	if code == "" {
		return nil, apperrors.InvalidInput("Promo code is required")
	}

	now := time.Now()
	promo, err := s.repo.Redeem(ctx, code, now)
	if err == nil {
		s.producer.Emit(ctx, events.TypePromoApplied, promo.Code, promo)
		s.cfg.Log.Info("Promo code applied",
			"code", promo.Code,
			"discount_percent", promo.DiscountPercent,
			"used_count", promo.UsedCount,
		)
		return promo, nil
	}
	if !errors.Is(err, promoserrors.ErrNotApplicable) {
		s.cfg.Log.Error("Failed to redeem promo code", "code", code, "error", err)
		return nil, apperrors.Internal("Failed to apply promo code", err)
	}

	return nil, s.explainRejection(ctx, code, now)
}

// explainRejection distinguishes why the conditional redeem matched nothing.
// The state may have moved again since the redeem attempt; whichever reason
// holds now is close enough for the client.
func (s *promoService) explainRejection(ctx context.Context, code string, now time.Time) error {
	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promoserrors.ErrNotFound) {
			return apperrors.NotFound("Invalid promo code")
		}
		return apperrors.Internal("Failed to look up promo code", err)
	}

	switch {
	case !promo.IsActive:
		return apperrors.Rejected("Promo code is inactive")
	case !promo.ExpiryDate.After(now):
		return apperrors.Rejected("Promo code expired")
	default:
		return apperrors.Rejected("Usage limit reached")
	}
}

func (s *promoService) GetAll(ctx context.Context) ([]*model.PromoCode, error) {
	promos, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch promo codes", "error", err)
		return nil, apperrors.Internal("Failed to retrieve promo codes", err)
	}

	if len(promos) == 0 {
		return nil, apperrors.NotFound("No promo codes found")
	}

	return promos, nil
}

func (s *promoService) Create(ctx context.Context, input *model.PromoCreate) (*model.PromoCode, error) {
	input.Code = sanitizer.NormalizePromoCode(input.Code)
	if err := s.validate.Struct(input); err != nil {
		s.cfg.Log.Warn("Promo creation validation failed", "error", err)
		return nil, apperrors.InvalidInput("Code, discount percent and expiry date are required")
	}
	if !input.ExpiryDate.After(time.Now()) {
		return nil, apperrors.InvalidInput("Expiry date must be in the future")
	}

	promo := &model.PromoCode{
		Code:            input.Code,
		DiscountPercent: input.DiscountPercent,
		ExpiryDate:      input.ExpiryDate,
		IsActive:        true,
		UsedCount:       0,
		UsageLimit:      s.cfg.PromoUsageLimit,
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		if errors.Is(err, promoserrors.ErrCodeTaken) {
			return nil, apperrors.InvalidInput("Promo code already exists")
		}
		return nil, apperrors.Internal("Failed to create promo code", err)
	}

	s.cfg.Log.Info("Promo code created",
		"code", promo.Code,
		"discount_percent", promo.DiscountPercent,
		"expiry_date", promo.ExpiryDate,
		"usage_limit", promo.UsageLimit,
	)
	return promo, nil
}

func (s *promoService) DeactivateExpired(ctx context.Context) (int64, error) {
	count, err := s.repo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		return 0, apperrors.Internal("Failed to deactivate expired promo codes", err)
	}
	return count, nil
}
