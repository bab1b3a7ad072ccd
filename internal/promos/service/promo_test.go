package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	promoserrors "booklt/internal/promos/errors"
	"booklt/pkg/config"
	apperrors "booklt/pkg/errors"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

type mockPromoRepository struct {
	createFunc            func(ctx context.Context, promo *model.PromoCode) error
	findByCodeFunc        func(ctx context.Context, code string) (*model.PromoCode, error)
	findAllFunc           func(ctx context.Context) ([]*model.PromoCode, error)
	redeemFunc            func(ctx context.Context, code string, now time.Time) (*model.PromoCode, error)
	deactivateExpiredFunc func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockPromoRepository) Create(ctx context.Context, promo *model.PromoCode) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, promo)
	}
	promo.ID = "68a000000000000000000050"
	return nil
}

func (m *mockPromoRepository) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	if m.findByCodeFunc != nil {
		return m.findByCodeFunc(ctx, code)
	}
	return nil, promoserrors.ErrNotFound
}

func (m *mockPromoRepository) FindAll(ctx context.Context) ([]*model.PromoCode, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockPromoRepository) Redeem(ctx context.Context, code string, now time.Time) (*model.PromoCode, error) {
	if m.redeemFunc != nil {
		return m.redeemFunc(ctx, code, now)
	}
	return nil, promoserrors.ErrNotApplicable
}

func (m *mockPromoRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deactivateExpiredFunc != nil {
		return m.deactivateExpiredFunc(ctx, now)
	}
	return 0, nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatJSON,
			Service: "test",
		}),
		PromoUsageLimit: 100,
	}
}

func TestApply_Success(t *testing.T) {
	var redeemedCode string
	repo := &mockPromoRepository{
		redeemFunc: func(ctx context.Context, code string, now time.Time) (*model.PromoCode, error) {
			redeemedCode = code
			return &model.PromoCode{
				Code:            code,
				DiscountPercent: 20,
				IsActive:        true,
				UsedCount:       5,
				UsageLimit:      100,
			}, nil
		},
	}
	svc := NewPromoService(repo, nil, newTestConfig())

	promo, err := svc.Apply(context.Background(), "  summer20 ")
	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", redeemedCode, "code must be trimmed and upper-cased before lookup")
	assert.Equal(t, 20, promo.DiscountPercent)
}

func TestApply_UnknownCode(t *testing.T) {
	svc := NewPromoService(&mockPromoRepository{}, nil, newTestConfig())

	_, err := svc.Apply(context.Background(), "NOPE")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, 404, appErr.StatusCode())
	assert.Equal(t, "Invalid promo code", appErr.Message)
}

func TestApply_MissingCode(t *testing.T) {
	svc := NewPromoService(&mockPromoRepository{}, nil, newTestConfig())

	_, err := svc.Apply(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.AsAppError(err).StatusCode())
}

func TestApply_RejectionReasons(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name    string
		promo   *model.PromoCode
		message string
	}{
		{
			name:    "inactive",
			promo:   &model.PromoCode{Code: "X", IsActive: false, ExpiryDate: future, UsedCount: 0, UsageLimit: 10},
			message: "Promo code is inactive",
		},
		{
			name:    "expired",
			promo:   &model.PromoCode{Code: "X", IsActive: true, ExpiryDate: past, UsedCount: 0, UsageLimit: 10},
			message: "Promo code expired",
		},
		{
			name:    "usage limit reached",
			promo:   &model.PromoCode{Code: "X", IsActive: true, ExpiryDate: future, UsedCount: 10, UsageLimit: 10},
			message: "Usage limit reached",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockPromoRepository{
				findByCodeFunc: func(ctx context.Context, code string) (*model.PromoCode, error) {
					return tt.promo, nil
				},
			}
			svc := NewPromoService(repo, nil, newTestConfig())

			_, err := svc.Apply(context.Background(), "X")
			require.Error(t, err)
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, 400, appErr.StatusCode())
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestApply_DoesNotCountRejectedUse(t *testing.T) {
	// The conditional redeem already refused; the explain path must only
	// read, never write.
	wrote := false
	repo := &mockPromoRepository{
		createFunc: func(ctx context.Context, promo *model.PromoCode) error {
			wrote = true
			return nil
		},
		findByCodeFunc: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return &model.PromoCode{
				Code:       code,
				IsActive:   true,
				ExpiryDate: time.Now().Add(time.Hour),
				UsedCount:  10,
				UsageLimit: 10,
			}, nil
		},
	}
	svc := NewPromoService(repo, nil, newTestConfig())

	_, err := svc.Apply(context.Background(), "FULL")
	require.Error(t, err)
	assert.False(t, wrote)
}

func TestGetAll_Empty(t *testing.T) {
	svc := NewPromoService(&mockPromoRepository{}, nil, newTestConfig())

	_, err := svc.GetAll(context.Background())
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, 404, appErr.StatusCode())
	assert.Equal(t, "No promo codes found", appErr.Message)
}

func TestCreate_DefaultsAndNormalization(t *testing.T) {
	var stored *model.PromoCode
	repo := &mockPromoRepository{
		createFunc: func(ctx context.Context, promo *model.PromoCode) error {
			stored = promo
			return nil
		},
	}
	svc := NewPromoService(repo, nil, newTestConfig())

	promo, err := svc.Create(context.Background(), &model.PromoCreate{
		Code:            " welcome10 ",
		DiscountPercent: 10,
		ExpiryDate:      time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "WELCOME10", promo.Code)
	assert.True(t, promo.IsActive)
	assert.Equal(t, 0, promo.UsedCount)
	assert.Equal(t, 100, promo.UsageLimit, "usage limit must default from configuration")
}

func TestCreate_RejectsPastExpiry(t *testing.T) {
	svc := NewPromoService(&mockPromoRepository{}, nil, newTestConfig())

	_, err := svc.Create(context.Background(), &model.PromoCreate{
		Code:            "OLD",
		DiscountPercent: 10,
		ExpiryDate:      time.Now().Add(-time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.AsAppError(err).StatusCode())
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := &mockPromoRepository{
		createFunc: func(ctx context.Context, promo *model.PromoCode) error {
			return promoserrors.ErrCodeTaken
		},
	}
	svc := NewPromoService(repo, nil, newTestConfig())

	_, err := svc.Create(context.Background(), &model.PromoCreate{
		Code:            "DUP",
		DiscountPercent: 10,
		ExpiryDate:      time.Now().Add(time.Hour),
	})
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, "Promo code already exists", appErr.Message)
}

func TestDeactivateExpired(t *testing.T) {
	repo := &mockPromoRepository{
		deactivateExpiredFunc: func(ctx context.Context, now time.Time) (int64, error) {
			return 3, nil
		},
	}
	svc := NewPromoService(repo, nil, newTestConfig())

	count, err := svc.DeactivateExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
