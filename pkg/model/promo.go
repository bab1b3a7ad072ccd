package model

import "time"

// PromoCode is a discount token. Codes are stored upper-cased so lookups are
// case-insensitive. UsedCount only ever moves through a conditional atomic
// increment, never a read-modify-write.
type PromoCode struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty"`
	Code            string    `json:"code" bson:"code" validate:"required,min=2,max=32"`
	DiscountPercent int       `json:"discountPercent" bson:"discount_percent" validate:"required,min=1,max=100"`
	ExpiryDate      time.Time `json:"expiryDate" bson:"expiry_date" validate:"required"`
	IsActive        bool      `json:"isActive" bson:"is_active"`
	UsedCount       int       `json:"usedCount" bson:"used_count"`
	UsageLimit      int       `json:"usageLimit" bson:"usage_limit"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// PromoCreate is the POST /promo/create payload.
type PromoCreate struct {
	Code            string    `json:"code" validate:"required,min=2,max=32"`
	DiscountPercent int       `json:"discountPercent" validate:"required,min=1,max=100"`
	ExpiryDate      time.Time `json:"expiryDate" validate:"required"`
}
