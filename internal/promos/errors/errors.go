package errors

import "errors"

var (
	ErrNotFound = errors.New("promo code not found")

	ErrCodeTaken = errors.New("promo code already exists")

	// ErrNotApplicable means the conditional increment matched nothing: the
	// code exists but is inactive, expired, or out of uses.
	ErrNotApplicable = errors.New("promo code not applicable")
)
