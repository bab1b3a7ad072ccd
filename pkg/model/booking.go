package model

import "time"

// BookingTiming is the interval actually reserved. Kept as the clock strings
// the client sent; overlap math parses them on the way through.
type BookingTiming struct {
	StartTime string `json:"startTime" bson:"start_time"`
	EndTime   string `json:"endTime" bson:"end_time"`
}

// Booking links a user to an experience for one date/interval. Immutable
// after creation; there is no cancellation path.
type Booking struct {
	ID           string        `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       string        `json:"user" bson:"user"`
	ExperienceID string        `json:"experience" bson:"experience"`
	Date         string        `json:"date" bson:"date"`
	Timing       BookingTiming `json:"timing" bson:"timing"`
	Price        float64       `json:"price" bson:"price"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

// BookingRequest is the POST /book/exp payload.
type BookingRequest struct {
	UserID     string  `json:"userId" validate:"required,mongodb"`
	ExpID      string  `json:"expId" validate:"required,mongodb"`
	Date       string  `json:"date" validate:"required,datestamp"`
	StartTime  string  `json:"startTime" validate:"required,clock"`
	EndTime    string  `json:"endTime" validate:"required,clock"`
	// gte only: a 100 percent promo legitimately books at zero.
	FinalPrice float64 `json:"finalPrice" validate:"gte=0"`
}

// BookingView is a booking hydrated with the user and experience summaries
// the bookings page renders.
type BookingView struct {
	ID         string             `json:"id"`
	User       *UserSummary       `json:"user,omitempty"`
	Experience *ExperienceSummary `json:"experience,omitempty"`
	Date       string             `json:"date"`
	Timing     BookingTiming      `json:"timing"`
	Price      float64            `json:"price"`
	CreatedAt  time.Time          `json:"created_at"`
}
