package model

import "time"

// Timing is a concrete start/end window inside a slot. Times are clock
// strings like "10:00 AM", matching what clients submit and display.
type Timing struct {
	StartTime string `json:"startTime" bson:"start_time" validate:"required,clock"`
	EndTime   string `json:"endTime" bson:"end_time" validate:"required,clock"`
	Available bool   `json:"available" bson:"available"`
}

// Slot bundles the timings offered on one calendar date ("2006-01-02").
type Slot struct {
	Date    string   `json:"date" bson:"date" validate:"required,datestamp"`
	Timings []Timing `json:"timings" bson:"timings" validate:"required,min=1,dive"`
}

// Experience is a bookable activity posted by an admin.
type Experience struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Description string    `json:"description" bson:"description" validate:"required"`
	Image       string    `json:"image" bson:"image"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	Slots       []Slot    `json:"slots" bson:"slots" validate:"required,min=1,dive"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ExperienceSummary is the slice of an experience embedded in hydrated
// booking responses: the title, price, and image the bookings page renders.
type ExperienceSummary struct {
	ID    string  `json:"id" bson:"_id"`
	Title string  `json:"title" bson:"title"`
	Price float64 `json:"price" bson:"price"`
	Image string  `json:"image" bson:"image"`
}
