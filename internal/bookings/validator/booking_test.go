package validator

import (
	"testing"

	"booklt/pkg/logger"
	"booklt/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "test",
	}))
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

func TestValidate_Valid(t *testing.T) {
	if err := newTestValidator().Validate(validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *model.BookingRequest)
	}{
		{"missing user", func(req *model.BookingRequest) { req.UserID = "" }},
		{"malformed user id", func(req *model.BookingRequest) { req.UserID = "not-an-object-id" }},
		{"missing experience", func(req *model.BookingRequest) { req.ExpID = "" }},
		{"missing date", func(req *model.BookingRequest) { req.Date = "" }},
		{"bad date format", func(req *model.BookingRequest) { req.Date = "Sept 15" }},
		{"bad start time", func(req *model.BookingRequest) { req.StartTime = "10am" }},
		{"bad end time", func(req *model.BookingRequest) { req.EndTime = "24:00 PM" }},
		{"negative final price", func(req *model.BookingRequest) { req.FinalPrice = -1 }},
		{"end equals start", func(req *model.BookingRequest) { req.EndTime = req.StartTime }},
		{"end before start", func(req *model.BookingRequest) {
			req.StartTime = "2:00 PM"
			req.EndTime = "1:00 PM"
		}},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			if err := v.Validate(req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
