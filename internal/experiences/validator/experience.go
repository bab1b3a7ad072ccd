package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"booklt/pkg/clock"
	"booklt/pkg/logger"
	"booklt/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ExperienceValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewExperienceValidator(log *logger.Logger) *ExperienceValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock", validateClock); err != nil {
		log.Fatal("Failed to register 'clock' validator", "error", err)
	}
	if err := v.RegisterValidation("datestamp", validateDatestamp); err != nil {
		log.Fatal("Failed to register 'datestamp' validator", "error", err)
	}

	return &ExperienceValidator{
		validate: v,
		logger:   log,
	}
}

func validateClock(fl validator.FieldLevel) bool {
	return clock.IsValid(fl.Field().String())
}

func validateDatestamp(fl validator.FieldLevel) bool {
	return clock.IsValidDate(fl.Field().String())
}

func (v *ExperienceValidator) Validate(exp *model.Experience) error {
	if err := v.validate.Struct(exp); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	// Struct tags cannot see across a timing pair; check window order here.
	for _, slot := range exp.Slots {
		for _, timing := range slot.Timings {
			start, _ := clock.Minutes(timing.StartTime)
			end, _ := clock.Minutes(timing.EndTime)
			if end <= start {
				return ValidationErrors{
					ValidationError{
						Field:   "Timings",
						Message: fmt.Sprintf("timing %s - %s on %s ends before it starts", timing.StartTime, timing.EndTime, slot.Date),
					},
				}
			}
		}
	}

	return nil
}

func (v *ExperienceValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "clock":
			message = fmt.Sprintf("%s must be a clock time like \"10:00 AM\"", err.Field())
		case "datestamp":
			message = fmt.Sprintf("%s must be a date like \"2025-11-05\"", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
