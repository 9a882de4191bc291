package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zapponejosh/tanggalan/internal/calendar"
)

// Validator wraps go-playground validator with the calendar rules.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the custom rules registered.
func NewValidator() *Validator {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("utc_offset", validateUTCOffset)

	return &Validator{validate: v}
}

// Validate validates a struct and flattens field errors into one message.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", field)
	case "max":
		return fmt.Sprintf("the %s field must not exceed %s characters", field, fe.Param())
	case "utc_offset":
		return fmt.Sprintf("the %s field must look like +0700", field)
	default:
		return fmt.Sprintf("the %s field is invalid", field)
	}
}

// validateUTCOffset accepts fixed offsets written as ±HHMM.
func validateUTCOffset(fl validator.FieldLevel) bool {
	_, err := calendar.ParseOffset(fl.Field().String())
	return err == nil
}
