package http

import (
	"reflect"
	"strings"
	"time"

	"collections-backend/internal/domain/disposition"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// disposition code from the closed rule table, case-insensitive
	_ = v.RegisterValidation("dispcode", func(fl validator.FieldLevel) bool {
		_, err := disposition.ParseCode(fl.Field().String())
		return err == nil
	})
	// 24h wall clock, HH:MM
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(disposition.TimeLayout, strings.TrimSpace(fl.Field().String()))
		return err == nil
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "dispcode":
			out = append(out, FieldError{Field: field, Message: "must be a known disposition code"})
		case "hhmm":
			out = append(out, FieldError{Field: field, Message: "must be a time in HH:MM format"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " characters"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

// fromViolations renders domain rule violations in the same shape.
func fromViolations(vs []disposition.Violation) []FieldError {
	out := make([]FieldError, 0, len(vs))
	for _, v := range vs {
		out = append(out, FieldError{Field: v.Field, Message: v.Message})
	}
	return out
}
