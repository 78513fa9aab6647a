package helper

import (
	"context"
	"errors"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"programpro_backend/internals/helpers/schema"
)

// Service-level errors shared by every feature. Controllers turn them into
// responses through FromServiceError.
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrConflict    = errors.New("conflict")
	ErrBatchFailed = errors.New("every item in the batch failed")
)

// Validate is the shared validator instance for request DTOs. Field names
// in its errors are the json names.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationErrors converts validator output to field -> messages.
func ValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["body"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := toSnake(fe.Field())
		out[field] = append(out[field], validationMessage(fe))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// toSnake turns a Go field name (DurationMinutes) into its json key.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BindAndValidate parses the body into dst and runs struct validation.
// The returned error is ready for FromServiceError.
func BindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return Validate.Struct(dst)
}

// FromServiceError writes the envelope matching err.
func FromServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, ValidationErrors(err))
	}

	var fieldErr *schema.FieldError
	if errors.As(err, &fieldErr) {
		field := fieldErr.Field
		if field == "" {
			field = "record"
		}
		return JsonValidationError(c, map[string][]string{field: {fieldErr.Reason}})
	}

	switch {
	case errors.Is(err, schema.ErrInvalid), errors.Is(err, ErrBatchFailed):
		return JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return JsonError(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, ErrForbidden):
		return JsonError(c, fiber.StatusForbidden, "Forbidden")
	case errors.Is(err, ErrConflict):
		return JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return JsonError(c, fiber.StatusServiceUnavailable, "Request timed out")
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// ErrorHandler is the fiber.Config.ErrorHandler: any error a handler or
// middleware returns ends up in the standard envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromServiceError(c, err)
}
