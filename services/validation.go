package services

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-dms-backend/apperr"
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z ]+$`)
	validate    = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("letters_spaces", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct runs the validate tags on s and reports the first failure
// as a caller-facing Validation error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return apperr.Internal(err)
	}
	return fieldError(errs[0])
}

func fieldError(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return apperr.Validation(field + " field is required.")
	case "email":
		return apperr.Validation("Please enter a valid email")
	case "letters_spaces":
		return apperr.Validation(field + " may contain only letters and spaces.")
	case "oneof":
		return apperr.Validation(field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ") + ".")
	case "min":
		return apperr.Validation(field + " must be at least " + fe.Param() + " characters.")
	case "max":
		return apperr.Validation(field + " must be at most " + fe.Param() + " characters.")
	default:
		return apperr.Validation(field + " is invalid.")
	}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func lower(s string) string { return strings.ToLower(s) }

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// searchQuery trims q and rejects blank queries.
func searchQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", apperr.Validation("Search query q is required.")
	}
	return q, nil
}
