package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = NewValidator()
}

// NewValidator reports fields by their json name so messages match the payload keys.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FormatValidationError turns the first failed rule into a caller-facing message.
func FormatValidationError(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}
	first := errs[0]
	switch first.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", first.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", first.Field(), strings.ReplaceAll(first.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", first.Field())
	}
}
