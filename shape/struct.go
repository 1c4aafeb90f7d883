package shape

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/kbukum/nodekit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Struct builds a shape backed by a Go struct type. Validation decodes the
// candidate map into T with mapstructure tags and then applies
// `validate:"..."` struct tags. The original map is returned on success so
// undeclared keys survive intersection with other shapes.
func Struct[T any]() Shape {
	return structShape[T]{}
}

type structShape[T any] struct{}

func (structShape[T]) Validate(value map[string]any) (map[string]any, error) {
	var target T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &target,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, errors.Internal(err)
	}
	if err := decoder.Decode(value); err != nil {
		return nil, errors.Validation(err.Error())
	}

	if err := getValidator().Struct(target); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, errors.Validation("validation failed")
		}

		fieldErrors := make([]FieldError, 0, len(validationErrors))
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			fieldName := toSnakeCase(e.Field())
			message := formatValidationError(e)
			fieldErrors = append(fieldErrors, FieldError{Field: fieldName, Message: message})
			messages = append(messages, fieldName+": "+message)
		}

		appErr := errors.Validation(strings.Join(messages, "; "))
		appErr.Details = map[string]any{"fields": fieldErrors}
		return nil, appErr
	}

	if value == nil {
		return map[string]any{}, nil
	}
	return value, nil
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
