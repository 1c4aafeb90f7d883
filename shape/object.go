package shape

import (
	"fmt"
	"strings"

	"github.com/kbukum/nodekit/errors"
)

// Kind identifies the primitive kind a field accepts.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindObject Kind = "object"
	KindList   Kind = "list"
	KindAny    Kind = "any"
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Field declares a single named field of an object shape.
type Field struct {
	Name        string
	Kind        Kind
	Description string

	required     bool
	min, max     *float64
	enum         []string
	defaultValue any
	hasDefault   bool
}

// String declares a string field.
func String(name string) Field { return Field{Name: name, Kind: KindString} }

// Int declares an integer field. Float values with no fractional part
// are accepted and normalized, since inputs frequently arrive via JSON.
func Int(name string) Field { return Field{Name: name, Kind: KindInt} }

// Number declares a numeric field accepting ints and floats.
func Number(name string) Field { return Field{Name: name, Kind: KindNumber} }

// Bool declares a boolean field.
func Bool(name string) Field { return Field{Name: name, Kind: KindBool} }

// List declares a list field.
func List(name string) Field { return Field{Name: name, Kind: KindList} }

// Nested declares an object-valued field.
func Nested(name string) Field { return Field{Name: name, Kind: KindObject} }

// Required marks the field as required.
func (f Field) Required() Field {
	f.required = true
	return f
}

// Between bounds a numeric field inclusively.
func (f Field) Between(min, max float64) Field {
	f.min = &min
	f.max = &max
	return f
}

// AtLeast sets an inclusive lower bound on a numeric field.
func (f Field) AtLeast(min float64) Field {
	f.min = &min
	return f
}

// OneOf restricts a string field to the given values.
func (f Field) OneOf(values ...string) Field {
	f.enum = values
	return f
}

// Default sets the value used when the field is absent.
func (f Field) Default(v any) Field {
	f.defaultValue = v
	f.hasDefault = true
	return f
}

// Describe attaches display documentation to the field.
func (f Field) Describe(text string) Field {
	f.Description = text
	return f
}

// Object builds a shape from the given field declarations. Keys not
// declared by any field pass through validation untouched.
func Object(fields ...Field) Shape {
	return objectShape{fields: fields}
}

type objectShape struct {
	fields []Field
}

func (s objectShape) Validate(value map[string]any) (map[string]any, error) {
	validated := make(map[string]any, len(value))
	for k, v := range value {
		validated[k] = v
	}

	var violations []FieldError
	for _, f := range s.fields {
		raw, present := validated[f.Name]
		if !present || raw == nil {
			if f.hasDefault {
				validated[f.Name] = f.defaultValue
				continue
			}
			if f.required {
				violations = append(violations, FieldError{Field: f.Name, Message: "is required"})
			}
			continue
		}

		normalized, msg := checkKind(f, raw)
		if msg != "" {
			violations = append(violations, FieldError{Field: f.Name, Message: msg})
			continue
		}
		validated[f.Name] = normalized
	}

	if len(violations) > 0 {
		return nil, violationError(violations)
	}
	return validated, nil
}

// checkKind verifies raw against the field's kind and constraints,
// returning the normalized value or a violation message.
func checkKind(f Field, raw any) (any, string) {
	switch f.Kind {
	case KindAny:
		return raw, ""
	case KindString:
		str, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		if len(f.enum) > 0 && !inEnum(str, f.enum) {
			return nil, "must be one of: " + strings.Join(f.enum, ", ")
		}
		return str, ""
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return b, ""
	case KindInt:
		n, ok := asInt(raw)
		if !ok {
			return nil, "must be an integer"
		}
		if msg := checkBounds(f, float64(n)); msg != "" {
			return nil, msg
		}
		return n, ""
	case KindNumber:
		n, ok := asFloat(raw)
		if !ok {
			return nil, "must be a number"
		}
		if msg := checkBounds(f, n); msg != "" {
			return nil, msg
		}
		return raw, ""
	case KindObject:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, "must be an object"
		}
		return m, ""
	case KindList:
		l, ok := raw.([]any)
		if !ok {
			return nil, "must be a list"
		}
		return l, ""
	default:
		return raw, ""
	}
}

func checkBounds(f Field, n float64) string {
	if f.min != nil && f.max != nil && (n < *f.min || n > *f.max) {
		return fmt.Sprintf("must be between %v and %v", *f.min, *f.max)
	}
	if f.min != nil && n < *f.min {
		return fmt.Sprintf("must be at least %v", *f.min)
	}
	if f.max != nil && n > *f.max {
		return fmt.Sprintf("must be %v or less", *f.max)
	}
	return ""
}

func inEnum(v string, enum []string) bool {
	for _, e := range enum {
		if v == e {
			return true
		}
	}
	return false
}

func asInt(raw any) (int, bool) {
	switch n := raw.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case float32:
		if n == float32(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func asFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// violationError builds the validation AppError carrying the field list.
func violationError(violations []FieldError) error {
	messages := make([]string, len(violations))
	for i, v := range violations {
		messages[i] = v.Field + ": " + v.Message
	}
	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": violations}
	return appErr
}
