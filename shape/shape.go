package shape

// Shape is a structural description capable of validating candidate values.
// Validate returns the validated value (with defaults applied) or an error
// describing the violated constraints. Implementations must not mutate the
// input map.
type Shape interface {
	Validate(value map[string]any) (map[string]any, error)
}

// Any returns a shape that accepts every value unchanged.
func Any() Shape { return anyShape{} }

type anyShape struct{}

func (anyShape) Validate(value map[string]any) (map[string]any, error) {
	if value == nil {
		return map[string]any{}, nil
	}
	return value, nil
}

// Intersect combines shapes into one that requires conformance to all of
// them. Validation runs members in order, each seeing the previous member's
// validated output, so defaults from every member end up in the result.
// Nested intersections are flattened.
func Intersect(shapes ...Shape) Shape {
	flat := make([]Shape, 0, len(shapes))
	for _, s := range shapes {
		if is, ok := s.(intersectShape); ok {
			flat = append(flat, is.members...)
			continue
		}
		if s != nil {
			flat = append(flat, s)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return intersectShape{members: flat}
}

type intersectShape struct {
	members []Shape
}

func (s intersectShape) Validate(value map[string]any) (map[string]any, error) {
	current := value
	for _, m := range s.members {
		validated, err := m.Validate(current)
		if err != nil {
			return nil, err
		}
		current = validated
	}
	if current == nil {
		current = map[string]any{}
	}
	return current, nil
}

// Merge combines two value maps into a new map. Keys from b overwrite
// keys from a. Neither input is mutated.
func Merge(a, b map[string]any) map[string]any {
	merged := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}
