package node

import (
	"context"

	"github.com/kbukum/nodekit/errors"
	"github.com/kbukum/nodekit/shape"
)

// Control-flow node types.
const (
	TypeConditional = "conditional"
	TypeDelay       = "delay"
	TypeEnd         = "end"
)

// DefaultBranch is the label selected when no conditional branch matches.
const DefaultBranch = "default"

// Branch pairs a label with the predicate that selects it.
type Branch struct {
	Label string
	When  func(input Input) bool
}

// NewConditional builds a node that evaluates named boolean conditions
// against its input and selects a branch label. Branches are evaluated
// in order; the first match wins. Deterministic, no side effects, no
// suspension.
func NewConditional(branches ...Branch) *Definition {
	return &Definition{
		Type:        TypeConditional,
		Name:        "Conditional",
		Description: "Selects a branch label by evaluating conditions against the input.",
		Category:    CategoryControlFlow,
		InputShape:  shape.Any(),
		OutputShape: shape.Object(shape.String("branch").Required()),
		Execute: func(ctx context.Context, input Input, ec *Context) (Output, error) {
			for _, b := range branches {
				if b.When != nil && b.When(input) {
					return Output{"branch": b.Label}, nil
				}
			}
			return Output{"branch": DefaultBranch}, nil
		},
	}
}

// NewDelay builds a node that suspends execution for a configured
// duration before returning success. The wait parks the goroutine; a
// canceled context aborts it.
func NewDelay() *Definition {
	return &Definition{
		Type:        TypeDelay,
		Name:        "Delay",
		Description: "Pauses the pipeline for the configured duration.",
		Category:    CategoryControlFlow,
		InputShape: shape.Object(
			shape.Number("durationMs").AtLeast(0).Required().
				Describe("How long to pause, in milliseconds"),
		),
		OutputShape: shape.Object(
			shape.Bool("completed").Required(),
			shape.Number("durationMs"),
		),
		Execute: func(ctx context.Context, input Input, ec *Context) (Output, error) {
			durationMs, ok := floatField(input, "durationMs")
			if !ok {
				return nil, errors.MissingField("durationMs")
			}
			if err := waitFor(ctx, msToDuration(durationMs)); err != nil {
				return nil, errors.Timeout("delay").WithCause(err)
			}
			return Output{"completed": true, "durationMs": durationMs}, nil
		},
	}
}

// NewEnd builds the node that terminates a pipeline: a no-op executor
// returning a fixed success result.
func NewEnd() *Definition {
	return &Definition{
		Type:        TypeEnd,
		Name:        "End",
		Description: "Terminates the pipeline.",
		Category:    CategoryControlFlow,
		InputShape:  shape.Any(),
		OutputShape: shape.Object(shape.Bool("completed").Required()),
		Execute: func(ctx context.Context, input Input, ec *Context) (Output, error) {
			return Output{"completed": true}, nil
		},
	}
}
