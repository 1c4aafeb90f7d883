package node

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/kbukum/nodekit/errors"
	"github.com/kbukum/nodekit/shape"
)

// errMissingOutput marks a success result that carries no output value.
// Wrapping components treat it as an ordinary failure.
var errMissingOutput = stderrors.New("executor returned success with no output")

// Input is the structured value handed to an executor.
type Input = map[string]any

// Output is the structured value a successful executor produces.
type Output = map[string]any

// Executor implements a node's behavior. A non-nil error is the failure
// variant; a nil error with a non-nil output is the success variant. A nil
// output with a nil error is malformed and treated as failure by wrapping
// components. Executors may panic for truly unexpected errors; wrappers
// treat a panic exactly like a returned failure. All side effects happen
// through services reached via the execution context.
type Executor func(ctx context.Context, input Input, ec *Context) (Output, error)

// Category classifies a node for display purposes. Advisory only.
type Category string

const (
	CategoryAction      Category = "action"
	CategoryIntegration Category = "integration"
	CategoryControlFlow Category = "control-flow"
)

// Capabilities is a set of named boolean flags describing optional
// behaviors a node supports. Purely descriptive; never enforced.
type Capabilities map[string]bool

// Has reports whether the named capability is set.
func (c Capabilities) Has(name string) bool { return c[name] }

func (c Capabilities) clone() Capabilities {
	if c == nil {
		return nil
	}
	out := make(Capabilities, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Definition is the unit of work: a named, typed, described computation
// with declared input and output shapes and an executor. A Definition is
// immutable once constructed; wrapping always produces a new value.
type Definition struct {
	// Type is the stable identifier, unique within a registry.
	Type string
	// Name and Description are display metadata.
	Name        string
	Description string
	// Category is an advisory classification tag.
	Category Category
	// InputShape and OutputShape describe the executor's value contract.
	InputShape  shape.Shape
	OutputShape shape.Shape
	// Capabilities describes optional behaviors the node supports.
	Capabilities Capabilities
	// Execute implements the node's behavior.
	Execute Executor
}

// NewDefinition checks a Definition for structural completeness and fills
// in absent shapes with shape.Any. Shape contents are opaque here.
func NewDefinition(d Definition) (*Definition, error) {
	if err := d.complete(); err != nil {
		return nil, err
	}
	if d.InputShape == nil {
		d.InputShape = shape.Any()
	}
	if d.OutputShape == nil {
		d.OutputShape = shape.Any()
	}
	return &d, nil
}

func (d *Definition) complete() error {
	if d.Type == "" {
		return errors.MissingField("type")
	}
	if d.Name == "" {
		return errors.MissingField("name")
	}
	if d.Execute == nil {
		return errors.MissingField("execute")
	}
	return nil
}

// withExecutor copies the definition with a replacement executor.
// Used by middleware that keeps metadata and shapes intact.
func (d *Definition) withExecutor(exec Executor) *Definition {
	out := *d
	out.Capabilities = d.Capabilities.clone()
	out.Execute = exec
	return &out
}

// safeExecute invokes an executor, converting a panic into a returned
// error: the panic value's message if it is an error, else its string
// conversion.
func safeExecute(ctx context.Context, exec Executor, input Input, ec *Context) (out Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			if rerr, ok := r.(error); ok {
				err = rerr
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	return exec(ctx, input, ec)
}
