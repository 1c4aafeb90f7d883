package node

import (
	"context"

	"github.com/google/uuid"
)

// Services is the optional-capability map of an execution context. Values
// are capability interfaces (text generation, contact search, ...) owned
// by the host engine. Different deployments enable different subsets, so
// presence must always be probed before use.
type Services map[string]any

// Context carries ambient per-invocation data into every executor: caller
// identity and the external services the host makes available. The retry
// decorator passes it through unchanged on every attempt. Cancellation
// travels on the context.Context given to the executor, not here.
type Context struct {
	// InvocationID uniquely identifies one executor invocation chain.
	InvocationID uuid.UUID
	// CallerID is an opaque identifier supplied by the host engine.
	CallerID string
	// Services holds the optional named capabilities for this invocation.
	Services Services
	// Approve, when set, lets an executor ask the host for confirmation
	// before a sensitive action.
	Approve func(ctx context.Context, prompt string) (bool, error)
}

// NewContext creates an execution context with a fresh invocation ID.
func NewContext(callerID string, services Services) *Context {
	return &Context{
		InvocationID: uuid.New(),
		CallerID:     callerID,
		Services:     services,
	}
}

// Service returns the named capability, if present. Nil-safe.
func (c *Context) Service(name string) (any, bool) {
	if c == nil || c.Services == nil {
		return nil, false
	}
	svc, ok := c.Services[name]
	return svc, ok
}

// ServiceAs returns the named capability asserted to type T.
// The second return is false when the capability is absent or of
// the wrong type.
func ServiceAs[T any](ec *Context, name string) (T, bool) {
	var zero T
	raw, ok := ec.Service(name)
	if !ok {
		return zero, false
	}
	svc, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return svc, true
}
