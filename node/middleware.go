package node

// Middleware transforms a Definition by wrapping it. The returned
// Definition typically delegates to the original executor while adding
// cross-cutting behavior (retry, logging, metrics, tracing). Middleware
// never mutates the wrapped Definition.
type Middleware func(*Definition) *Definition

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (executes first on the
// way in, last on the way out).
//
// Chain(a, b, c)(def) is equivalent to a(b(c(def))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner *Definition) *Definition {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}
