package node

import (
	"context"
	"time"

	"github.com/kbukum/nodekit/logger"
	"github.com/kbukum/nodekit/observability"
)

// WithLogging wraps a definition with execution logging.
// Logs: node type, duration, and success/error status.
func WithLogging(log *logger.Logger) Middleware {
	return func(def *Definition) *Definition {
		inner := def.Execute
		nodeType := def.Type
		return def.withExecutor(func(ctx context.Context, input Input, ec *Context) (Output, error) {
			start := time.Now()
			output, err := inner(ctx, input, ec)
			duration := time.Since(start)

			fields := map[string]interface{}{
				logger.FieldNodeType: nodeType,
				logger.FieldDuration: duration.Milliseconds(),
			}
			if ec != nil {
				fields[logger.FieldInvocationID] = ec.InvocationID.String()
			}

			if err != nil {
				fields[logger.FieldError] = err.Error()
				log.Error("node execution failed", fields)
			} else {
				log.Debug("node execution completed", fields)
			}
			return output, err
		})
	}
}

// WithTracing wraps a definition with OpenTelemetry span creation.
// Each execution creates a span named "{prefix}.{nodeType}".
func WithTracing(prefix string) Middleware {
	return func(def *Definition) *Definition {
		inner := def.Execute
		nodeType := def.Type
		return def.withExecutor(func(ctx context.Context, input Input, ec *Context) (Output, error) {
			ctx, span := observability.StartSpan(ctx, prefix+"."+nodeType)
			defer span.End()

			observability.SetSpanAttribute(ctx, observability.AttrNodeType, nodeType)
			if ec != nil {
				observability.SetSpanAttribute(ctx, observability.AttrInvocationID, ec.InvocationID.String())
				observability.SetSpanAttribute(ctx, observability.AttrCallerID, ec.CallerID)
			}

			output, err := inner(ctx, input, ec)
			if err != nil {
				observability.SetSpanError(ctx, err)
			}
			return output, err
		})
	}
}

// WithMetrics wraps a definition with metric recording.
// Records execution count, duration, and errors per node type.
func WithMetrics(metrics *observability.Metrics) Middleware {
	return func(def *Definition) *Definition {
		inner := def.Execute
		nodeType := def.Type
		return def.withExecutor(func(ctx context.Context, input Input, ec *Context) (Output, error) {
			start := time.Now()
			output, err := inner(ctx, input, ec)
			duration := time.Since(start)

			status := "ok"
			if err != nil {
				status = "error"
				metrics.RecordError(ctx, "execute", nodeType)
			}
			metrics.RecordExecution(ctx, nodeType, status, duration)

			return output, err
		})
	}
}
