package node

import (
	"context"
	"math"
	"time"

	"github.com/kbukum/nodekit/errors"
	"github.com/kbukum/nodekit/shape"
)

// Retry configuration fields merged into a wrapped node's input shape.
const (
	FieldMaxRetries        = "maxRetries"
	FieldInitialDelayMs    = "initialDelayMs"
	FieldMaxDelayMs        = "maxDelayMs"
	FieldBackoffMultiplier = "backoffMultiplier"
)

// Retry metadata fields merged into a wrapped node's output on success.
const (
	FieldRetriesAttempted = "retriesAttempted"
	FieldTotalDurationMs  = "totalDurationMs"
)

const (
	defaultMaxRetries        = 3
	defaultInitialDelayMs    = 1000.0
	defaultMaxDelayMs        = 30000.0
	defaultBackoffMultiplier = 2.0
)

const (
	retryTypeSuffix        = "_with_retry"
	retryNameSuffix        = " (Retry)"
	retryDescriptionPrefix = "Automatically retries failed executions with exponential backoff. "
)

// RetryConfigShape declares the retry configuration fields. maxRetries
// counts retries, so total attempts = maxRetries + 1.
func RetryConfigShape() shape.Shape {
	return shape.Object(
		shape.Int(FieldMaxRetries).Between(1, 10).Default(defaultMaxRetries).
			Describe("Maximum number of retries after the first attempt"),
		shape.Number(FieldInitialDelayMs).AtLeast(0).Default(defaultInitialDelayMs).
			Describe("Delay before the first retry, in milliseconds"),
		shape.Number(FieldMaxDelayMs).AtLeast(0).Default(defaultMaxDelayMs).
			Describe("Upper bound on any single delay, in milliseconds"),
		shape.Number(FieldBackoffMultiplier).AtLeast(1).Default(defaultBackoffMultiplier).
			Describe("Exponential growth factor applied per retry"),
	)
}

// RetryMetadataShape declares the metadata a retry-wrapped node merges
// into its output on success.
func RetryMetadataShape() shape.Shape {
	return shape.Object(
		shape.Int(FieldRetriesAttempted).AtLeast(0).
			Describe("Number of retries performed before success"),
		shape.Number(FieldTotalDurationMs).AtLeast(0).
			Describe("Wall-clock time from first attempt start to success, in milliseconds"),
	)
}

// retrySettings is the parsed retry configuration of one invocation.
type retrySettings struct {
	maxRetries        int
	initialDelayMs    float64
	maxDelayMs        float64
	backoffMultiplier float64
}

// retrySettingsFrom reads retry configuration out of the input, applying
// defaults for absent fields. Bounds are not re-checked here: the merged
// input shape rejects out-of-range values before the executor runs.
func retrySettingsFrom(input Input) retrySettings {
	s := retrySettings{
		maxRetries:        defaultMaxRetries,
		initialDelayMs:    defaultInitialDelayMs,
		maxDelayMs:        defaultMaxDelayMs,
		backoffMultiplier: defaultBackoffMultiplier,
	}
	if v, ok := intField(input, FieldMaxRetries); ok {
		s.maxRetries = v
	}
	if v, ok := floatField(input, FieldInitialDelayMs); ok {
		s.initialDelayMs = v
	}
	if v, ok := floatField(input, FieldMaxDelayMs); ok {
		s.maxDelayMs = v
	}
	if v, ok := floatField(input, FieldBackoffMultiplier); ok {
		s.backoffMultiplier = v
	}
	return s
}

// backoffDelay computes the wait before retry attempt k (0-indexed):
// min(initialDelayMs * multiplier^k, maxDelayMs).
func backoffDelay(s retrySettings, attempt int) time.Duration {
	delayMs := s.initialDelayMs * math.Pow(s.backoffMultiplier, float64(attempt))
	if delayMs > s.maxDelayMs {
		delayMs = s.maxDelayMs
	}
	return msToDuration(delayMs)
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// WithRetry transforms a definition into one that retries its executor
// with exponential backoff, without the wrapped node needing any retry
// awareness. The result is a new Definition: its input shape is the
// intersection of the wrapped input shape with RetryConfigShape, its
// output shape the intersection with RetryMetadataShape, and its
// executor drives bounded sequential re-invocation of the wrapped
// executor. Attempt k+1 never starts before attempt k has fully settled
// and its delay elapsed. The decorator itself never panics: wrapped
// failures, returned or panicked, are absorbed by the loop, and only the
// final exhaustion failure propagates outward as a returned error.
func WithRetry(def *Definition) *Definition {
	inner := def.Execute
	return &Definition{
		Type:         def.Type + retryTypeSuffix,
		Name:         def.Name + retryNameSuffix,
		Description:  retryDescriptionPrefix + def.Description,
		Category:     def.Category,
		Capabilities: def.Capabilities.clone(),
		InputShape:   shape.Intersect(def.InputShape, RetryConfigShape()),
		OutputShape:  shape.Intersect(def.OutputShape, RetryMetadataShape()),
		Execute: func(ctx context.Context, input Input, ec *Context) (Output, error) {
			settings := retrySettingsFrom(input)
			start := time.Now()
			attempt := 0
			lastError := ""

			for attempt <= settings.maxRetries {
				output, err := safeExecute(ctx, inner, input, ec)
				if err == nil && output != nil {
					return shape.Merge(output, Output{
						FieldRetriesAttempted: attempt,
						FieldTotalDurationMs:  time.Since(start).Milliseconds(),
					}), nil
				}
				if err == nil {
					err = errMissingOutput
				}
				lastError = err.Error()

				if attempt >= settings.maxRetries {
					break
				}
				if werr := waitFor(ctx, backoffDelay(settings, attempt)); werr != nil {
					// Host aborted via the execution context; stop retrying.
					return nil, errors.Timeout("retry backoff").WithCause(werr)
				}
				attempt++
			}

			return nil, errors.Exhausted(attempt, lastError)
		},
	}
}

// waitFor parks the calling goroutine for d without occupying a timer
// past cancellation.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func intField(input Input, key string) (int, bool) {
	switch v := input[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func floatField(input Input, key string) (float64, bool) {
	switch v := input[key].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
