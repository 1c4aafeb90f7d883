package node

import (
	"context"
	"time"
)

// Status discriminates the outcome of a node invocation.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Result holds the discriminated outcome of a single node invocation.
// Exactly one of Output and Error is populated: a completed result
// carries a shape-conforming output and an empty error, a failed result
// carries an error description and no output.
type Result struct {
	Status   Status
	Output   Output
	Error    string
	Duration time.Duration
}

// Completed reports whether the invocation succeeded.
func (r Result) Completed() bool { return r.Status == StatusCompleted }

func completed(output Output, d time.Duration) Result {
	return Result{Status: StatusCompleted, Output: output, Duration: d}
}

func failed(err error, d time.Duration) Result {
	return Result{Status: StatusFailed, Error: err.Error(), Duration: d}
}

// Invoke runs a definition's executor the way a host engine does: the
// input is validated against the declared input shape, the executor runs
// with panics converted to failures, and on success the output is
// validated against the declared output shape. The returned Result never
// carries both an output and an error.
func Invoke(ctx context.Context, def *Definition, input Input, ec *Context) Result {
	start := time.Now()

	validated, err := def.InputShape.Validate(input)
	if err != nil {
		return failed(err, time.Since(start))
	}

	output, err := safeExecute(ctx, def.Execute, validated, ec)
	if err != nil {
		return failed(err, time.Since(start))
	}
	if output == nil {
		return failed(errMissingOutput, time.Since(start))
	}

	checked, err := def.OutputShape.Validate(output)
	if err != nil {
		return failed(err, time.Since(start))
	}
	return completed(checked, time.Since(start))
}
