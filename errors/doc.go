// Package errors provides unified error handling for nodekit.
// It implements structured error types with machine-readable codes,
// retryable detection, and detail maps that survive node composition.
package errors
