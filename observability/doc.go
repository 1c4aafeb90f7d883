// Package observability provides OpenTelemetry tracing and metrics for
// nodekit. It initializes OTLP HTTP exporters and exposes span helpers
// and the metric instruments the node middleware records into.
package observability
