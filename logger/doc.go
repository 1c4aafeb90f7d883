// Package logger provides structured logging for nodekit on top of zerolog.
// It supports JSON and console output, component tagging, and a package-level
// default logger for code that has no logger wired in.
package logger
