package core

import "fmt"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// StdoutLogger implements Logger by writing to stdout
type StdoutLogger struct{}

func (sl *StdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewStdoutLogger creates a logger that writes to stdout
func NewStdoutLogger() Logger {
	return &StdoutLogger{}
}

// NopLogger discards all log output, useful in tests
type NopLogger struct{}

func (nl *NopLogger) Printf(format string, args ...interface{}) {}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() Logger {
	return &NopLogger{}
}
