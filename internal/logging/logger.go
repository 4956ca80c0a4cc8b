// Package logging defines the structured logger contract shared by the
// converter, the uploader and the CLI.
package logging

import "strings"

// Logger accepts a message plus alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// FieldsLogger is implemented by loggers that can carry structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// Module names used to scope loggers.
const (
	RootModule   = "md2notion"
	RenderModule = "md2notion.render"
	UploadModule = "md2notion.upload"
)

// Provider hands out named loggers.
type Provider interface {
	GetLogger(name string) Logger
}

// ModuleLogger returns the logger for module, falling back to NoOp when no
// provider is configured. The module name is attached as a field when the
// logger supports it.
func ModuleLogger(provider Provider, module string) Logger {
	if strings.TrimSpace(module) == "" {
		module = RootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// WithFields attaches fields when logger supports them and returns logger
// unchanged otherwise.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil {
		return NoOp()
	}
	if len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return fl.WithFields(copied)
	}
	return logger
}

// OrNoOp returns logger, or NoOp when logger is nil.
func OrNoOp(logger Logger) Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
