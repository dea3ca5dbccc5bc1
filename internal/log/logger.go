// Package log wraps log/slog with a component attribute so every line can
// be traced back to the part of the bot that emitted it.
package log

import (
	"log/slog"
	"os"
)

// Logger tags every record with a component name.
type Logger struct {
	*slog.Logger
	component string
}

// New creates a component-tagged logger on top of base. A nil base uses a
// text handler on stdout at Info level.
func New(base *slog.Logger, component string) *Logger {
	if base == nil {
		base = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return &Logger{
		Logger:    base.With(FieldComponent, component),
		component: component,
	}
}

// With returns a new logger carrying extra attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		component: l.component,
	}
}

// WithComponent returns a logger for a different component sharing the
// same handler.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(FieldComponent, component),
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}
