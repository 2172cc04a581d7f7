package translate

import (
	"context"
	"log/slog"

	"resultguard/internal/shared"
)

// Severity is the log level assigned by a classification rule.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	default:
		return "error"
	}
}

// Level maps the severity onto slog.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Record is the log entry emitted for one translation.
type Record struct {
	Severity Severity
	Kind     shared.Kind
	Code     int
	Message  string

	// Diagnostic holds the error chain and captured stack. It is only set
	// for SeverityError.
	Diagnostic string
}

// Logger receives one record per translation.
type Logger interface {
	Log(ctx context.Context, rec Record)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(ctx context.Context, rec Record)

// Log implements Logger.
func (f LoggerFunc) Log(ctx context.Context, rec Record) { f(ctx, rec) }

type nopLogger struct{}

func (nopLogger) Log(context.Context, Record) {}

// SlogLogger writes records to a slog.Logger.
type SlogLogger struct {
	L *slog.Logger
}

// NewSlogLogger returns a Logger backed by l, or slog.Default() when l is nil.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{L: l}
}

// Log implements Logger.
func (s *SlogLogger) Log(ctx context.Context, rec Record) {
	attrs := []slog.Attr{
		slog.String("kind", rec.Kind.String()),
		slog.Int("code", rec.Code),
	}
	if rec.Diagnostic != "" {
		attrs = append(attrs, slog.String("diagnostic", rec.Diagnostic))
	}
	s.L.LogAttrs(ctx, rec.Severity.Level(), rec.Message, attrs...)
}
