package errors

import (
	"context"
)

// Tracker reports errors and messages to an external tracking backend.
// Production wires sentry; everything else gets the noop implementation,
// so callers never branch on whether tracking is configured.
type Tracker interface {
	// CaptureError reports err with the given searchable tags
	CaptureError(ctx context.Context, err error, tags map[string]string) error

	// CaptureMessage reports a standalone message at the given severity
	CaptureMessage(ctx context.Context, message string, level Level, tags map[string]string) error

	// Flush blocks until buffered events are delivered or ctx expires
	Flush(ctx context.Context) error
}

// Level is the severity attached to a captured message
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

func (l Level) String() string {
	return string(l)
}
