// Package observability carries structured lifecycle events out of the hub
// and its modules. Level values follow OpenTelemetry SeverityNumber ranges so
// events can be forwarded to an OTel collector without translation.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level is an event severity in OTel SeverityNumber units.
type Level int

const (
	LevelVerbose Level = 5  // OTel DEBUG (5-8)
	LevelInfo    Level = 9  // OTel INFO (9-12)
	LevelWarning Level = 13 // OTel WARN (13-16)
	LevelError   Level = 17 // OTel ERROR (17-20)
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel maps the level onto the nearest slog.Level.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType names an event. Packages declare their own constants, for
// example "hub.job.dispatch".
type EventType string

// Event is one observable occurrence. It carries execution metadata, never
// job payloads.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events. Implementations must not block the caller for
// long and must not alter control flow.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// Emit stamps the event with the current time when it has none and hands it
// to obs. A nil observer discards the event.
func Emit(ctx context.Context, obs Observer, event Event) {
	if obs == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	obs.OnEvent(ctx, event)
}
