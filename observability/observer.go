// Package observability provides event-based observability for the store
// core. Subsystems emit structured events and observers route them to
// logging or test capture, keeping the core decoupled from any logging
// backend. Level values map directly onto slog levels.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level represents event severity. The numeric values match log/slog so
// emission requires no translation.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the severity text for the level.
func (l Level) String() string {
	switch {
	case l < LevelInfo:
		return "DEBUG"
	case l < LevelWarn:
		return "INFO"
	case l < LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// SlogLevel maps this level to the corresponding slog.Level for log emission.
func (l Level) SlogLevel() slog.Level {
	return slog.Level(l)
}

// EventType identifies the kind of event. Each subsystem defines its own
// constants using this type (e.g., "store.set", "store.sweep").
type EventType string

// Event is an observability event emitted by subsystems. Type is the event
// name, Source names the emitting subsystem, and Data carries event-specific
// attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events from subsystems for logging, tracing, or metrics.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
