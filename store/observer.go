package store

import "github.com/kmoz000/shared-memory-store/observability"

// Store event types emitted to the configured observer. Per-operation events
// are debug level; worker lifecycle events are info level.
const (
	EventSet          observability.EventType = "store.set"
	EventExpireLazy   observability.EventType = "store.expire.lazy"
	EventSweep        observability.EventType = "store.sweep"
	EventClear        observability.EventType = "store.clear"
	EventCleanupStart observability.EventType = "store.cleanup.start"
	EventCleanupStop  observability.EventType = "store.cleanup.stop"
	EventHandleCreate observability.EventType = "store.handle.create"
	EventHandleWrite  observability.EventType = "store.handle.write"
)
