package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kmoz000/shared-memory-store/observability"
)

// Handle is a long-lived map key with stable identity. Its human-readable
// representation can be rewritten via Write without changing which entry the
// handle refers to: the table keys handle-addressed entries by the immutable
// ID, so representation changes never move or orphan entries.
//
// Handles are created by Store.CreateHandle and read/written through explicit
// methods rather than any transparent interception.
type Handle struct {
	id  string
	reg *handleRegistry
}

// ID returns the handle's immutable identifier, assigned at creation.
func (h *Handle) ID() string {
	return h.id
}

// Read returns the handle's current value, or nil if the handle is no longer
// registered.
func (h *Handle) Read() any {
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()

	if rec, ok := h.reg.records[h.id]; ok {
		return rec.value
	}
	return nil
}

// Write replaces the handle's current value and its registered string
// representation. This is the only path that changes a handle's resolved
// representation after creation. Writes to an unregistered handle are
// silently dropped.
func (h *Handle) Write(v any) {
	repr := stringValue(v)

	h.reg.mu.Lock()
	rec, ok := h.reg.records[h.id]
	if ok {
		rec.value = v
		rec.repr = repr
	}
	h.reg.mu.Unlock()

	if ok && h.reg.emit != nil {
		h.reg.emit(EventHandleWrite, observability.LevelDebug, map[string]any{"id": h.id})
	}
}

// String renders the handle's live representation, standing in for the
// string form of the value it currently holds.
func (h *Handle) String() string {
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()

	if rec, ok := h.reg.records[h.id]; ok {
		return rec.repr
	}
	return ""
}

type handleRecord struct {
	value any
	repr  string
}

// handleRegistry tracks live handles. It shares the store's guard so a
// representation update can never interleave with a concurrent key
// resolution in Set/Get/Has/Delete.
type handleRegistry struct {
	mu      *sync.Mutex
	records map[string]*handleRecord
	emit    func(observability.EventType, observability.Level, map[string]any)
}

func newHandleRegistry(mu *sync.Mutex) *handleRegistry {
	return &handleRegistry{
		mu:      mu,
		records: make(map[string]*handleRecord),
	}
}

// create registers a fresh handle. UUIDv7 IDs are time-ordered and unique
// within the process lifetime.
func (r *handleRegistry) create(initial any, repr string) *Handle {
	id := uuid.Must(uuid.NewV7()).String()

	r.mu.Lock()
	r.records[id] = &handleRecord{value: initial, repr: repr}
	r.mu.Unlock()

	return &Handle{id: id, reg: r}
}

// lookup returns the live representation for an ID, or ErrHandleNotFound.
func (r *handleRegistry) lookup(id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrHandleNotFound, id)
	}
	return rec.repr, nil
}

// canonical resolves a handle to its storage key: the immutable ID while the
// handle is registered here. A handle from a foreign or torn-down store
// degrades to the string form of its current value instead of failing the
// operation.
func (r *handleRegistry) canonical(h *Handle) string {
	r.mu.Lock()
	_, ok := r.records[h.id]
	r.mu.Unlock()

	if ok {
		return h.id
	}
	return stringValue(h.Read())
}
