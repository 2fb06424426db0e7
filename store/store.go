// Package store implements an in-process key/value store with optional
// per-entry TTL expiration, a background sweep worker, and identity-stable
// mutable key handles.
//
// Expired entries are reclaimed two ways: lazily, as a side effect of a Get
// or Has that discovers the expiry, and actively, by the periodic sweep
// started with StartCleanupTask. All operations are safe for concurrent use;
// a single mutex guards the entry table and the handle registry jointly,
// trading throughput for simple whole-operation atomicity.
//
//	s := store.New(nil)
//	s.Set("token", payload, store.WithPermanent(false), store.WithMaxAge(5*time.Minute))
//	v, ok := s.Get("token")
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kmoz000/shared-memory-store/observability"
)

// Store is a concurrent map from canonical key strings to entries. It must
// be created with New; the zero value is not usable.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	handles  *handleRegistry
	cleaner  *cleaner
	observer observability.Observer
}

// Option configures a Store after config-driven initialization.
type Option func(*Store)

// WithObserver overrides the default slog observer.
func WithObserver(o observability.Observer) Option {
	return func(s *Store) { s.observer = o }
}

// New creates a Store from configuration. A nil cfg uses defaults. The
// cleanup worker is created stopped; call StartCleanupTask to launch it.
func New(cfg *Config, opts ...Option) *Store {
	conf := DefaultConfig()
	if cfg != nil {
		conf.Merge(cfg)
	}

	s := &Store{
		entries:  make(map[string]*entry),
		cleaner:  newCleaner(conf.Interval()),
		observer: observability.NewSlogObserver(slog.Default()),
	}
	s.handles = newHandleRegistry(&s.mu)
	s.handles.emit = s.emit

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// setOptions control expiration for a single Set. The defaults describe a
// permanent entry.
type setOptions struct {
	permanent bool
	maxAge    time.Duration
}

// SetOption configures a single Set call.
type SetOption func(*setOptions)

// WithPermanent marks the entry as exempt from TTL expiration (the default).
// Pass false together with WithMaxAge to create an expiring entry.
func WithPermanent(p bool) SetOption {
	return func(o *setOptions) { o.permanent = p }
}

// WithMaxAge sets the entry's time-to-live. It only takes effect on
// non-permanent entries; zero means no TTL either way.
func WithMaxAge(d time.Duration) SetOption {
	return func(o *setOptions) { o.maxAge = d }
}

// Set inserts or replaces the binding for key. The entry's deadline is fixed
// here and never extended by reads; re-setting a key replaces both value and
// deadline. Always returns true: key resolution never fails (see
// stringValue), so Set is total.
func (s *Store) Set(key, value any, opts ...SetOption) bool {
	conf := setOptions{permanent: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&conf)
		}
	}

	canonical := s.resolveKey(key)
	e := newEntry(key, value, conf.permanent, conf.maxAge)

	s.mu.Lock()
	s.entries[canonical] = e
	s.mu.Unlock()

	s.emit(EventSet, observability.LevelDebug, map[string]any{
		"key":       canonical,
		"permanent": conf.permanent,
	})
	return true
}

// Get returns the value stored under key. A hit on an expired entry evicts
// it as a side effect and reports absent — a Get can shrink Size.
func (s *Store) Get(key any) (any, bool) {
	canonical := s.resolveKey(key)
	now := time.Now()

	s.mu.Lock()
	e, ok := s.entries[canonical]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	if e.expired(now) {
		delete(s.entries, canonical)
		s.mu.Unlock()
		s.emit(EventExpireLazy, observability.LevelDebug, map[string]any{"key": canonical})
		return nil, false
	}
	v := e.value
	s.mu.Unlock()
	return v, true
}

// Has reports whether key holds a live entry, with the same lazy-eviction
// side effect as Get.
func (s *Store) Has(key any) bool {
	canonical := s.resolveKey(key)
	now := time.Now()

	s.mu.Lock()
	e, ok := s.entries[canonical]
	if !ok {
		s.mu.Unlock()
		return false
	}
	if e.expired(now) {
		delete(s.entries, canonical)
		s.mu.Unlock()
		s.emit(EventExpireLazy, observability.LevelDebug, map[string]any{"key": canonical})
		return false
	}
	s.mu.Unlock()
	return true
}

// Delete removes the binding for key regardless of its expiration state.
// Returns whether something was removed.
func (s *Store) Delete(key any) bool {
	canonical := s.resolveKey(key)

	s.mu.Lock()
	_, ok := s.entries[canonical]
	if ok {
		delete(s.entries, canonical)
	}
	s.mu.Unlock()
	return ok
}

// Clear removes all entries unconditionally. The handle registry is left
// untouched: existing handles remain valid keys. Always returns true.
func (s *Store) Clear() bool {
	s.mu.Lock()
	removed := len(s.entries)
	s.entries = make(map[string]*entry)
	s.mu.Unlock()

	s.emit(EventClear, observability.LevelDebug, map[string]any{"removed": removed})
	return true
}

// Size returns the raw entry count, including expired entries the sweep has
// not reclaimed yet. This is an intentional weak guarantee: the sweep is
// periodic, not immediate, so Size may overcount relative to Keys.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Keys returns the canonical key strings of all live entries. Unlike Get,
// enumeration is read-only: expired entries are filtered out but not
// evicted. Iteration order is unspecified.
func (s *Store) Keys() []string {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.entries))
	for k, e := range s.entries {
		if !e.expired(now) {
			keys = append(keys, k)
		}
	}
	return keys
}

// OriginalKeys returns the keys of all live entries in the exact shape the
// caller passed to Set, not the canonical string. Read-only, like Keys.
func (s *Store) OriginalKeys() []any {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]any, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.expired(now) {
			keys = append(keys, e.originalKey)
		}
	}
	return keys
}

// Values returns the payloads of all live entries. Read-only, like Keys.
func (s *Store) Values() []any {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([]any, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.expired(now) {
			values = append(values, e.value)
		}
	}
	return values
}

// CreateHandle allocates an identity-stable key handle whose representation
// starts as the string form of initial. Returns ErrNilInitialValue when no
// initial value is given.
func (s *Store) CreateHandle(initial any) (*Handle, error) {
	if initial == nil {
		return nil, ErrNilInitialValue
	}

	h := s.handles.create(initial, stringValue(initial))
	s.emit(EventHandleCreate, observability.LevelDebug, map[string]any{"id": h.id})
	return h, nil
}

// LookupHandle returns the live representation registered for a handle ID.
// Returns ErrHandleNotFound for unknown IDs.
func (s *Store) LookupHandle(id string) (string, error) {
	return s.handles.lookup(id)
}

// StartCleanupTask launches the background sweep worker. Returns false when
// the worker is already running; an explicit interval still retunes it for
// its next wait in that case.
func (s *Store) StartCleanupTask(interval ...time.Duration) bool {
	started := s.cleaner.start(s.sweep, interval...)
	if started {
		s.emit(EventCleanupStart, observability.LevelInfo, map[string]any{
			"interval": s.cleaner.currentInterval().String(),
		})
	}
	return started
}

// StopCleanupTask stops the sweep worker, blocking until its goroutine has
// exited. Returns false when already stopped.
func (s *Store) StopCleanupTask() bool {
	stopped := s.cleaner.stop()
	if stopped {
		s.emit(EventCleanupStop, observability.LevelInfo, nil)
	}
	return stopped
}

// Close tears the store down, forcing the sweep worker to stop and join
// before returning. Safe to call multiple times.
func (s *Store) Close() error {
	s.StopCleanupTask()
	return nil
}

// sweep removes every expired entry under the table guard. This is the only
// path that reclaims entries nobody has read since their expiry.
func (s *Store) sweep() {
	now := time.Now()

	s.mu.Lock()
	removed := 0
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.emit(EventSweep, observability.LevelDebug, map[string]any{"removed": removed})
	}
}

func (s *Store) emit(typ observability.EventType, level observability.Level, data map[string]any) {
	s.observer.OnEvent(context.Background(), observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "store",
		Data:      data,
	})
}
