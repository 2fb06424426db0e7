package store

import "time"

// entry is one stored binding: the caller's payload, the key in its original
// shape for enumeration, and the expiration policy.
type entry struct {
	value       any
	originalKey any
	permanent   bool
	maxAge      time.Duration
	expiresAt   time.Time
}

// newEntry builds an entry with its deadline fixed at insertion time.
// The deadline exists only for non-permanent entries with a positive max
// age; it is never extended by reads.
func newEntry(originalKey, value any, permanent bool, maxAge time.Duration) *entry {
	e := &entry{
		value:       value,
		originalKey: originalKey,
		permanent:   permanent,
		maxAge:      maxAge,
	}
	if !permanent && maxAge > 0 {
		e.expiresAt = time.Now().Add(maxAge)
	}
	return e
}

// expired reports whether the entry's deadline has passed. Comparison uses
// the monotonic clock carried by time.Now, so wall-clock adjustments do not
// shorten or extend lifetimes.
func (e *entry) expired(now time.Time) bool {
	return !e.permanent && e.maxAge > 0 && !now.Before(e.expiresAt)
}
