// Package stash is a small read-once store with a TTL: values are set
// under a key, consumed at most once, and expire on their own. It backs
// the checkout flow's in-flight submission guard and mirrors the
// confirmation page's consume-then-clear contract for receipt tokens.
package stash

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

type Stash struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func New(ttl time.Duration) *Stash {
	return &Stash{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// PutOnce stores value under key unless a live value is already there.
// It reports whether the put took effect, which makes it usable as a
// single-flight marker.
func (s *Stash) PutOnce(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[key]; ok && s.now().Before(existing.expiresAt) {
		return false
	}
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
	return true
}

// Consume returns the value for key and removes it. A second Consume for
// the same key misses.
func (s *Stash) Consume(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[key]
	if !ok {
		return "", false
	}
	delete(s.entries, key)
	if s.now().After(existing.expiresAt) {
		return "", false
	}
	return existing.value, true
}

// Clear removes key without reading it.
func (s *Stash) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
