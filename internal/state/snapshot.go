// internal/state/snapshot.go

// Package state provides a sequenced snapshot holder for collections that
// are replaced wholesale on reload. Reloads may race; the holder applies
// last-requested-wins by discarding completions whose reload started before
// the one already applied.
package state

import "sync"

// Snapshot holds one value of T replaced atomically by sequenced reloads.
// The zero value is ready to use and empty.
type Snapshot[T any] struct {
	mu      sync.Mutex
	nextSeq uint64
	applied uint64
	value   T
	valid   bool
}

// Begin registers a reload and returns its sequence number. Pass it to
// Complete with the reload's result.
func (s *Snapshot[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// Complete applies the reload result unless a later-begun reload already
// completed, in which case the value is discarded and Complete reports false.
func (s *Snapshot[T]) Complete(seq uint64, value T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.value = value
	s.valid = true
	return true
}

// Get returns the current value and whether any reload has completed.
func (s *Snapshot[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.valid
}
