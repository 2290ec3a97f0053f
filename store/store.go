// Package store implements the local key/value store a Chord node owns:
// an in-memory map mutated by local puts (including transfer inflow) and
// by notify-driven transfer outflow.
package store

import (
	"sync"

	"chordring/util"
)

// Store is an in-memory key/value map with no persistence; contents are
// lost on process termination.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

// Get reports found=false for a missing key rather than an error.
func (s *Store) Get(key string) (value string, found bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, found = s.data[key]
	return value, found
}

// Put implements put_local.
func (s *Store) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Delete removes a key. Notify-driven transfer does not call it; Extract
// removes the keys it hands off.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// TransferPredicate reports whether a stored key should move to a new
// owner, given its hashed identifier.
type TransferPredicate func(keyID util.ID) bool

// Extract removes and returns every key/value pair for which predicate
// reports true, computing each key's identifier with util.HashString mod
// 2^m. Used by notify
// to select the range handed off to a new predecessor.
func (s *Store) Extract(m uint, predicate TransferPredicate) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := make(map[string]string)
	for k, v := range s.data {
		if predicate(util.HashString(k, m)) {
			moved[k] = v
			delete(s.data, k)
		}
	}
	return moved
}

// Len reports the number of locally-stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Keys returns a snapshot of the currently-stored key names, for the debug
// endpoint and tests.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
