// Package session keeps server-held conversation contexts for clients that
// track a session id instead of echoing the dialog context themselves.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/sonnyweather/weather-dialog/internal/dialog"
)

// ErrNotFound is returned when no context exists for a session id.
var ErrNotFound = errors.New("no conversation for session")

type entry struct {
	conv      *dialog.Context
	updatedAt time.Time
}

// Store is a concurrency-safe in-memory session store with idle expiry.
// Contexts for different sessions never share state; a *dialog.Context handed
// out belongs to exactly one session.
type Store struct {
	mu sync.RWMutex

	data map[string]*entry

	// maxAge is how long an idle session survives; <= 0 means forever.
	maxAge time.Duration
}

// NewStore creates a Store with the given idle retention.
func NewStore(maxAge time.Duration) *Store {
	return &Store{
		data:   make(map[string]*entry),
		maxAge: maxAge,
	}
}

// Get returns the context for a session id.
func (s *Store) Get(id string) (*dialog.Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(e, time.Now()) {
		return nil, ErrNotFound
	}
	return e.conv, nil
}

// Put stores the context for a session id and refreshes its idle timer.
func (s *Store) Put(id string, conv *dialog.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[id] = &entry{conv: conv, updatedAt: time.Now()}
}

// Len reports the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// PurgeExpired drops every session idle for longer than the retention and
// returns how many were removed.
func (s *Store) PurgeExpired() int {
	if s.maxAge <= 0 {
		return 0
	}

	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.data {
		if s.expired(e, now) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.maxAge > 0 && now.Sub(e.updatedAt) > s.maxAge
}
