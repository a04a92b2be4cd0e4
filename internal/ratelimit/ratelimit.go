// Package ratelimit implements fixed-window request counting keyed by
// client address. Counters live behind the Store interface so a shared
// external store can replace the in-memory map when the service runs
// multi-instance; with the default store each instance counts alone.
package ratelimit

import (
	"sync"
	"time"
)

type Policy struct {
	Name   string
	Window time.Duration
	Limit  int
}

var (
	General          = Policy{Name: "general", Window: 15 * time.Minute, Limit: 100}
	Auth             = Policy{Name: "auth", Window: 15 * time.Minute, Limit: 5}
	SubmissionCreate = Policy{Name: "submission", Window: 60 * time.Minute, Limit: 10}
	Admin            = Policy{Name: "admin", Window: 15 * time.Minute, Limit: 50}
)

// Store decides whether a request identified by key may proceed under a
// policy. When the limit is exceeded it returns allowed=false and how
// long the caller should wait before retrying.
type Store interface {
	Check(key string, p Policy) (allowed bool, retryAfter time.Duration)
}

type window struct {
	expires time.Time
	count   int
}

// sweepEvery is how many checks pass between sweeps of elapsed windows.
const sweepEvery = 4096

// MemoryStore is the single-instance Store: a mutex-guarded map of
// fixed windows. Counters reset when a window elapses and are lost on
// restart; elapsed windows are swept periodically so the map does not
// grow with every client address ever seen.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	checks  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (s *MemoryStore) Check(key string, p Policy) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	s.checks++
	if s.checks >= sweepEvery {
		s.checks = 0
		for k, w := range s.windows {
			if !now.Before(w.expires) {
				delete(s.windows, k)
			}
		}
	}

	k := p.Name + ":" + key

	w, ok := s.windows[k]
	if !ok || !now.Before(w.expires) {
		s.windows[k] = &window{expires: now.Add(p.Window), count: 1}
		return true, 0
	}

	if w.count >= p.Limit {
		return false, w.expires.Sub(now)
	}

	w.count++
	return true, 0
}
