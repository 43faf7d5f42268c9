// Package prefs implements the workspace preference store: named, typed,
// persisted values with defaults and change notification.
//
// A Store is created explicitly and passed to whoever needs it. Persistence is
// best effort; when a backend fails the store logs the error and keeps serving
// the in-memory value.
package prefs

import (
	"log/slog"
	"sort"
	"sync"
)

// Backend persists raw preference values by key
type Backend interface {
	// Load returns the stored value; ok is false when key was never written.
	Load(key string) (value []byte, ok bool, err error)
	Save(key string, value []byte) error
}

// Store caches preference values over a Backend
type Store struct {
	backend Backend
	logger  *slog.Logger

	mu     sync.Mutex
	cache  map[string][]byte
	loaded map[string]bool
	subs   map[string]map[int]func()
	nextID int
}

// NewStore creates a store over backend. A nil logger uses slog.Default().
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		cache:   make(map[string][]byte),
		loaded:  make(map[string]bool),
		subs:    make(map[string]map[int]func()),
	}
}

// Init reads the persisted values of keys into memory
func (s *Store) Init(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		s.loadLocked(key)
	}
}

func (s *Store) loadLocked(key string) {
	if s.loaded[key] {
		return
	}
	s.loaded[key] = true
	if s.backend == nil {
		return
	}
	raw, ok, err := s.backend.Load(key)
	if err != nil {
		s.logger.Debug("prefs: load failed, using default", "key", key, "err", err)
		return
	}
	if ok {
		s.cache[key] = raw
	}
}

// Raw returns the current value of key; ok is false when nothing was written
func (s *Store) Raw(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(key)
	raw, ok := s.cache[key]
	return raw, ok
}

// Put stores value under key, writes it through to the backend and notifies
// subscribers of key.
func (s *Store) Put(key string, value []byte) {
	s.mu.Lock()
	s.loaded[key] = true
	s.cache[key] = value
	backend := s.backend
	subs := make([]func(), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if backend != nil {
		if err := backend.Save(key, value); err != nil {
			s.logger.Debug("prefs: save failed, keeping in-memory value", "key", key, "err", err)
		}
	}
	for _, fn := range subs {
		fn()
	}
}

// Subscribe registers fn to run after every Put on key
func (s *Store) Subscribe(key string, fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func())
	}
	s.subs[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

// Keys returns the keys that currently hold a value
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.cache))
	for k := range s.cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
