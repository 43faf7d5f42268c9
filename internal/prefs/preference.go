package prefs

import (
	"encoding/json"
)

// Preference is a single persisted value of type T with a default
type Preference[T any] struct {
	store *Store
	key   string
	def   T
	valid func(T) bool
}

// New binds a typed preference to key. valid may be nil; when set, stored
// values it rejects read back as the default.
func New[T any](store *Store, key string, def T, valid func(T) bool) *Preference[T] {
	return &Preference[T]{store: store, key: key, def: def, valid: valid}
}

// Key returns the storage key
func (p *Preference[T]) Key() string {
	return p.key
}

// Default returns the value used when nothing was written
func (p *Preference[T]) Default() T {
	return p.def
}

// Get returns the stored value or the default
func (p *Preference[T]) Get() T {
	raw, ok := p.store.Raw(p.key)
	if !ok {
		return p.def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		p.store.logger.Debug("prefs: undecodable value, using default", "key", p.key, "err", err)
		return p.def
	}
	if p.valid != nil && !p.valid(v) {
		return p.def
	}
	return v
}

// Set stores v
func (p *Preference[T]) Set(v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		p.store.logger.Debug("prefs: encode failed", "key", p.key, "err", err)
		return
	}
	p.store.Put(p.key, raw)
}

// Subscribe calls fn with the new value after every Set
func (p *Preference[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return p.store.Subscribe(p.key, func() { fn(p.Get()) })
}
