package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/marcus/dash/internal/db"
	"golang.org/x/sys/unix"
)

// DBBackend stores preferences in the workspace sqlite database
type DBBackend struct {
	DB *db.DB
}

func (b DBBackend) Load(key string) ([]byte, bool, error) {
	return b.DB.LoadPreference(key)
}

func (b DBBackend) Save(key string, value []byte) error {
	return b.DB.SavePreference(key, value)
}

// MemoryBackend keeps values for the life of the process
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return v, ok, nil
}

func (b *MemoryBackend) Save(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = append([]byte(nil), value...)
	return nil
}

// FileBackend stores all preferences in one JSON object on disk.
// Writes are atomic (temp file + rename) and serialized with flock.
type FileBackend struct {
	path string
}

// NewFileBackend stores preferences in <baseDir>/.dash/prefs.json
func NewFileBackend(baseDir string) *FileBackend {
	return &FileBackend{path: filepath.Join(baseDir, db.StateDir, "prefs.json")}
}

func (b *FileBackend) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	values := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", b.path, err)
	}
	return values, nil
}

func (b *FileBackend) Load(key string) ([]byte, bool, error) {
	values, err := b.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := values[key]
	return []byte(v), ok, nil
}

func (b *FileBackend) Save(key string, value []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	lock, err := os.OpenFile(b.path+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer lock.Close()
	if err := unix.Flock(int(lock.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer unix.Flock(int(lock.Fd()), unix.LOCK_UN)

	values, err := b.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking every write
		values = map[string]json.RawMessage{}
	}
	values[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "prefs-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, b.path)
}

// NewBackend picks a backend by config name ("sqlite", "file", "memory").
// The sqlite backend needs database; without one it degrades to memory.
func NewBackend(kind, baseDir string, database *db.DB) Backend {
	switch kind {
	case "file":
		return NewFileBackend(baseDir)
	case "memory":
		return NewMemoryBackend()
	}
	if database == nil {
		return NewMemoryBackend()
	}
	return DBBackend{DB: database}
}
