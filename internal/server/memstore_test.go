package server

import (
	"errors"
	"sync"

	"github.com/brk3/habitlog/internal/storage"
)

type memBackend struct {
	mu       sync.RWMutex
	snap     storage.Snapshot
	settings map[string]string
	failSave bool
}

func newMemBackend() *memBackend {
	return &memBackend{settings: map[string]string{}}
}

func (m *memBackend) Load() (storage.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap, nil
}

func (m *memBackend) Save(s storage.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("quota exceeded")
	}
	m.snap = s
	return nil
}

func (m *memBackend) GetSetting(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.settings[key]
	return v, ok, nil
}

func (m *memBackend) PutSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *memBackend) Close() error {
	return nil
}

var _ storage.Backend = (*memBackend)(nil)
