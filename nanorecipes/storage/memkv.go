package storage

import (
	"sync"
)

// MemoryKV is a map-backed KeyValue used by tests and ephemeral sessions.
// GetError and SetError, when set, are returned by the matching call.
type MemoryKV struct {
	mu     sync.RWMutex
	slots  map[string][]byte
	closed bool

	GetError error
	SetError error

	// Sets counts successful writes
	Sets int
}

// NewMemoryKV creates an empty in-memory backend
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[string][]byte)}
}

// Get implements KeyValue.Get
func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrClosed
	}
	if m.GetError != nil {
		return nil, false, m.GetError
	}
	v, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements KeyValue.Set
func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.SetError != nil {
		return m.SetError
	}
	m.slots[key] = append([]byte(nil), value...)
	m.Sets++
	return nil
}

// Close implements KeyValue.Close
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
