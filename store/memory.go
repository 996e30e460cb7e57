package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps programs in memory. They are lost when the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	programs map[string]savedProgram
	closed   bool
}

type savedProgram struct {
	info    Info
	program []string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{programs: make(map[string]savedProgram)}
}

// Save implements Store.
func (m *MemoryStore) Save(name string, program []string) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Info{}, ErrClosed
	}
	if name == "" {
		return Info{}, ErrEmptyName
	}

	stored := make([]string, len(program))
	copy(stored, program)

	info := Info{
		ID:     uuid.New().String(),
		Name:   name,
		Saved:  time.Now().UTC(),
		Tokens: len(stored),
	}
	m.programs[name] = savedProgram{info: info, program: stored}
	return info, nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	saved, ok := m.programs[name]
	if !ok {
		return nil, ErrNotFound
	}
	program := make([]string, len(saved.program))
	copy(program, saved.program)
	return program, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	infos := make([]Info, 0, len(m.programs))
	for _, saved := range m.programs {
		infos = append(infos, saved.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.programs, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.programs = nil
	return nil
}
