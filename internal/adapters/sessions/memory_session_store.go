package sessions

import (
	"bus-electrification-service/internal/domain"
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrSessionExists = errors.New("planning session already exists")

type entry struct {
	mu      sync.Mutex
	session *domain.PlanningSession
	deleted bool
}

// MemorySessionStore keeps sessions for the lifetime of the process.
// Updates to one session are serialized; different sessions do not contend.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*entry)}
}

func (m *MemorySessionStore) Create(ctx context.Context, s *domain.PlanningSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.ID]; ok {
		return fmt.Errorf("create session %q: %w", s.ID, ErrSessionExists)
	}
	m.sessions[s.ID] = &entry{session: s.Clone()}
	return nil
}

func (m *MemorySessionStore) Get(ctx context.Context, id string) (*domain.PlanningSession, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, domain.ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

func (m *MemorySessionStore) Update(ctx context.Context, id string, fn func(s *domain.PlanningSession) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return domain.ErrSessionNotFound
	}

	next := e.session.Clone()
	if err := fn(next); err != nil {
		return err
	}
	e.session = next
	return nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}

	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()
	return nil
}

// Len reports the number of live sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemorySessionStore) lookup(id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e, nil
}
