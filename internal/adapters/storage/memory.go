package storage

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

var _ session.Storage = (*MemoryStorage)(nil)

type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return "", session.ErrKeyNotFound
	}
	return v, nil
}

func (m *MemoryStorage) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}

func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// MemoryProvider keeps sessions in process memory. A session only takes an
// entry once something is written to it, and entries idle past the janitor
// cutoff are dropped by PurgeIdle.
type MemoryProvider struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	data     *MemoryStorage
	lastUsed time.Time
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		sessions: make(map[string]*memoryEntry),
		now:      time.Now,
	}
}

func (p *MemoryProvider) ForSession(sessionID string) session.Storage {
	return &memorySession{provider: p, id: sessionID}
}

// PurgeIdle drops every session not touched since cutoff.
func (p *MemoryProvider) PurgeIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var removed int64
	for id, e := range p.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(p.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Sessions is the number of sessions currently held.
func (p *MemoryProvider) Sessions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

// with runs fn on the session's values under the provider lock so a purge
// cannot race a write. Without create, a missing session passes nil.
func (p *MemoryProvider) with(id string, create bool, fn func(*MemoryStorage) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.sessions[id]
	if !ok {
		if !create {
			return fn(nil)
		}
		e = &memoryEntry{data: NewMemoryStorage()}
		p.sessions[id] = e
	}
	e.lastUsed = p.now()
	return fn(e.data)
}

type memorySession struct {
	provider *MemoryProvider
	id       string
}

func (s *memorySession) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.provider.with(s.id, false, func(m *MemoryStorage) error {
		if m == nil {
			return session.ErrKeyNotFound
		}
		v, err := m.Get(ctx, key)
		value = v
		return err
	})
	return value, err
}

func (s *memorySession) Set(ctx context.Context, key, value string) error {
	return s.provider.with(s.id, true, func(m *MemoryStorage) error {
		return m.Set(ctx, key, value)
	})
}

func (s *memorySession) Delete(ctx context.Context, key string) error {
	return s.provider.with(s.id, false, func(m *MemoryStorage) error {
		if m == nil {
			return nil
		}
		return m.Delete(ctx, key)
	})
}

// Clear forgets the session entirely.
func (s *memorySession) Clear(ctx context.Context) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()
	delete(s.provider.sessions, s.id)
	return nil
}
