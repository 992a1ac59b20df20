package dedup

import (
	"context"
	"sync"
	"time"
)

type Memory struct {
	mu         sync.Mutex
	entries    map[string]time.Time
	order      []string
	maxEntries int
	ttl        time.Duration
}

func NewMemory() *Memory {
	return &Memory{
		entries:    make(map[string]time.Time),
		maxEntries: 10000,
		ttl:        24 * time.Hour,
	}
}

func (m *Memory) Seen(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	at, ok := m.entries[key]
	if !ok {
		return false
	}
	if time.Since(at) > m.ttl {
		delete(m.entries, key)
		return false
	}
	return true
}

func (m *Memory) Mark(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = time.Now()

	// Evict oldest insertions once over capacity.
	for len(m.entries) > m.maxEntries && len(m.order) > 0 {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}

	return nil
}
