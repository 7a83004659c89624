package state

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store. Expired values are dropped lazily on
// access and by a background sweep.
type Memory struct {
	items  map[string]time.Time
	now    func() time.Time
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates a Memory store sweeping expired values every interval.
// A non-positive interval disables the sweep.
func NewMemory(interval time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		items: make(map[string]time.Time),
		now:   time.Now,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if interval > 0 {
		go m.sweepLoop(interval)
	}
	return m
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, state string, ttl time.Duration) error {
	if state == "" {
		return ErrEmptyState
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.items[state] = m.now().Add(resolveTTL(ttl))
	return nil
}

// Consume implements Store.
func (m *Memory) Consume(_ context.Context, state string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrStoreClosed
	}

	expiresAt, ok := m.items[state]
	if !ok {
		return false, nil
	}
	delete(m.items, state)
	return m.now().Before(expiresAt), nil
}

// Len returns the number of pending values, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the background sweep. It is safe to call more than once.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, expiresAt := range m.items {
		if !now.Before(expiresAt) {
			delete(m.items, k)
		}
	}
}
