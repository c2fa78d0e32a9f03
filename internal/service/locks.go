package service

import (
	"sync"

	"github.com/google/uuid"
)

// servicoLocks serializes all mutating flows for one order (edit, cancel,
// reactivate, settle cascades touch the same ledger rows). The backing store
// has no cross-entity transaction the core can lean on, so the (order +
// linked entries) set is treated as one unit of work behind a per-id mutex.
type servicoLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newServicoLocks() *servicoLocks {
	return &servicoLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for id and returns the unlock func.
func (l *servicoLocks) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
