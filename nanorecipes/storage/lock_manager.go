package storage

import (
	"sync"
)

// OperationType defines whether an operation is read or write.
type OperationType int

const (
	// ReadOperation may run alongside other reads of the same slot.
	ReadOperation OperationType = iota

	// WriteOperation excludes every other operation on the same slot.
	WriteOperation
)

// LockManager hands out one in-process read/write lock per slot, so a
// write to one slot never waits on another. Cross-process exclusion is
// the job of the file lock.
type LockManager struct {
	mu    sync.Mutex
	slots map[string]*sync.RWMutex
}

// NewLockManager creates a lock manager with no slots locked
func NewLockManager() *LockManager {
	return &LockManager{slots: make(map[string]*sync.RWMutex)}
}

func (lm *LockManager) slot(key string) *sync.RWMutex {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	l, ok := lm.slots[key]
	if !ok {
		l = &sync.RWMutex{}
		lm.slots[key] = l
	}
	return l
}

// Execute runs fn holding the lock of slot key. The lock is released when
// fn returns, even if it panics.
func (lm *LockManager) Execute(key string, opType OperationType, fn func() error) error {
	l := lm.slot(key)
	if opType == WriteOperation {
		l.Lock()
		defer l.Unlock()
	} else {
		l.RLock()
		defer l.RUnlock()
	}
	return fn()
}
