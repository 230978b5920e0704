package common

import "sync"

// KeyedMutex provides one exclusive lock per string key, created lazily.
// It exists to allow multi-statement critical sections over a single
// aggregate without blocking operations on other aggregates.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for key and returns the matching unlock function.
// Callers should defer the returned function so the lock is released on
// every exit path, including error paths.
func (km *KeyedMutex) Lock(key string) func() {
	km.mu.Lock()
	l, ok := km.locks[key]
	if !ok {
		l = &sync.Mutex{}
		km.locks[key] = l
	}
	km.mu.Unlock()

	l.Lock()
	return l.Unlock
}
