package concurrency

import "sync"

// KeyedMutex serializes work per hive ID. Entries are reference counted and
// dropped when the last holder or waiter releases, so hives that are reaped
// do not leave their lock behind.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*refLock)}
}

// Lock blocks until key is free and returns the matching unlock. Calling the
// returned func more than once panics like a double sync.Mutex unlock.
func (k *KeyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// WithLock runs fn while holding key
func (k *KeyedMutex) WithLock(key string, fn func()) {
	unlock := k.Lock(key)
	defer unlock()
	fn()
}

// Len is the number of keys currently held or waited on
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
