package lock

import "sync"

// KeyedMutex serializes work per key. Entries are reference counted and
// removed once the last holder unlocks, so the map does not grow with the
// number of keys ever seen.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[interface{}]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: map[interface{}]*entry{}}
}

func (km *KeyedMutex) Lock(key interface{}) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &entry{}
		km.locks[key] = e
	}
	e.refs++
	km.mu.Unlock()

	e.mu.Lock()
}

func (km *KeyedMutex) Unlock(key interface{}) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		km.mu.Unlock()
		panic("lock: unlock of unheld key")
	}
	e.refs--
	if e.refs == 0 {
		delete(km.locks, key)
	}
	km.mu.Unlock()

	e.mu.Unlock()
}
