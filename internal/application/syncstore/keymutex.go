package syncstore

import "sync"

// keyMutex serializes writers per sync path so queue replay and live
// writes never interleave on the same record. Entries are reference
// counted and dropped once unlocked by the last holder.
type keyMutex struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyMutex() *keyMutex {
	return &keyMutex{locks: make(map[string]*pathLock)}
}

// Lock blocks until the path is free and returns the unlock function.
func (k *keyMutex) Lock(path string) func() {
	k.mu.Lock()
	l, ok := k.locks[path]
	if !ok {
		l = &pathLock{}
		k.locks[path] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, path)
		}
		k.mu.Unlock()
	}
}
