package application

import "sync"

// sessionLocks serialises work on one session. Entries are dropped once no
// caller holds or waits on them.
type sessionLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{entries: make(map[string]*lockEntry)}
}

// acquire blocks until the session is free
func (l *sessionLocks) acquire(key string) func() {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.Lock()
	return func() { l.release(key, e) }
}

// tryAcquire fails instead of waiting when the session is busy
func (l *sessionLocks) tryAcquire(key string) (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{}
		l.entries[key] = e
	}
	if !e.TryLock() {
		return nil, false
	}
	e.refs++
	return func() { l.release(key, e) }, true
}

func (l *sessionLocks) release(key string, e *lockEntry) {
	e.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
