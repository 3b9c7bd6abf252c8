package interview

import "sync"

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks serializes answer submissions per session so sequence
// numbers are assigned max+1 atomically. Cross-session submissions never
// contend. Entries are refcounted and evicted once the last holder or
// waiter releases, so the map is bounded by in-flight submissions rather
// than by session count.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(sessionID string) func() {
	l.mu.Lock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sessionLock{}
		l.locks[sessionID] = m
	}
	m.refs++
	l.mu.Unlock()

	m.mu.Lock()
	return func() {
		m.mu.Unlock()

		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
