package services

import "sync"

// cartLocks hands out one mutex per cart id so placements of the same cart
// run one at a time within the process. Entries are dropped when unused.
type cartLocks struct {
	mu    sync.Mutex
	locks map[string]*cartLock
}

type cartLock struct {
	mu   sync.Mutex
	refs int
}

func newCartLocks() *cartLocks {
	return &cartLocks{locks: make(map[string]*cartLock)}
}

// lock blocks until id is free and returns its release func.
func (l *cartLocks) lock(id string) func() {
	l.mu.Lock()
	cl, ok := l.locks[id]
	if !ok {
		cl = &cartLock{}
		l.locks[id] = cl
	}
	cl.refs++
	l.mu.Unlock()

	cl.mu.Lock()
	return func() {
		cl.mu.Unlock()
		l.mu.Lock()
		cl.refs--
		if cl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *cartLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
