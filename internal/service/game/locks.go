package game

import "sync"

// gameLocks hands out one mutex per game id. Entries are dropped once no
// caller holds or waits on them.
type gameLocks struct {
	mu sync.Mutex
	m  map[string]*gameLock
}

type gameLock struct {
	sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{m: make(map[string]*gameLock)}
}

func (l *gameLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.m[id]
	if !ok {
		entry = &gameLock{}
		l.m[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.m, id)
		}
		l.mu.Unlock()
	}
}

func (l *gameLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
