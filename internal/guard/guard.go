package guard

import "sync"

// SessionGuard is a keyed exclusion flag preventing concurrent re-entry into
// checkout for the same session. It is deliberately not a cross-session or
// distributed lock: different sessions proceed independently.
type SessionGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// New creates an empty guard.
func New() *SessionGuard {
	return &SessionGuard{active: make(map[string]struct{})}
}

// Held reports whether a checkout is currently in flight for the session.
func (g *SessionGuard) Held(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.active[sessionID]
	return ok
}

// TryAcquire atomically claims the session. On success it returns a release
// function that the caller must invoke on every exit path, typically via
// defer; releasing more than once is a no-op.
func (g *SessionGuard) TryAcquire(sessionID string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.active[sessionID]; held {
		return nil, false
	}
	g.active[sessionID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, sessionID)
			g.mu.Unlock()
		})
	}, true
}
