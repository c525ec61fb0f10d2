package wizard

import "sync"

// Guard deduplicates concurrent invocations of the same named task. A key is
// held exactly while its task runs; duplicate triggers (double-click, rapid
// re-entry) are skipped silently rather than queued.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{inFlight: make(map[string]struct{})}
}

// Do runs fn under key. It returns false without invoking fn when the key is
// already in flight. The key is released on settlement regardless of whether
// fn failed, so a failure never wedges the key.
func (g *Guard) Do(key string, fn func() error) (bool, error) {
	g.mu.Lock()
	if _, busy := g.inFlight[key]; busy {
		g.mu.Unlock()
		return false, nil
	}
	g.inFlight[key] = struct{}{}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.inFlight, key)
		g.mu.Unlock()
	}()

	return true, fn()
}

// InFlight reports whether key is currently executing.
func (g *Guard) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inFlight[key]
	return busy
}
