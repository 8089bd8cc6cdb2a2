package checkout

import "sync"

// inflight tracks keys with a request in progress. A second request for a
// busy key is refused, never queued.
type inflight[K comparable] struct {
	mu   sync.Mutex
	busy map[K]struct{}
}

func newInflight[K comparable]() *inflight[K] {
	return &inflight[K]{busy: make(map[K]struct{})}
}

// acquire marks k busy. It reports false when k already is; otherwise the
// caller must call the returned release.
func (g *inflight[K]) acquire(k K) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, taken := g.busy[k]; taken {
		return nil, false
	}
	g.busy[k] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.busy, k)
		g.mu.Unlock()
	}, true
}
