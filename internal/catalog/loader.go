package catalog

import (
	"context"
	"sync"

	"storefront/internal/errs"
)

// ErrSuperseded is returned for a listing load that finished after a newer
// load for the same key had started. Its result must not be shown.
var ErrSuperseded error = &errs.Error{Kind: errs.KindConflict, Msg: "listing request superseded by a newer one"}

type Searcher interface {
	Search(ctx context.Context, f ActiveFilterSet) (Result, error)
}

// Loader serializes listing loads per key (one browsing session): starting a
// load cancels the previous one for that key, and a result that arrives after
// a newer load started is discarded. An empty key runs unguarded.
type Loader struct {
	searcher Searcher

	mu      sync.Mutex
	next    uint64
	current map[string]inflight
}

type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

func NewLoader(s Searcher) *Loader {
	return &Loader{searcher: s, current: make(map[string]inflight)}
}

func (l *Loader) Load(ctx context.Context, key string, f ActiveFilterSet) (Result, error) {
	if key == "" {
		return l.searcher.Search(ctx, f)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	l.next++
	gen := l.next
	if prev, ok := l.current[key]; ok {
		prev.cancel()
	}
	l.current[key] = inflight{gen: gen, cancel: cancel}
	l.mu.Unlock()

	res, err := l.searcher.Search(ctx, f)

	l.mu.Lock()
	latest := l.current[key].gen == gen
	if latest {
		delete(l.current, key)
	}
	l.mu.Unlock()

	if !latest {
		return Result{}, ErrSuperseded
	}
	return res, err
}
