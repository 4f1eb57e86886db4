package corpus

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/standardbeagle/lmi/internal/debug"
	lmierrors "github.com/standardbeagle/lmi/internal/errors"
	"github.com/standardbeagle/lmi/internal/resources"
)

// LoaderFunc produces the index.
type LoaderFunc func(ctx context.Context) (*Index, error)

// Provider memoizes a single index. The first successful Get builds it and
// every later call, from any goroutine, shares the same immutable result.
// A build stopped by its caller's context is not remembered, so the next Get
// starts over. Any other failure is kept and returned to every caller.
type Provider struct {
	load  LoaderFunc
	mu    sync.Mutex
	ready atomic.Bool
	idx   *Index
	err   error
}

// NewProvider wraps load in a build-once provider.
func NewProvider(load LoaderFunc) *Provider {
	return &Provider{load: load}
}

// Static returns a provider that already holds idx.
func Static(idx *Index) *Provider {
	p := &Provider{idx: idx}
	p.ready.Store(true)
	return p
}

// Get returns the index, building it on first use. Concurrent callers wait
// for the build in flight.
func (p *Provider) Get(ctx context.Context) (*Index, error) {
	if p.ready.Load() {
		return p.idx, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready.Load() || p.err != nil {
		return p.idx, p.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := p.load(ctx)
	switch {
	case err == nil:
		p.idx = idx
		p.ready.Store(true)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		debug.LogCorpus("build interrupted, will retry on next use: %v", err)
		return nil, err
	default:
		p.err = err
	}
	return p.idx, p.err
}

// Ready reports whether a successful build has completed.
func (p *Provider) Ready() bool {
	return p.ready.Load()
}

// Source describes where the reference text and its optional snapshot live.
type Source struct {
	Name         string
	Path         string
	SnapshotPath string
	Workers      int
}

// FileLoader reads the reference text from disk (.zst and .gz allowed) and
// builds its index. With a snapshot path, a snapshot whose fingerprint
// matches the text is used instead of rebuilding, and a fresh build is saved
// back. Snapshot problems are logged, never fatal.
func FileLoader(src Source, counter Counter) LoaderFunc {
	return func(ctx context.Context) (*Index, error) {
		data, err := resources.ReadAll(src.Path)
		if err != nil {
			return nil, lmierrors.NewResourceError("corpus "+src.Name, src.Path, err)
		}
		raw := string(data)

		if src.SnapshotPath != "" {
			idx, err := LoadSnapshot(src.SnapshotPath, Fingerprint(raw))
			switch {
			case err == nil:
				idx.Name = src.Name
				debug.LogCorpus("loaded snapshot %s (%d words)", src.SnapshotPath, idx.Len())
				return idx, nil
			case errors.Is(err, os.ErrNotExist):
			default:
				debug.LogCorpus("ignoring snapshot %s: %v", src.SnapshotPath, err)
			}
		}

		idx, err := Build(ctx, src.Name, raw, counter, BuildOptions{Workers: src.Workers})
		if err != nil {
			return nil, err
		}

		if src.SnapshotPath != "" {
			if err := SaveSnapshot(src.SnapshotPath, idx); err != nil {
				debug.LogCorpus("failed to save snapshot %s: %v", src.SnapshotPath, err)
			}
		}
		return idx, nil
	}
}
