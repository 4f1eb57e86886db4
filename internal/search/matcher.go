package search

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/lmi/internal/debug"
	"github.com/standardbeagle/lmi/internal/types"
)

// minChunk is the smallest start range handed to one worker.
const minChunk = 4096

// Options tunes a search.
type Options struct {
	Workers       int  // 0 = GOMAXPROCS
	MaxResults    int  // 0 = unlimited
	ExactFastPath bool // route cutoff >= 100 through ExactPositions
}

// DefaultOptions matches the defaults of the search config section: every
// accepted window is returned.
func DefaultOptions() Options {
	return Options{ExactFastPath: true}
}

// Search slides a window of len(query) over corpus with stride 1 and returns
// every window scoring at least cutoff. Results are ordered by score
// descending, then start ascending, and truncated to opts.MaxResults.
func Search(ctx context.Context, query, corpus string, cutoff float64, opts Options) ([]types.MatchCandidate, error) {
	start := time.Now()

	var (
		out []types.MatchCandidate
		err error
	)
	if opts.ExactFastPath && cutoff >= 100 {
		out = exactCandidates(query, corpus)
	} else {
		out, err = scanParallel(ctx, query, corpus, cutoff, opts.Workers)
		if err != nil {
			return nil, err
		}
	}

	SortCandidates(out)
	if opts.MaxResults > 0 && len(out) > opts.MaxResults {
		out = out[:opts.MaxResults]
	}

	debug.LogSearch("query %q: %d candidates >= %.1f in %v", query, len(out), cutoff, time.Since(start))
	return out, nil
}

// Scan is the sequential exhaustive scan, unsorted.
func Scan(query, corpus string, cutoff float64) []types.MatchCandidate {
	return scanRange(query, corpus, cutoff, 0, len(corpus)-len(query)+1)
}

func scanRange(query, corpus string, cutoff float64, lo, hi int) []types.MatchCandidate {
	var out []types.MatchCandidate
	m := len(query)
	for i := lo; i < hi; i++ {
		window := corpus[i : i+m]
		if score := Ratio(query, window); score >= cutoff {
			out = append(out, types.MatchCandidate{Window: window, Score: score, Start: i})
		}
	}
	return out
}

func scanParallel(ctx context.Context, query, corpus string, cutoff float64, workers int) ([]types.MatchCandidate, error) {
	starts := len(corpus) - len(query) + 1
	if starts <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := max((starts+workers-1)/workers, minChunk)
	if chunk >= starts {
		return scanRange(query, corpus, cutoff, 0, starts), nil
	}

	parts := make([][]types.MatchCandidate, (starts+chunk-1)/chunk)
	g, ctx := errgroup.WithContext(ctx)
	for p := range parts {
		lo := p * chunk
		hi := min(lo+chunk, starts)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[p] = scanRange(query, corpus, cutoff, lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []types.MatchCandidate
	for _, part := range parts {
		out = append(out, part...)
	}
	return out, nil
}

// SortCandidates orders by score descending, then start ascending.
func SortCandidates(c []types.MatchCandidate) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Score != c[j].Score {
			return c[i].Score > c[j].Score
		}
		return c[i].Start < c[j].Start
	})
}

func exactCandidates(query, corpus string) []types.MatchCandidate {
	positions := ExactPositions(query, corpus)
	out := make([]types.MatchCandidate, len(positions))
	for i, p := range positions {
		out[i] = types.MatchCandidate{Window: query, Score: 100, Start: p}
	}
	return out
}

// ExactPositions returns every start where corpus[start:start+len(query)]
// equals query, in ascending order. Only starts where the corpus carries the
// query's highest digit at the same offset are compared in full; high counts
// are rare so most starts are skipped with a single byte test.
func ExactPositions(query, corpus string) []int {
	m, n := len(query), len(corpus)
	if m > n {
		return nil
	}
	if m == 0 {
		return allStarts(n)
	}

	pivot := 0
	for i := 1; i < m; i++ {
		if query[i] > query[pivot] {
			pivot = i
		}
	}
	want := query[pivot]

	var out []int
	for start := 0; start <= n-m; start++ {
		if corpus[start+pivot] != want {
			continue
		}
		if corpus[start:start+m] == query {
			out = append(out, start)
		}
	}
	return out
}

// NaiveExactPositions compares every window in full.
func NaiveExactPositions(query, corpus string) []int {
	m, n := len(query), len(corpus)
	if m > n {
		return nil
	}
	if m == 0 {
		return allStarts(n)
	}
	var out []int
	for start := 0; start <= n-m; start++ {
		if corpus[start:start+m] == query {
			out = append(out, start)
		}
	}
	return out
}

func allStarts(n int) []int {
	out := make([]int, n+1)
	for i := range out {
		out[i] = i
	}
	return out
}
