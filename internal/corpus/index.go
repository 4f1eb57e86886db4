// Package corpus builds the syllable index of the reference text.
package corpus

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/lmi/internal/debug"
	"github.com/standardbeagle/lmi/internal/text"
	"github.com/standardbeagle/lmi/internal/types"
)

// Counter resolves the syllable count of one word.
// *syllable.Resolver satisfies it.
type Counter interface {
	Count(word string) int
}

// Index is the immutable (words, digits) pair for a reference text.
// Invariant: len(Words) == len(Digits).
type Index struct {
	Name        string
	Fingerprint uint64 // xxhash of the raw text
	BuiltAt     time.Time
	types.Sequence
}

// Fingerprint hashes raw reference text. Snapshots are only reused when the
// fingerprint of the text on disk still matches.
func Fingerprint(raw string) uint64 {
	return xxhash.Sum64String(raw)
}

// BuildOptions tunes index construction.
type BuildOptions struct {
	Workers int // 0 = GOMAXPROCS
}

// Build normalizes raw, resolves every distinct word once and assembles the
// digit string. Distinct words are resolved in parallel.
func Build(ctx context.Context, name, raw string, counter Counter, opts BuildOptions) (*Index, error) {
	if counter == nil {
		return nil, fmt.Errorf("corpus %s: no syllable counter", name)
	}
	start := time.Now()
	words := text.Words(raw)

	distinct := make([]string, 0, len(words)/8+1)
	slot := make(map[string]int, len(words)/8+1)
	for _, w := range words {
		if _, ok := slot[w]; !ok {
			slot[w] = len(distinct)
			distinct = append(distinct, w)
		}
	}

	counts, err := countParallel(ctx, distinct, counter, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", name, err)
	}

	for i, w := range distinct {
		if counts[i] > 9 {
			debug.LogCorpus("%q has %d syllables; encoded as %q", w, counts[i], string(types.EncodeCount(counts[i])))
		}
	}

	digits := make([]byte, len(words))
	for i, w := range words {
		digits[i] = types.EncodeCount(counts[slot[w]])
	}

	idx := &Index{
		Name:        name,
		Fingerprint: Fingerprint(raw),
		BuiltAt:     time.Now(),
		Sequence:    types.Sequence{Words: words, Digits: string(digits)},
	}
	if err := idx.Validate(); err != nil {
		return nil, fmt.Errorf("corpus %s: %w", name, err)
	}

	debug.LogCorpus("built %s: %d words, %d distinct, %v", name, len(words), len(distinct), time.Since(start))
	return idx, nil
}

func countParallel(ctx context.Context, words []string, counter Counter, workers int) ([]int, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	counts := make([]int, len(words))
	if len(words) == 0 {
		return counts, nil
	}
	if workers > len(words) {
		workers = len(words)
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(words) + workers - 1) / workers
	for lo := 0; lo < len(words); lo += chunk {
		hi := min(lo+chunk, len(words))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				counts[i] = counter.Count(words[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Window returns the corpus words covering [start, start+n).
func (idx *Index) Window(start, n int) []string {
	if start < 0 || n <= 0 || start >= len(idx.Words) {
		return nil
	}
	end := min(start+n, len(idx.Words))
	return idx.Words[start:end]
}

// Stats summarizes an index for status reporting.
type Stats struct {
	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint"`
	Words       int       `json:"words"`
	BuiltAt     time.Time `json:"built_at"`
}

// Stats reports the index identity and size.
func (idx *Index) Stats() Stats {
	return Stats{
		Name:        idx.Name,
		Fingerprint: fmt.Sprintf("%016x", idx.Fingerprint),
		Words:       idx.Len(),
		BuiltAt:     idx.BuiltAt,
	}
}
