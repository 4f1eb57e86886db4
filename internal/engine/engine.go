// Package engine wires normalization, expansion, syllable resolution, the
// corpus index, the matcher and the renderer into the operations the command
// line, HTTP and MCP surfaces call.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/standardbeagle/lmi/internal/config"
	"github.com/standardbeagle/lmi/internal/corpus"
	"github.com/standardbeagle/lmi/internal/debug"
	lmierrors "github.com/standardbeagle/lmi/internal/errors"
	"github.com/standardbeagle/lmi/internal/hyphen"
	"github.com/standardbeagle/lmi/internal/metrics"
	"github.com/standardbeagle/lmi/internal/render"
	"github.com/standardbeagle/lmi/internal/search"
	"github.com/standardbeagle/lmi/internal/syllable"
	"github.com/standardbeagle/lmi/internal/text"
	"github.com/standardbeagle/lmi/internal/types"
)

// Options assembles an engine from already-built parts.
type Options struct {
	Resolver    *syllable.Resolver
	Expander    syllable.Expander
	Hyphenator  *hyphen.Hyphenator
	Corpus      *corpus.Provider
	CorpusName  string
	ScoreCutoff float64
	Search      search.Options
}

// Engine answers meter-matching queries against one reference corpus.
// It is safe for concurrent use.
type Engine struct {
	resolver   *syllable.Resolver
	expander   syllable.Expander
	hyphenator *hyphen.Hyphenator
	corpus     *corpus.Provider
	corpusName string
	cutoff     float64
	searchOpts search.Options
	stats      metrics.SearchStats
}

// New creates an engine. Resolver and Corpus are required.
func New(opts Options) (*Engine, error) {
	if opts.Resolver == nil {
		return nil, fmt.Errorf("engine: resolver is required")
	}
	if opts.Corpus == nil {
		return nil, fmt.Errorf("engine: corpus provider is required")
	}
	if opts.Hyphenator == nil {
		opts.Hyphenator = hyphen.New(nil)
	}
	if opts.ScoreCutoff == 0 {
		opts.ScoreCutoff = types.DefaultScoreCutoff
	}
	return &Engine{
		resolver:   opts.Resolver,
		expander:   opts.Expander,
		hyphenator: opts.Hyphenator,
		corpus:     opts.Corpus,
		corpusName: opts.CorpusName,
		cutoff:     opts.ScoreCutoff,
		searchOpts: opts.Search,
	}, nil
}

// NewFromConfig loads every resource named by cfg and returns an engine whose
// corpus is built lazily on first use. Resource failures are returned as
// ResourceError before any engine exists.
func NewFromConfig(cfg *config.Config) (*Engine, error) {
	res, err := LoadResources(cfg)
	if err != nil {
		return nil, err
	}

	resolver, err := syllable.NewResolver(res.Pronunciations,
		[]hyphen.Dictionary{res.HyphenationUS, res.HyphenationGB},
		syllable.Options{CacheSize: cfg.Resolver.CacheSize, StemFallback: cfg.Resolver.StemFallback})
	if err != nil {
		return nil, err
	}

	src := corpus.Source{
		Name:         cfg.Corpus.Name,
		Path:         res.CorpusPath,
		SnapshotPath: cfg.SnapshotPath(),
		Workers:      cfg.Search.Workers,
	}

	return New(Options{
		Resolver:    resolver,
		Expander:    res.Expander,
		Hyphenator:  hyphen.New(res.HyphenationGB),
		Corpus:      corpus.NewProvider(corpus.FileLoader(src, resolver)),
		CorpusName:  cfg.Corpus.Name,
		ScoreCutoff: cfg.Search.ScoreCutoff,
		Search: search.Options{
			Workers:       cfg.Search.Workers,
			MaxResults:    cfg.Search.MaxResults,
			ExactFastPath: cfg.Search.ExactFastPath,
		},
	})
}

// Query normalizes text into a word sequence with its digit string.
func (e *Engine) Query(raw string) (types.Sequence, error) {
	words := text.Words(raw)
	if len(words) == 0 {
		return types.Sequence{}, lmierrors.NewValidationError("query", "text", "no words in %q", raw)
	}
	counts := make([]int, len(words))
	for i, w := range words {
		counts[i] = e.resolver.Count(w)
	}
	return types.Sequence{Words: words, Digits: types.EncodeCounts(counts)}, nil
}

// SearchParams overrides the configured cutoff and result cap for one call.
// Zero values keep the configured setting; MaxResults < 0 means unlimited.
type SearchParams struct {
	ScoreCutoff float64
	MaxResults  int
}

// SearchCorpus finds passages whose meter resembles raw and renders each one
// as a comparison table, best match first.
func (e *Engine) SearchCorpus(ctx context.Context, raw string) ([]types.MatchTable, error) {
	return e.SearchCorpusWith(ctx, raw, SearchParams{})
}

// SearchCorpusWith is SearchCorpus with per-call overrides.
func (e *Engine) SearchCorpusWith(ctx context.Context, raw string, p SearchParams) ([]types.MatchTable, error) {
	query, err := e.Query(raw)
	if err != nil {
		return nil, err
	}
	idx, err := e.corpus.Get(ctx)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	tables, err := e.search(ctx, idx, query, p)
	e.stats.Record(time.Since(started), len(tables), err)
	if err != nil {
		return nil, lmierrors.NewSearchError(raw, err)
	}

	debug.LogSearch("%q -> %s: %d tables", raw, query.Digits, len(tables))
	return tables, nil
}

func (e *Engine) search(ctx context.Context, idx *corpus.Index, query types.Sequence, p SearchParams) ([]types.MatchTable, error) {
	cutoff := e.cutoff
	if p.ScoreCutoff != 0 {
		cutoff = p.ScoreCutoff
	}
	opts := e.searchOpts
	switch {
	case p.MaxResults > 0:
		opts.MaxResults = p.MaxResults
	case p.MaxResults < 0:
		opts.MaxResults = 0
	}

	candidates, err := search.Search(ctx, query.Digits, idx.Digits, cutoff, opts)
	if err != nil {
		return nil, err
	}

	tables := make([]types.MatchTable, 0, len(candidates))
	for _, c := range candidates {
		table, err := render.Table(idx.Sequence, query, c, e.hyphenator)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// Analyze returns every word of raw with its expansion options and counts.
func (e *Engine) Analyze(raw string) ([]types.WordSyllable, error) {
	words := text.Words(raw)
	if len(words) == 0 {
		return nil, lmierrors.NewValidationError("analyze", "text", "no words in %q", raw)
	}
	return e.resolver.AnalyzeAll(e.expander, words), nil
}

// WordCount is one word with its resolved count and how it was resolved.
type WordCount struct {
	Word   string `json:"word"`
	Count  int    `json:"count"`
	Method string `json:"method"`
}

// Count resolves every word of raw and returns the total.
func (e *Engine) Count(raw string) (int, []WordCount) {
	words := text.Words(raw)
	out := make([]WordCount, len(words))
	total := 0
	for i, w := range words {
		res := e.resolver.Resolve(w)
		out[i] = WordCount{Word: w, Count: res.Count, Method: res.Method()}
		total += res.Count
	}
	return total, out
}

// Hyphenate splits word into parts segments. parts <= 0 uses the word's
// resolved syllable count.
func (e *Engine) Hyphenate(word string, parts int) string {
	word = strings.TrimSpace(word)
	if parts <= 0 {
		parts = e.resolver.Count(word)
	}
	return e.hyphenator.Hyphenate(word, parts)
}

// CorpusName returns the configured corpus name.
func (e *Engine) CorpusName() string {
	return e.corpusName
}

// Status describes the engine and its corpus.
type Status struct {
	Corpus      string `json:"corpus"`
	Ready       bool   `json:"ready"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Words       int    `json:"words"`
	CachedWords int    `json:"cached_words"`

	Searches metrics.Snapshot `json:"searches"`
}

// Status reports corpus readiness without triggering a build.
func (e *Engine) Status() Status {
	st := Status{
		Corpus:      e.corpusName,
		Ready:       e.corpus.Ready(),
		CachedWords: e.resolver.CacheLen(),
		Searches:    e.stats.Snapshot(),
	}
	if st.Ready {
		if idx, err := e.corpus.Get(context.Background()); err == nil {
			stats := idx.Stats()
			st.Fingerprint = stats.Fingerprint
			st.Words = stats.Words
		}
	}
	return st
}

// Warm builds the corpus index now rather than on the first search.
func (e *Engine) Warm(ctx context.Context) error {
	_, err := e.corpus.Get(ctx)
	return err
}

// Corpus returns the built index, building it if needed.
func (e *Engine) Corpus(ctx context.Context) (*corpus.Index, error) {
	return e.corpus.Get(ctx)
}
