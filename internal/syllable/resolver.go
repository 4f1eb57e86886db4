// Package syllable maps words and phrases to syllable counts.
//
// Resolution runs in three tiers: a direct pronunciation-dictionary hit, a
// chain of morphological transforms that retry the dictionary with a
// rewritten word, and finally an estimate from hyphenation patterns. Every
// word therefore gets a count; there is no failure path visible to callers.
package syllable

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/standardbeagle/lmi/internal/debug"
	lmierrors "github.com/standardbeagle/lmi/internal/errors"
	"github.com/standardbeagle/lmi/internal/hyphen"
	"github.com/standardbeagle/lmi/internal/text"
	"github.com/standardbeagle/lmi/internal/types"
)

// Dictionary answers syllable counts for known words.
// *resources.Pronunciations satisfies it.
type Dictionary interface {
	Syllables(word string) (int, bool)
}

// Options configures a Resolver.
type Options struct {
	CacheSize    int  // distinct words memoized; <= 0 uses the default
	StemFallback bool // append the Porter2 stem transform to the chain
}

// Resolution records how a single word got its count.
type Resolution struct {
	Word      string        `json:"word"`
	Count     int           `json:"count"`
	Kind      TransformKind `json:"-"`
	Candidate string        `json:"candidate,omitempty"` // dictionary key that matched
}

// Method returns the transform name as a string for display.
func (r Resolution) Method() string {
	return r.Kind.String()
}

// Resolver counts syllables. It is safe for concurrent use.
type Resolver struct {
	dict       Dictionary
	dialects   []hyphen.Dictionary
	transforms []Transform
	cache      *lru.Cache[string, Resolution]
}

// NewResolver creates a resolver over a pronunciation dictionary and the
// hyphenation dictionaries used for the algorithmic estimate (typically US
// and GB English).
func NewResolver(dict Dictionary, dialects []hyphen.Dictionary, opts Options) (*Resolver, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = types.DefaultResolverCacheSize
	}
	cache, err := lru.New[string, Resolution](size)
	if err != nil {
		return nil, err
	}

	transforms := append([]Transform(nil), DefaultTransforms...)
	if opts.StemFallback {
		transforms = append(transforms, StemTransform)
	}

	return &Resolver{
		dict:       dict,
		dialects:   dialects,
		transforms: transforms,
		cache:      cache,
	}, nil
}

// Count returns the syllable count of a word or whitespace-separated phrase.
// Phrases sum their per-word counts; an empty phrase counts zero.
func (r *Resolver) Count(phrase string) int {
	total := 0
	for _, w := range strings.Fields(phrase) {
		total += r.Resolve(w).Count
	}
	return total
}

// Resolve returns the count for a single word along with the tier that
// produced it. Results are memoized by the exact input.
func (r *Resolver) Resolve(word string) Resolution {
	if res, ok := r.cache.Get(word); ok {
		return res
	}

	res, err := r.lookup(word)
	if err != nil {
		// dictionary exhausted: the estimate always answers
		debug.LogResolve("%v; estimating", err)
		res = Resolution{Word: word, Count: r.Estimate(word), Kind: Estimated}
	}

	r.cache.Add(word, res)
	return res
}

// lookup tries the dictionary directly and then through each transform.
// Proper nouns (any uppercase letter) skip the transforms.
func (r *Resolver) lookup(word string) (Resolution, error) {
	if n, ok := r.direct(word); ok {
		return Resolution{Word: word, Count: n, Kind: Direct, Candidate: strings.ToLower(word)}, nil
	}
	if r.dict == nil {
		return Resolution{}, lmierrors.NewResolutionError(word, "no pronunciation dictionary")
	}
	if text.HasUpper(word) {
		return Resolution{}, lmierrors.NewResolutionError(word, "capitalized")
	}

	for _, t := range r.transforms {
		for _, candidate := range t.Rewrite(word) {
			if n, ok := r.direct(candidate); ok {
				debug.LogResolve("%s: %s -> %s (%d%+d)", t.Kind, word, candidate, n, t.Adjust)
				return Resolution{Word: word, Count: n + t.Adjust, Kind: t.Kind, Candidate: candidate}, nil
			}
		}
	}
	return Resolution{}, lmierrors.NewResolutionError(word, "transforms exhausted")
}

// direct is a dictionary hit with a positive count. Entries without any
// stressed vowel are treated as misses.
func (r *Resolver) direct(word string) (int, bool) {
	if r.dict == nil {
		return 0, false
	}
	n, ok := r.dict.Syllables(strings.ToLower(word))
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// Estimate counts hyphenation chunks in every dialect and keeps the largest.
// Hyphens already present in word are ignored. The result is at least 1.
func (r *Resolver) Estimate(word string) int {
	clean := strings.ReplaceAll(word, "-", "")
	best := 1
	for _, d := range r.dialects {
		if d == nil {
			continue
		}
		if n := strings.Count(d.Insert(clean), "-") + 1; n > best {
			best = n
		}
	}
	return best
}

// CacheLen reports how many words are memoized.
func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}
