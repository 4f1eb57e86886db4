package lexicon

import (
	"sort"
	"strings"
	"sync"

	"github.com/standardbeagle/lmi/internal/text"
)

// Rule rewrites every occurrence of From in a variant to To.
type Rule struct {
	From string
	To   string
}

// DefaultRules are the general contraction rewrites. Every rule removes an
// apostrophe, so repeated application always reaches a fixed point.
var DefaultRules = []Rule{
	{"'d", " would"},
	{"'ll", " will"},
	{"'re", " are"},
	{"'ve", " have"},
	{"n't", " not"},
	{"'s", " is"},
	{"'m", " am"},
	{"y'all", " you all"},
}

// Expander produces the literal phrases a contracted or slang word may stand for.
// It is safe for concurrent use.
type Expander struct {
	mu       sync.RWMutex
	specific map[string][]string
	rules    []Rule
}

// NewExpander creates an expander with the built-in table and rules.
func NewExpander() *Expander {
	specific := make(map[string][]string, len(defaultExpansions))
	for k, v := range defaultExpansions {
		specific[k] = append([]string(nil), v...)
	}
	return &Expander{
		specific: specific,
		rules:    append([]Rule(nil), DefaultRules...),
	}
}

// AddExpansions merges entries into the curated table. Keys are lowercased;
// an entry replaces any built-in expansions for the same key.
func (e *Expander) AddExpansions(entries map[string][]string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range entries {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" || len(v) == 0 {
			continue
		}
		e.specific[key] = append([]string(nil), v...)
	}
}

// Lookup returns the curated expansions for word, retrying without
// apostrophes when the exact spelling is absent.
func (e *Expander) Lookup(word string) ([]string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	lower := strings.ToLower(word)
	if v, ok := e.specific[lower]; ok {
		return v, true
	}
	if v, ok := e.specific[text.StripApostrophes(lower)]; ok {
		return v, true
	}
	return nil, false
}

// Expand returns every literal phrase word may stand for. The result is never
// empty: word itself is always first, followed by the remaining variants in
// lexicographic order with duplicates removed.
//
//	can't      -> [can't ca not cannot]
//	y'all'd've -> [y'all'd've ... you all would have ...]
func (e *Expander) Expand(word string) []string {
	lower := strings.ToLower(word)

	seen := map[string]bool{word: true, lower: true}
	frontier := []string{lower}
	if curated, ok := e.Lookup(lower); ok {
		for _, c := range curated {
			c = strings.ToLower(strings.TrimSpace(c))
			if c != "" && !seen[c] {
				seen[c] = true
				frontier = append(frontier, c)
			}
		}
	}

	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	// Fixed point over the frontier: each pass rewrites only the variants
	// found by the previous pass and stops once nothing new appears.
	for len(frontier) > 0 {
		var next []string
		for _, variant := range frontier {
			for _, r := range rules {
				if !strings.Contains(variant, r.From) {
					continue
				}
				derived := strings.TrimSpace(strings.ReplaceAll(variant, r.From, r.To))
				if derived == "" || seen[derived] {
					continue
				}
				seen[derived] = true
				next = append(next, derived)
			}
		}
		frontier = next
	}

	rest := make([]string, 0, len(seen))
	for v := range seen {
		if v != word {
			rest = append(rest, v)
		}
	}
	sort.Strings(rest)
	return append([]string{word}, rest...)
}

// Size returns the number of curated entries.
func (e *Expander) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.specific)
}
