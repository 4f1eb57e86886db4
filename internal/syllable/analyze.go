package syllable

import (
	"github.com/standardbeagle/lmi/internal/types"
)

// Expander lists the literal phrases a word may stand for, word first.
// *lexicon.Expander satisfies it.
type Expander interface {
	Expand(word string) []string
}

// Analyze pairs every expansion of word with its syllable count. The literal
// word is always the first option. A nil expander yields the literal alone.
func (r *Resolver) Analyze(exp Expander, word string) types.WordSyllable {
	variants := []string{word}
	if exp != nil {
		variants = exp.Expand(word)
	}

	ws := types.WordSyllable{Word: word, Options: make([]types.WordOption, 0, len(variants))}
	for _, v := range variants {
		ws.Options = append(ws.Options, types.WordOption{Text: v, Syllables: r.Count(v)})
	}
	return ws
}

// AnalyzeAll runs Analyze over each word in order.
func (r *Resolver) AnalyzeAll(exp Expander, words []string) []types.WordSyllable {
	out := make([]types.WordSyllable, len(words))
	for i, w := range words {
		out[i] = r.Analyze(exp, w)
	}
	return out
}
