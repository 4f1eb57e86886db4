// Package render aligns a matched corpus window with the query words.
package render

import (
	lmierrors "github.com/standardbeagle/lmi/internal/errors"
	"github.com/standardbeagle/lmi/internal/types"
)

// Hyphenator splits a word into a given number of parts.
// *hyphen.Hyphenator satisfies it.
type Hyphenator interface {
	Hyphenate(word string, parts int) string
}

// Render returns one row per query word, paired with the corpus word at the
// same offset from start. Words whose count is not 1 are hyphenated into that
// many parts; rows whose counts differ are flagged.
func Render(corpusWords, queryWords []string, corpusDigits, queryDigits string, start int, h Hyphenator) ([]types.ComparisonRow, error) {
	if len(corpusWords) != len(corpusDigits) {
		return nil, lmierrors.NewValidationError("render", "corpus", "%d words but %d digits", len(corpusWords), len(corpusDigits))
	}
	if len(queryWords) != len(queryDigits) {
		return nil, lmierrors.NewValidationError("render", "query", "%d words but %d digits", len(queryWords), len(queryDigits))
	}
	if len(corpusWords) < len(queryWords) {
		return nil, lmierrors.NewValidationError("render", "query", "%d words exceed corpus of %d", len(queryWords), len(corpusWords))
	}
	if start < 0 || start+len(queryWords) > len(corpusWords) {
		return nil, lmierrors.NewValidationError("render", "start", "window [%d,%d) outside corpus of %d words", start, start+len(queryWords), len(corpusWords))
	}

	rows := make([]types.ComparisonRow, len(queryWords))
	for i, qw := range queryWords {
		cw := corpusWords[start+i]
		cc := types.DecodeCount(corpusDigits[start+i])
		qc := types.DecodeCount(queryDigits[i])
		rows[i] = types.ComparisonRow{
			CorpusWord:  split(h, cw, cc),
			QueryWord:   split(h, qw, qc),
			CorpusCount: cc,
			QueryCount:  qc,
			Mismatch:    corpusDigits[start+i] != queryDigits[i],
		}
	}
	return rows, nil
}

func split(h Hyphenator, word string, count int) string {
	if count == 1 || h == nil {
		return word
	}
	return h.Hyphenate(word, count)
}

// Table renders a candidate into a complete match table.
func Table(corpus, query types.Sequence, c types.MatchCandidate, h Hyphenator) (types.MatchTable, error) {
	rows, err := Render(corpus.Words, query.Words, corpus.Digits, query.Digits, c.Start, h)
	if err != nil {
		return types.MatchTable{}, err
	}
	return types.MatchTable{MatchCandidate: c, Rows: rows}, nil
}
