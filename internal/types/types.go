package types

import (
	"fmt"
	"strings"
)

// Common system-wide constants
const (
	// Syllable digit encoding
	DigitBase         = '0'             // count c is stored as the byte DigitBase+c
	MaxEncodableCount = '~' - DigitBase // 78 - highest count that still fits in one printable byte
	// Rationale: counts 0-9 render as ordinary digits. Anything above 9
	// continues into ':' ';' '<' ... so every word keeps exactly one byte
	// in the digit string and word/digit alignment never drifts.

	// Search defaults
	DefaultScoreCutoff = 95.0 // Minimum similarity ratio (0-100) for a window to be reported

	// Resolver defaults
	DefaultResolverCacheSize = 32768 // Distinct words memoized by the syllable resolver
	// Rationale: a reference-scale corpus has ~13,700 distinct words in
	// ~790,000 tokens, so this holds every corpus word plus query churn.
)

// EncodeCount converts a syllable count into its single-byte digit form.
// Negative counts encode as zero; counts past MaxEncodableCount are capped.
func EncodeCount(count int) byte {
	if count < 0 {
		count = 0
	}
	if count > MaxEncodableCount {
		count = MaxEncodableCount
	}
	return byte(DigitBase + count)
}

// DecodeCount converts a digit byte back into a syllable count.
func DecodeCount(b byte) int {
	if b < DigitBase {
		return 0
	}
	return int(b - DigitBase)
}

// EncodeCounts builds a syllable digit string from per-word counts.
func EncodeCounts(counts []int) string {
	var sb strings.Builder
	sb.Grow(len(counts))
	for _, c := range counts {
		sb.WriteByte(EncodeCount(c))
	}
	return sb.String()
}

// WordOption is one literal phrase a word may stand for, with its syllable count.
type WordOption struct {
	Text      string `json:"text" msgpack:"text"`
	Syllables int    `json:"syllables" msgpack:"syllables"`
}

// WordSyllable lists every reading of a single word.
// Options is never empty and Options[0] is always the literal word.
type WordSyllable struct {
	Word    string       `json:"word"`
	Options []WordOption `json:"options"`
}

// Literal returns the option for the word as written.
func (ws WordSyllable) Literal() WordOption {
	if len(ws.Options) == 0 {
		return WordOption{Text: ws.Word}
	}
	return ws.Options[0]
}

// SyllableOptions returns the syllable count of every option, literal first.
func (ws WordSyllable) SyllableOptions() []int {
	out := make([]int, len(ws.Options))
	for i, opt := range ws.Options {
		out[i] = opt.Syllables
	}
	return out
}

// Sequence is a word sequence paired with its syllable digit string.
// The corpus and every query share this shape.
// Invariant: len(Words) == len(Digits).
type Sequence struct {
	Words  []string `json:"words" msgpack:"words"`
	Digits string   `json:"digits" msgpack:"digits"`
}

// Len returns the number of words in the sequence.
func (s *Sequence) Len() int {
	return len(s.Words)
}

// Validate checks the one-byte-per-word invariant.
func (s *Sequence) Validate() error {
	if len(s.Words) != len(s.Digits) {
		return fmt.Errorf("sequence has %d words but %d digits", len(s.Words), len(s.Digits))
	}
	return nil
}

// MatchCandidate is a corpus window whose digits resemble the query digits.
type MatchCandidate struct {
	Window string  `json:"window"` // matched substring of the corpus digit string
	Score  float64 `json:"score"`  // similarity ratio in [0,100]
	Start  int     `json:"start"`  // word index into the corpus
}

// ComparisonRow aligns one query word with the corpus word it lands on.
// Words with more than one syllable are hyphenated.
type ComparisonRow struct {
	CorpusWord  string `json:"corpus_word"`
	QueryWord   string `json:"query_word"`
	CorpusCount int    `json:"corpus_count"`
	QueryCount  int    `json:"query_count"`
	Mismatch    bool   `json:"mismatch"`
}

// MatchTable is one rendered match: the candidate plus its aligned rows.
type MatchTable struct {
	MatchCandidate
	Rows []ComparisonRow `json:"rows"`
}

// MismatchCount returns how many rows disagree on syllable count.
func (t *MatchTable) MismatchCount() int {
	n := 0
	for _, r := range t.Rows {
		if r.Mismatch {
			n++
		}
	}
	return n
}

// CorpusText joins the corpus side of the table with spaces.
func (t *MatchTable) CorpusText() string {
	words := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		words[i] = r.CorpusWord
	}
	return strings.Join(words, " ")
}
