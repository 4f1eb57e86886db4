package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lmierrors "github.com/standardbeagle/lmi/internal/errors"
	"github.com/standardbeagle/lmi/internal/hyphen"
	"github.com/standardbeagle/lmi/internal/types"
)

type mapDictionary map[string]string

func (m mapDictionary) Insert(word string) string {
	if h, ok := m[word]; ok {
		return h
	}
	return word
}

var (
	corpusWords  = []string{"in", "the", "beginning", "god", "created", "the", "heaven"}
	corpusDigits = "1131312"
	hyph         = hyphen.New(mapDictionary{"beginning": "be-gin-ning", "created": "cre-at-ed", "heaven": "heav-en"})
)

func TestRender(t *testing.T) {
	rows, err := Render(corpusWords, []string{"one", "lonely", "day"}, corpusDigits, "121", 4, hyph)
	require.NoError(t, err)

	assert.Equal(t, []types.ComparisonRow{
		{CorpusWord: "cre-at-ed", QueryWord: "one", CorpusCount: 3, QueryCount: 1, Mismatch: true},
		{CorpusWord: "the", QueryWord: "lon-ely", CorpusCount: 1, QueryCount: 2, Mismatch: true},
		{CorpusWord: "heav-en", QueryWord: "day", CorpusCount: 2, QueryCount: 1, Mismatch: true},
	}, rows)
}

func TestRender_ExactWindow(t *testing.T) {
	rows, err := Render(corpusWords, []string{"and", "a", "tiger"}, corpusDigits, "113", 0, hyph)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, r := range rows {
		assert.False(t, r.Mismatch)
	}
	assert.Equal(t, "be-gin-ning", rows[2].CorpusWord)
	assert.Equal(t, "ti-g-er", rows[2].QueryWord, "even split when the dictionary has no entry")
}

func TestRender_ZeroCountNotHyphenated(t *testing.T) {
	rows, err := Render([]string{"hmm"}, []string{"hmm"}, "0", "0", 0, hyph)
	require.NoError(t, err)
	assert.Equal(t, "hmm", rows[0].CorpusWord)
}

func TestRender_Validation(t *testing.T) {
	tests := []struct {
		name         string
		corpusWords  []string
		queryWords   []string
		corpusDigits string
		queryDigits  string
		start        int
	}{
		{"corpus misaligned", corpusWords, []string{"a"}, "113", "1", 0},
		{"query misaligned", corpusWords, []string{"a", "b"}, corpusDigits, "1", 0},
		{"query longer than corpus", []string{"a"}, []string{"a", "b"}, "1", "11", 0},
		{"window past end", corpusWords, []string{"a", "b"}, corpusDigits, "11", 6},
		{"negative start", corpusWords, []string{"a"}, corpusDigits, "1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.corpusWords, tt.queryWords, tt.corpusDigits, tt.queryDigits, tt.start, hyph)
			require.Error(t, err)
			assert.True(t, lmierrors.IsValidation(err))
		})
	}
}

func TestTable(t *testing.T) {
	corpus := types.Sequence{Words: corpusWords, Digits: corpusDigits}
	query := types.Sequence{Words: []string{"a", "dog"}, Digits: "11"}
	c := types.MatchCandidate{Window: "11", Score: 100, Start: 0}

	table, err := Table(corpus, query, c, hyph)
	require.NoError(t, err)
	assert.Equal(t, c, table.MatchCandidate)
	assert.Equal(t, "in the", table.CorpusText())
	assert.Equal(t, 0, table.MismatchCount())
}
