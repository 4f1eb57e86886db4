package display

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/lmi/internal/types"
)

func sampleTables() (types.Sequence, []types.MatchTable) {
	query := types.Sequence{Words: []string{"i", "love", "lonely"}, Digits: "112"}
	tables := []types.MatchTable{
		{
			MatchCandidate: types.MatchCandidate{Window: "113", Score: 66.7, Start: 0},
			Rows: []types.ComparisonRow{
				{CorpusWord: "in", QueryWord: "i", CorpusCount: 1, QueryCount: 1},
				{CorpusWord: "the", QueryWord: "love", CorpusCount: 1, QueryCount: 1},
				{CorpusWord: "be-gin-ning", QueryWord: "lone-ly", CorpusCount: 3, QueryCount: 2, Mismatch: true},
			},
		},
	}
	return query, tables
}

func TestNewTableFormatter(t *testing.T) {
	f := NewTableFormatter(FormatterOptions{})
	assert.Equal(t, "  ", f.options.Indent)

	f = NewTableFormatter(FormatterOptions{Indent: "\t"})
	assert.Equal(t, "\t", f.options.Indent)
}

func TestFormatText(t *testing.T) {
	query, tables := sampleTables()
	out := NewTableFormatter(FormatterOptions{Marks: true, ShowDigits: true}).Format(query, tables)

	assert.Contains(t, out, "Query: i love lonely\n")
	assert.Contains(t, out, "Meter: 112\n")
	assert.Contains(t, out, "Match 1: score 66.7 at word 0 [113], 1 mismatched\n")

	lines := strings.Split(out, "\n")
	var last string
	for _, l := range lines {
		if strings.Contains(l, "be-gin-ning") {
			last = l
		}
	}
	require.NotEmpty(t, last)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(last), "*"))
	assert.Contains(t, last, "lone-ly")
}

func TestFormatText_NoMatches(t *testing.T) {
	query, _ := sampleTables()
	out := NewTableFormatter(FormatterOptions{}).Format(query, nil)
	assert.Contains(t, out, "No matches")
	assert.NotContains(t, out, "Meter:")
}

func TestFormatCompact(t *testing.T) {
	query, tables := sampleTables()
	out := NewTableFormatter(FormatterOptions{Format: "compact"}).Format(query, tables)
	assert.Equal(t, "0\t66.7\tin the be-gin-ning\n", out)
}

func TestFormatJSON(t *testing.T) {
	query, tables := sampleTables()
	out := NewTableFormatter(FormatterOptions{Format: "json"}).Format(query, tables)

	var decoded struct {
		Query   types.Sequence     `json:"query"`
		Matches []types.MatchTable `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, query, decoded.Query)
	assert.Equal(t, tables, decoded.Matches)

	out = NewTableFormatter(FormatterOptions{Format: "json"}).Format(query, nil)
	assert.Contains(t, out, `"matches": []`)
}

func TestFormatCounts(t *testing.T) {
	assert.Equal(t, "removeth(3) the(1) = 4", FormatCounts([]string{"removeth", "the"}, []int{3, 1}))
	assert.Equal(t, " = 0", FormatCounts(nil, nil))
}
