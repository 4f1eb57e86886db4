package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeCount(t *testing.T) {
	tests := []struct {
		count int
		want  byte
	}{
		{-1, '0'},
		{0, '0'},
		{1, '1'},
		{9, '9'},
		{10, ':'},
		{12, '<'},
		{78, '~'},
		{200, '~'},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeCount(tt.count), "count %d", tt.count)
	}

	assert.Equal(t, 12, DecodeCount(EncodeCount(12)))
	assert.Equal(t, 0, DecodeCount(' '))
}

func TestEncodeCounts(t *testing.T) {
	assert.Equal(t, "1131312", EncodeCounts([]int{1, 1, 3, 1, 3, 1, 2}))
	assert.Equal(t, "", EncodeCounts(nil))

	long := EncodeCounts([]int{1, 11, 2})
	assert.Len(t, long, 3, "one byte per word regardless of count")
}

func TestSequenceValidate(t *testing.T) {
	s := Sequence{Words: []string{"in", "the"}, Digits: "11"}
	assert.NoError(t, s.Validate())
	assert.Equal(t, 2, s.Len())

	s.Digits = "1"
	assert.Error(t, s.Validate())
}

func TestWordSyllable(t *testing.T) {
	ws := WordSyllable{Word: "i've", Options: []WordOption{{"i've", 1}, {"i have", 2}}}
	assert.Equal(t, WordOption{"i've", 1}, ws.Literal())
	assert.Equal(t, []int{1, 2}, ws.SyllableOptions())

	empty := WordSyllable{Word: "x"}
	assert.Equal(t, WordOption{Text: "x"}, empty.Literal())
	assert.Empty(t, empty.SyllableOptions())
}

func TestMatchTable(t *testing.T) {
	table := MatchTable{Rows: []ComparisonRow{
		{CorpusWord: "in", QueryWord: "i"},
		{CorpusWord: "be-gin-ning", QueryWord: "lone-ly", Mismatch: true},
	}}
	assert.Equal(t, 1, table.MismatchCount())
	assert.Equal(t, "in be-gin-ning", table.CorpusText())
}
