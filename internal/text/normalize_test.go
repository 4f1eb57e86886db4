package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"possessive kept", "Homie's", "homie's"},
		{"bracketing apostrophes removed", "'Homies'", "homies"},
		{"trailing possessive gains s", "Homies' shoes", "homies's shoes"},
		{"trailing possessive at end of text untouched", "Moses'", "moses'"},
		{"contractions preserved", "I've I have He's he has He'll", "i've i have he's he has he'll"},
		{
			"apostrophe variants fold",
			"I've He's He’ll We‛ll they‘ll Ramsesʼs",
			"i've he's he'll we'll they'll ramses's",
		},
		{
			"punctuation stripped",
			"But “I know whom 'I' [have] (believed),",
			"but i know whom i have believed",
		},
		{"punctuation inside word", "com,m.i<>tted", "committed"},
		{"digits survive", "=+-1234567890`~", "1234567890"},
		{"nested quotes unwrap fully", "''a''", "a"},
		{"whitespace preserved", "In the\nbeginning", "in the\nbeginning"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Homie's",
		"'Homies'",
		"Homies' \"shoes\"",
		"''a''",
		"'a'b'c'",
		"x' 'y",
		"a' b' c",
		"I've got Ramses's 'sandals' and 'James's' flip flops and Moses' sneakers",
		"In the beginning God created the heaven and the earth.",
		"‘Tis the season’s end",
		"' '' ''' '",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestWords(t *testing.T) {
	got := Words("I've got Ramses's 'sandals', and Moses' sneakers!")
	assert.Equal(t, []string{"i've", "got", "ramses's", "sandals", "and", "moses's", "sneakers"}, got)

	// A bare apostrophe survives as its own word
	assert.Equal(t, []string{"a", "'", "b"}, Words("a ' b"))

	assert.Empty(t, Words("  ...  "))
}

func TestHasUpper(t *testing.T) {
	assert.True(t, HasUpper("Ashdothpisgah"))
	assert.True(t, HasUpper("mcDonald"))
	assert.False(t, HasUpper("widow"))
	assert.False(t, HasUpper("can't"))
}

func TestStripApostrophes(t *testing.T) {
	assert.Equal(t, "cant", StripApostrophes("can't"))
	assert.Equal(t, "yalldve", StripApostrophes("y'all'd've"))
}
