package resources

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/speedata/hyphenation"

	lmierrors "github.com/standardbeagle/lmi/internal/errors"
)

// PatternDictionary hyphenates words with Knuth-Liang patterns in the TeX
// hyph-*.pat.txt format. One dictionary exists per dialect.
type PatternDictionary struct {
	name string
	lang *hyphenation.Lang
}

// minPiece is the shortest run of letters allowed before the first hyphen or
// after the last one.
const minPiece = 2

// ParsePatterns builds a dictionary from a pattern stream.
func ParsePatterns(name string, r io.Reader) (*PatternDictionary, error) {
	lang, err := hyphenation.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s hyphenation patterns: %w", name, err)
	}
	// Leftmin counts from after the first rune, Rightmin from the end.
	lang.Leftmin = minPiece - 1
	lang.Rightmin = minPiece
	return &PatternDictionary{name: name, lang: lang}, nil
}

// LoadPatterns reads a pattern file from disk.
func LoadPatterns(name, path string) (*PatternDictionary, error) {
	r, err := Open(path)
	if err != nil {
		return nil, lmierrors.NewResourceError(name+" hyphenation patterns", path, err)
	}
	defer r.Close()

	d, err := ParsePatterns(name, r)
	if err != nil {
		return nil, lmierrors.NewResourceError(name+" hyphenation patterns", path, err)
	}
	return d, nil
}

// Name returns the dialect label given at load time.
func (d *PatternDictionary) Name() string {
	return d.name
}

// Insert returns word with a hyphen at every break point the patterns allow.
func (d *PatternDictionary) Insert(word string) string {
	if word == "" {
		return word
	}

	lower := strings.ToLower(word)
	runes := []rune(word)
	if len([]rune(lower)) != len(runes) {
		runes = []rune(lower)
	}

	breaks := d.lang.Hyphenate(lower)
	if len(breaks) == 0 {
		return word
	}
	breaks = append([]int(nil), breaks...)
	sort.Ints(breaks)

	var sb strings.Builder
	sb.Grow(len(word) + len(breaks))
	next := 0
	for i, r := range runes {
		for next < len(breaks) && breaks[next] < i {
			next++
		}
		if next < len(breaks) && breaks[next] == i && i >= minPiece && len(runes)-i >= minPiece {
			sb.WriteByte('-')
			next++
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
