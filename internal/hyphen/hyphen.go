// Package hyphen splits words into a fixed number of hyphen-separated parts.
package hyphen

import (
	"math"
	"strings"
)

// Dictionary inserts hyphens at the break points it knows for a word.
type Dictionary interface {
	Insert(word string) string
}

// Hyphenator splits words into exactly the requested number of segments,
// preferring dictionary break points.
type Hyphenator struct {
	dict Dictionary
}

// New creates a Hyphenator. dict may be nil, in which case every multi-part
// split falls back to even character groups.
func New(dict Dictionary) *Hyphenator {
	return &Hyphenator{dict: dict}
}

// Hyphenate returns word split into target segments joined by hyphens.
// The result always has exactly target-1 hyphens when target >= 2, and is
// word unchanged when target <= 1 and the dictionary disagrees.
func (h *Hyphenator) Hyphenate(word string, target int) string {
	if h.dict != nil {
		if hyphenated := h.dict.Insert(word); strings.Count(hyphenated, "-") == target-1 {
			return hyphenated
		}
	}
	if target <= 1 {
		return word
	}
	return EvenSplit(word, target)
}

// EvenSplit cuts word into target contiguous rune groups with boundaries at
// round(i*len/target), rounding halves to even, and joins them with hyphens.
// Groups may be empty when target exceeds the word length. Hyphens already
// in word are dropped first so the hyphen count is exact.
func EvenSplit(word string, target int) string {
	if target <= 1 {
		return word
	}

	runes := []rune(strings.ReplaceAll(word, "-", ""))
	step := float64(len(runes)) / float64(target)

	var sb strings.Builder
	sb.Grow(len(word) + target - 1)
	last := 0
	for i := 1; i < target; i++ {
		cut := int(math.RoundToEven(float64(i) * step))
		if cut < last {
			cut = last
		}
		if cut > len(runes) {
			cut = len(runes)
		}
		sb.WriteString(string(runes[last:cut]))
		sb.WriteByte('-')
		last = cut
	}
	sb.WriteString(string(runes[last:]))
	return sb.String()
}
