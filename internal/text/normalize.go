// Package text turns raw input into the lowercase word sequence used for
// syllable counting. Possessive and contraction apostrophes survive; all other
// punctuation does not.
package text

import (
	"regexp"
	"strings"
	"unicode"
)

// Apostrophe is the canonical apostrophe every variant folds to.
const Apostrophe = '\''

// apostropheVariants are folded to Apostrophe before anything else happens:
// straight, right single quote, modifier letter apostrophe, left single quote,
// and single high-reversed-9 quote.
var apostropheVariants = strings.NewReplacer(
	"’", "'",
	"ʼ", "'",
	"‘", "'",
	"‛", "'",
)

var (
	// 'word' -> word
	bracketingApostrophes = regexp.MustCompile(`'([\p{L}\p{N}_]+)'`)
	// ramses' -> ramses's (only when followed by whitespace)
	trailingPossessive = regexp.MustCompile(`([\p{L}\p{N}_]+')([\s\p{Z}])`)
)

// Normalize lowercases text, folds apostrophe variants, strips punctuation
// other than the apostrophe, unwraps words quoted in apostrophes and gives
// every trailing possessive a uniform "'s" ending.
//
//	Homie's   -> homie's
//	'Homies'  -> homies
//	Ramses' x -> ramses's x
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = apostropheVariants.Replace(s)
	s = stripPunctuation(s)

	// Unwrapping can expose a new bracketed word ("''a''"), so repeat
	// until stable to keep Normalize idempotent.
	for {
		next := bracketingApostrophes.ReplaceAllString(s, "$1")
		if next == s {
			break
		}
		s = next
	}

	return trailingPossessive.ReplaceAllString(s, "${1}s${2}")
}

// SplitWords splits already-normalized text on whitespace.
// A token left as a bare apostrophe is kept as-is.
func SplitWords(normalized string) []string {
	return strings.Fields(normalized)
}

// Words normalizes s and splits it into words.
func Words(s string) []string {
	return SplitWords(Normalize(s))
}

func stripPunctuation(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) || unicode.IsSpace(r) || r == Apostrophe {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// HasUpper reports whether word contains an uppercase letter.
func HasUpper(word string) bool {
	for _, r := range word {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// StripApostrophes removes every canonical apostrophe from word.
func StripApostrophes(word string) string {
	return strings.ReplaceAll(word, string(Apostrophe), "")
}
