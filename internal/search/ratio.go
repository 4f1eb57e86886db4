// Package search finds corpus windows whose syllable digits resemble a query.
package search

import (
	edlib "github.com/hbollon/go-edlib"
)

// Ratio scores two strings in [0,100] by insertion/deletion edit distance:
//
//	100 * (len(a)+len(b) - indel(a,b)) / (len(a)+len(b))
//
// where indel(a,b) = len(a)+len(b) - 2*LCS(a,b). Identical strings score 100,
// including two empty strings.
func Ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	if a == b {
		return 100
	}
	lcs := edlib.LCS(a, b)
	return 100 * float64(2*lcs) / float64(total)
}
