package syllable

import (
	"regexp"
	"strings"

	"github.com/surgebase/porter2"
)

// TransformKind tags each step of the resolution chain.
type TransformKind int

const (
	Direct TransformKind = iota
	StripLongSuffix
	StripPlural
	StripSuffixExtra
	SuffixToY
	DialectNormalize
	DialectNormalizeLong
	AgentNounNormalize
	StemFallback
	Estimated // algorithmic hyphenation estimate, not a dictionary hit
)

var kindNames = map[TransformKind]string{
	Direct:               "direct",
	StripLongSuffix:      "strip-long-suffix",
	StripPlural:          "strip-plural",
	StripSuffixExtra:     "strip-suffix-extra",
	SuffixToY:            "suffix-to-y",
	DialectNormalize:     "dialect-normalize",
	DialectNormalizeLong: "dialect-normalize-long",
	AgentNounNormalize:   "agent-noun-normalize",
	StemFallback:         "stem-fallback",
	Estimated:            "estimated",
}

func (k TransformKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Transform rewrites an unrecognised word into dictionary candidates.
// Candidates are tried in order; the first one found wins and its count is
// shifted by Adjust (archaic -eth/-est endings add a syllable).
type Transform struct {
	Kind       TransformKind
	Applies    func(word string) bool
	Candidates func(word string) []string
	Adjust     int
}

// Rewrite returns the candidates for word, or nil when the rule does not apply.
func (t Transform) Rewrite(word string) []string {
	if !t.Applies(word) {
		return nil
	}
	var out []string
	for _, c := range t.Candidates(word) {
		if c != "" && c != word {
			out = append(out, c)
		}
	}
	return out
}

var (
	archaicSuffixes = []string{"eth", "est"}
	// longest first so "repliest" becomes "reply", not "repliy"
	toYSuffixes = []string{"ieth", "iest", "eth", "est"}

	ourTail = regexp.MustCompile(`our\w+`)
)

func hasAnySuffix(word string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(word, s) {
			return true
		}
	}
	return false
}

func dropLast(word string, n int) string {
	if len(word) <= n {
		return ""
	}
	return word[:len(word)-n]
}

// DefaultTransforms is the deep-fallback chain, in resolution order.
//
//	removeth    -> remove   +1   (strip-long-suffix)
//	staggereth  -> stagger  +1   (strip-long-suffix)
//	preachers   -> preacher      (strip-plural)
//	slippeth    -> slip     +1   (strip-suffix-extra)
//	repliest    -> reply    +1   (suffix-to-y)
//	honour      -> honor         (dialect-normalize)
//	dishonourest-> dishonor +1   (dialect-normalize-long)
//	tormentor   -> tormenter     (agent-noun-normalize)
var DefaultTransforms = []Transform{
	{
		Kind:    StripLongSuffix,
		Applies: func(w string) bool { return hasAnySuffix(w, archaicSuffixes) },
		Candidates: func(w string) []string {
			return []string{dropLast(w, 3), dropLast(w, 2)}
		},
		Adjust: 1,
	},
	{
		Kind:       StripPlural,
		Applies:    func(w string) bool { return strings.HasSuffix(w, "s") },
		Candidates: func(w string) []string { return []string{dropLast(w, 1)} },
	},
	{
		Kind:       StripSuffixExtra,
		Applies:    func(w string) bool { return hasAnySuffix(w, archaicSuffixes) },
		Candidates: func(w string) []string { return []string{dropLast(w, 4)} },
		Adjust:     1,
	},
	{
		Kind:    SuffixToY,
		Applies: func(w string) bool { return hasAnySuffix(w, toYSuffixes) },
		Candidates: func(w string) []string {
			for _, s := range toYSuffixes {
				if strings.HasSuffix(w, s) {
					return []string{strings.TrimSuffix(w, s) + "y"}
				}
			}
			return nil
		},
		Adjust: 1,
	},
	{
		Kind:       DialectNormalize,
		Applies:    func(w string) bool { return strings.Contains(w, "our") },
		Candidates: func(w string) []string { return []string{strings.ReplaceAll(w, "our", "or")} },
	},
	{
		Kind: DialectNormalizeLong,
		Applies: func(w string) bool {
			return strings.Contains(w, "our") && hasAnySuffix(w, archaicSuffixes)
		},
		Candidates: func(w string) []string { return []string{ourTail.ReplaceAllString(w, "or")} },
		Adjust:     1,
	},
	{
		Kind:    AgentNounNormalize,
		Applies: func(w string) bool { return strings.HasSuffix(w, "or") || strings.HasSuffix(w, "ors") },
		Candidates: func(w string) []string {
			if strings.HasSuffix(w, "ors") {
				return []string{dropLast(w, 3) + "er"}
			}
			return []string{dropLast(w, 2) + "er"}
		},
	},
}

// StemTransform reduces the word to its Porter2 stem. It is appended to the
// chain only when stem fallback is enabled.
var StemTransform = Transform{
	Kind:       StemFallback,
	Applies:    func(w string) bool { return len(w) > 3 },
	Candidates: func(w string) []string { return []string{porter2.Stem(w)} },
}
