// Package testhelpers provides shared fixtures for testing Lightning Meter Index
package testhelpers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/lmi/internal/config"
	"github.com/standardbeagle/lmi/internal/corpus"
	"github.com/standardbeagle/lmi/internal/engine"
	"github.com/standardbeagle/lmi/internal/hyphen"
	"github.com/standardbeagle/lmi/internal/lexicon"
	"github.com/standardbeagle/lmi/internal/resources"
	"github.com/standardbeagle/lmi/internal/search"
	"github.com/standardbeagle/lmi/internal/syllable"
)

// FixtureCorpus is Genesis 1:1-3.
const FixtureCorpus = `In the beginning God created the heaven and the earth.
And the earth was without form, and void; and darkness was upon the face of the deep.
And the Spirit of God moved upon the face of the waters.
And God said, Let there be light: and there was light.`

// FixtureDigits is the digit string FixtureCorpus builds to with FixtureDictionary.
const FixtureDigits = "1131312111" + "11112111121211111" + "112111211112" + "11111111111"

// FixtureDictionary is a CMU-format pronunciation dictionary covering every
// word of FixtureCorpus plus a few query words.
const FixtureDictionary = `;;; fixture pronunciations
AND  AH0 N D
AND(2)  AE1 N D
BE  B IY1
BEGINNING  B IH0 G IH1 N IH0 NG
CAN  K AE1 N
CANNOT  K AE1 N AA0 T
CREATED  K R IY0 EY1 T AH0 D
DARKNESS  D AA1 R K N AH0 S
DAY  D EY1
DEEP  D IY1 P
EARTH  ER1 TH
FACE  F EY1 S
FORM  F AO1 R M
GOD  G AA1 D
HAVE  HH AE1 V
HEAVEN  HH EH1 V AH0 N
HONOR  AA1 N ER0
I  AY1
I'VE  AY1 V
IN  IH0 N
LET  L EH1 T
LIGHT  L AY1 T
LONELY  L OW1 N L IY0
LOVE  L AH1 V
MOVED  M UW1 V D
NOT  N AA1 T
OF  AH1 V
REMOVE  R IH0 M UW1 V
SAID  S EH1 D
SPIRIT  S P IH1 R AH0 T
THE  DH AH0
THE(2)  DH AH1
THERE  DH EH1 R
UPON  AH0 P AA1 N
VOID  V OY1 D
WAS  W AA1 Z
WATERS  W AO1 T ER0 Z
WITHOUT  W IH0 TH AW1 T
YOU  Y UW1
`

// FixturePatterns is a small Knuth-Liang pattern set good enough to split
// the fixture words somewhere plausible.
const FixturePatterns = `1ba
1be
1bi
1ca
1ce
1de
1ga
1gi
1na
1ni
1ta
1ti
1va
1ve
1ly
`

// MapDictionary is a hyphen.Dictionary backed by a fixed map.
type MapDictionary map[string]string

// Insert returns the mapped hyphenation, or word unchanged.
func (m MapDictionary) Insert(word string) string {
	if h, ok := m[word]; ok {
		return h
	}
	return word
}

// FixtureHyphenation returns dictionary splits for the multi-syllable
// fixture words.
func FixtureHyphenation() MapDictionary {
	return MapDictionary{
		"beginning":  "be-gin-ning",
		"created":    "cre-at-ed",
		"heaven":     "heav-en",
		"without":    "with-out",
		"darkness":   "dark-ness",
		"upon":       "up-on",
		"spirit":     "spir-it",
		"waters":     "wa-ters",
		"lonely":     "lone-ly",
		"zerubbabel": "ze-rub-ba-bel",
	}
}

// FixturePronunciations parses FixtureDictionary.
func FixturePronunciations(t testing.TB) *resources.Pronunciations {
	t.Helper()
	p, err := resources.ParsePronunciations(strings.NewReader(FixtureDictionary))
	require.NoError(t, err)
	return p
}

// NewFixtureResolver builds a resolver over the fixture dictionary and
// fixture hyphenation.
func NewFixtureResolver(t testing.TB) *syllable.Resolver {
	t.Helper()
	h := FixtureHyphenation()
	r, err := syllable.NewResolver(FixturePronunciations(t), []hyphen.Dictionary{h, h}, syllable.Options{CacheSize: 256})
	require.NoError(t, err)
	return r
}

// NewFixtureEngine returns an engine over FixtureCorpus named "genesis".
func NewFixtureEngine(t testing.TB) *engine.Engine {
	t.Helper()
	r := NewFixtureResolver(t)
	provider := corpus.NewProvider(func(ctx context.Context) (*corpus.Index, error) {
		return corpus.Build(ctx, "genesis", FixtureCorpus, r, corpus.BuildOptions{Workers: 2})
	})
	e, err := engine.New(engine.Options{
		Resolver:    r,
		Expander:    lexicon.NewExpander(),
		Hyphenator:  hyphen.New(FixtureHyphenation()),
		Corpus:      provider,
		CorpusName:  "genesis",
		ScoreCutoff: 95,
		Search:      search.Options{Workers: 2, ExactFastPath: true},
	})
	require.NoError(t, err)
	return e
}

// WriteFixtureResources writes the fixture dictionary, pattern files and
// corpus under a temp dir and returns a config pointing at them.
func WriteFixtureResources(t testing.TB) *config.Config {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "resources")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "patterns"), 0755))

	files := map[string]string{
		"cmudict.dict":                FixtureDictionary,
		"patterns/hyph-en-us.pat.txt": FixturePatterns,
		"patterns/hyph-en-gb.pat.txt": FixturePatterns,
		"genesis.txt":                 FixtureCorpus,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	cfg := config.Default()
	cfg.Root = root
	cfg.Resources.HyphenationUS = "**/hyph-en-us*.pat.txt"
	cfg.Resources.HyphenationGB = "**/hyph-en-gb*.pat.txt"
	cfg.Corpus.Name = "genesis"
	cfg.Corpus.Path = "genesis.txt"
	cfg.Search.Workers = 2
	return cfg
}
