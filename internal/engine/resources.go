package engine

import (
	"github.com/standardbeagle/lmi/internal/config"
	"github.com/standardbeagle/lmi/internal/debug"
	lmierrors "github.com/standardbeagle/lmi/internal/errors"
	"github.com/standardbeagle/lmi/internal/lexicon"
	"github.com/standardbeagle/lmi/internal/resources"
)

// Resources holds the static data every engine needs.
type Resources struct {
	Pronunciations *resources.Pronunciations
	HyphenationUS  *resources.PatternDictionary
	HyphenationGB  *resources.PatternDictionary
	Expander       *lexicon.Expander
	CorpusPath     string
}

// LoadResources locates and parses every configured resource. Any missing or
// unreadable resource is a ResourceError; nothing is partially loaded.
func LoadResources(cfg *config.Config) (*Resources, error) {
	dir := cfg.ResourceDir()

	find := func(what, pattern string) (string, error) {
		path, err := resources.Resolve(dir, pattern)
		if err != nil {
			return "", lmierrors.NewResourceError(what, pattern, err)
		}
		return path, nil
	}

	pronPath, err := find("pronunciation dictionary", cfg.Resources.Pronunciations)
	if err != nil {
		return nil, err
	}
	usPath, err := find("en_US hyphenation patterns", cfg.Resources.HyphenationUS)
	if err != nil {
		return nil, err
	}
	gbPath, err := find("en_GB hyphenation patterns", cfg.Resources.HyphenationGB)
	if err != nil {
		return nil, err
	}
	corpusPath, err := find("corpus "+cfg.Corpus.Name, cfg.Corpus.Path)
	if err != nil {
		return nil, err
	}

	res := &Resources{CorpusPath: corpusPath, Expander: lexicon.NewExpander()}
	if res.Pronunciations, err = resources.LoadPronunciations(pronPath); err != nil {
		return nil, err
	}
	if res.HyphenationUS, err = resources.LoadPatterns("en_US", usPath); err != nil {
		return nil, err
	}
	if res.HyphenationGB, err = resources.LoadPatterns("en_GB", gbPath); err != nil {
		return nil, err
	}

	if cfg.Resources.Lexicon != "" {
		lexPath, err := find("lexicon overrides", cfg.Resources.Lexicon)
		if err != nil {
			return nil, err
		}
		if err := res.Expander.LoadOverrides(lexPath); err != nil {
			return nil, err
		}
	}

	debug.LogCorpus("resources: %d pronunciations from %s, patterns %s and %s, corpus %s",
		res.Pronunciations.Len(), pronPath, usPath, gbPath, corpusPath)
	return res, nil
}
