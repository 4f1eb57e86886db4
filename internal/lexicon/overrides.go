package lexicon

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	lmierrors "github.com/standardbeagle/lmi/internal/errors"
	"github.com/standardbeagle/lmi/internal/resources"
)

// overrideFile is the on-disk shape of a lexicon override file:
//
//	[expansions]
//	"finna" = ["fixing to"]
//	"'tis"  = ["it is"]
type overrideFile struct {
	Expansions map[string][]string `toml:"expansions"`
}

// ParseOverrides decodes a TOML override document into table entries.
func ParseOverrides(data []byte) (map[string][]string, error) {
	var f overrideFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon overrides: %w", err)
	}
	for k, v := range f.Expansions {
		if len(v) == 0 {
			return nil, fmt.Errorf("lexicon override %q has no expansions", k)
		}
	}
	return f.Expansions, nil
}

// LoadOverrides reads a TOML override file and merges it into e.
func (e *Expander) LoadOverrides(path string) error {
	data, err := resources.ReadAll(path)
	if err != nil {
		return lmierrors.NewResourceError("lexicon overrides", path, err)
	}
	entries, err := ParseOverrides(data)
	if err != nil {
		return lmierrors.NewResourceError("lexicon overrides", path, err)
	}
	e.AddExpansions(entries)
	return nil
}
