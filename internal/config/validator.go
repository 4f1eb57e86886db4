package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	lmierrors "github.com/standardbeagle/lmi/internal/errors"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
// Every section is checked; each failure is a ConfigError naming its section
// and all of them come back together as one MultiError.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	sections := []struct {
		name  string
		check func() error
	}{
		{"resources", func() error { return v.validateResources(&cfg.Resources) }},
		{"corpus", func() error { return v.validateCorpus(&cfg.Corpus) }},
		{"search", func() error { return v.validateSearch(&cfg.Search) }},
		{"resolver", func() error { return v.validateResolver(&cfg.Resolver) }},
		{"server", func() error { return v.validateServer(&cfg.Server) }},
	}

	var errs []error
	for _, section := range sections {
		if err := section.check(); err != nil {
			errs = append(errs, lmierrors.NewConfigError(section.name, "", err))
		}
	}
	if err := lmierrors.NewMultiError(errs).ErrorOrNil(); err != nil {
		return err
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateResources(r *Resources) error {
	required := []struct{ key, pattern string }{
		{"pronunciations", r.Pronunciations},
		{"hyphenation_us", r.HyphenationUS},
		{"hyphenation_gb", r.HyphenationGB},
	}
	for _, f := range required {
		if strings.TrimSpace(f.pattern) == "" {
			return fmt.Errorf("%s cannot be empty", f.key)
		}
		if !doublestar.ValidatePattern(f.pattern) {
			return fmt.Errorf("%s: invalid pattern %q", f.key, f.pattern)
		}
	}
	return nil
}

func (v *Validator) validateCorpus(c *Corpus) error {
	if c.Path == "" {
		return errors.New("corpus path cannot be empty")
	}
	if c.Name == "" {
		return errors.New("corpus name cannot be empty")
	}
	if strings.ContainsAny(c.Name, "/ ") {
		return fmt.Errorf("corpus name %q must not contain '/' or spaces", c.Name)
	}
	return nil
}

func (v *Validator) validateSearch(s *Search) error {
	if s.ScoreCutoff < 0 || s.ScoreCutoff > 100 {
		return fmt.Errorf("ScoreCutoff must be between 0 and 100, got %v", s.ScoreCutoff)
	}
	if s.MaxResults < 0 {
		return fmt.Errorf("MaxResults cannot be negative, got %d", s.MaxResults)
	}
	// Workers: 0 means GOMAXPROCS
	if s.Workers < 0 {
		return fmt.Errorf("Workers cannot be negative, got %d", s.Workers)
	}
	return nil
}

func (v *Validator) validateResolver(r *Resolver) error {
	if r.CacheSize < 0 {
		return fmt.Errorf("CacheSize cannot be negative, got %d", r.CacheSize)
	}
	return nil
}

func (v *Validator) validateServer(s *Server) error {
	if s.Addr == "" {
		return errors.New("server addr cannot be empty")
	}
	return nil
}

// setSmartDefaults fills zero values that mean "use the built-in default"
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Resolver.CacheSize == 0 {
		cfg.Resolver.CacheSize = Default().Resolver.CacheSize
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
}
