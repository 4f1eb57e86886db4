package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/lmi/internal/types"
)

// FileName is the per-project configuration file.
const FileName = ".lmi.kdl"

type Config struct {
	Version   int
	Root      string // directory the config was loaded from; relative resource dirs resolve against it
	Resources Resources
	Corpus    Corpus
	Search    Search
	Resolver  Resolver
	Server    Server
}

// Resources locates the pronunciation and hyphenation data. Every entry is a
// path or a doublestar glob relative to Dir; .zst and .gz files are read
// transparently.
type Resources struct {
	Dir            string
	Pronunciations string // CMU pronouncing dictionary
	HyphenationUS  string // TeX hyphenation patterns, US English
	HyphenationGB  string // TeX hyphenation patterns, GB English
	Lexicon        string // optional TOML expansion overrides
}

type Corpus struct {
	Name     string
	Path     string
	Snapshot string // optional index cache; rebuilt when the text changes
}

type Search struct {
	ScoreCutoff   float64 // minimum similarity ratio, 0-100
	MaxResults    int     // 0 = unlimited
	Workers       int     // 0 = GOMAXPROCS
	ExactFastPath bool
}

type Resolver struct {
	CacheSize    int
	StemFallback bool
}

type Server struct {
	Addr      string
	StaticDir string // built frontend served at "/"; empty disables it
	LogFile   string // rotated debug log for long-running servers
}

// Default returns the built-in configuration rooted at the working directory.
func Default() *Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return &Config{
		Version: 1,
		Root:    root,
		Resources: Resources{
			Dir:            "resources",
			Pronunciations: "cmudict.dict",
			HyphenationUS:  "hyph-en-us*.pat.txt",
			HyphenationGB:  "hyph-en-gb*.pat.txt",
		},
		Corpus: Corpus{
			Name: "kjv",
			Path: "kjv.txt",
		},
		Search: Search{
			ScoreCutoff:   types.DefaultScoreCutoff,
			ExactFastPath: true,
		},
		Resolver: Resolver{
			CacheSize: types.DefaultResolverCacheSize,
		},
		Server: Server{
			Addr: "127.0.0.1:8000",
		},
	}
}

// Load builds the effective configuration for dir: defaults, then the
// global ~/.lmi.kdl, then dir/.lmi.kdl. Later files override individual
// settings of earlier ones.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}
	cfg := Default()
	if abs, err := filepath.Abs(dir); err == nil {
		cfg.Root = abs
	} else {
		cfg.Root = dir
	}

	if home, err := os.UserHomeDir(); err == nil && home != dir {
		if err := applyKDLFile(cfg, filepath.Join(home, FileName)); err != nil {
			return nil, err
		}
	}
	if err := applyKDLFile(cfg, filepath.Join(dir, FileName)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResourceDir returns Resources.Dir resolved against Root.
func (c *Config) ResourceDir() string {
	if c.Resources.Dir == "" {
		return c.Root
	}
	if filepath.IsAbs(c.Resources.Dir) {
		return c.Resources.Dir
	}
	return filepath.Join(c.Root, c.Resources.Dir)
}

// SnapshotPath returns the corpus snapshot path, or "" when disabled.
func (c *Config) SnapshotPath() string {
	if c.Corpus.Snapshot == "" {
		return ""
	}
	if filepath.IsAbs(c.Corpus.Snapshot) {
		return c.Corpus.Snapshot
	}
	return filepath.Join(c.ResourceDir(), c.Corpus.Snapshot)
}
