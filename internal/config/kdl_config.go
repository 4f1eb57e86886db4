package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL parses a single KDL file over the defaults. A missing file yields
// (nil, nil).
func LoadKDL(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	if err := applyKDLFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyKDLFile(cfg *Config, path string) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", path, err)
	}
	if err := applyKDL(cfg, string(content)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// parseKDL parses content over the defaults.
func parseKDL(content string) (*Config, error) {
	cfg := Default()
	if err := applyKDL(cfg, content); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "resources":
			for _, cn := range n.Children { // resources { dir "data" pronunciations "cmudict.dict" }
				assignSimpleString(cn, "dir", func(v string) { cfg.Resources.Dir = v })
				assignSimpleString(cn, "pronunciations", func(v string) { cfg.Resources.Pronunciations = v })
				assignSimpleString(cn, "hyphenation_us", func(v string) { cfg.Resources.HyphenationUS = v })
				assignSimpleString(cn, "hyphenation_gb", func(v string) { cfg.Resources.HyphenationGB = v })
				assignSimpleString(cn, "lexicon", func(v string) { cfg.Resources.Lexicon = v })
			}
		case "corpus":
			for _, cn := range n.Children {
				assignSimpleString(cn, "name", func(v string) { cfg.Corpus.Name = v })
				assignSimpleString(cn, "path", func(v string) { cfg.Corpus.Path = v })
				assignSimpleString(cn, "snapshot", func(v string) { cfg.Corpus.Snapshot = v })
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "score_cutoff":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Search.ScoreCutoff = v
					}
				case "max_results":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.MaxResults = v
					}
				case "workers":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.Workers = v
					}
				case "exact_fast_path":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.ExactFastPath = b
					}
				}
			}
		case "resolver":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "cache_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Resolver.CacheSize = v
					}
				case "stem_fallback":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Resolver.StemFallback = b
					}
				}
			}
		case "server":
			for _, cn := range n.Children {
				assignSimpleString(cn, "addr", func(v string) { cfg.Server.Addr = v })
				assignSimpleString(cn, "static_dir", func(v string) { cfg.Server.StaticDir = v })
				assignSimpleString(cn, "log_file", func(v string) { cfg.Server.LogFile = v })
			}
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		}
	}
	return nil
}

// Helper functions over the kdl-go document model
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}
func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}
func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}
func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		log.Printf("WARNING: invalid float value for '%s' in KDL config, expected number but got %T", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}
func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
