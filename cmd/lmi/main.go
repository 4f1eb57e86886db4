package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/lmi/internal/config"
	"github.com/standardbeagle/lmi/internal/debug"
	"github.com/standardbeagle/lmi/internal/search"
	"github.com/standardbeagle/lmi/internal/version"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	dir := c.String("root")
	if dir == "" {
		dir = "."
	}
	absRoot, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %q: %w", dir, err)
	}

	cfg, err := config.Load(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", absRoot, err)
	}

	if v := c.String("resources"); v != "" {
		cfg.Resources.Dir = v
	}
	if v := c.String("corpus"); v != "" {
		cfg.Corpus.Name = v
		cfg.Corpus.Path = v + ".txt"
	}
	if v := c.String("corpus-file"); v != "" {
		cfg.Corpus.Path = v
	}
	if c.IsSet("workers") {
		cfg.Search.Workers = c.Int("workers")
	}
	if c.Bool("stem") {
		cfg.Resolver.StemFallback = true
	}

	if err := config.NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var stopProfile func()

func profiling(c *cli.Context) search.ProfilingConfig {
	return search.ProfilingConfig{
		CPUProfile: c.String("profile-cpu"),
		MemProfile: c.String("profile-memory"),
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "lmi",
		Usage:                  "Find passages that share the syllable meter of a phrase",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory holding .lmi.kdl (default: current directory)",
			},
			&cli.StringFlag{
				Name:  "resources",
				Usage: "Resource directory (overrides config)",
			},
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "Corpus name; reads <name>.txt from the resource directory",
			},
			&cli.StringFlag{
				Name:  "corpus-file",
				Usage: "Corpus text file or glob (overrides config)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Parallel workers for indexing and search (0 = all CPUs)",
			},
			&cli.BoolFlag{
				Name:  "stem",
				Usage: "Try the Porter2 stem of unknown words before estimating",
			},
			&cli.StringFlag{
				Name:   "profile-cpu",
				Usage:  "Write CPU profile to file",
				Hidden: true,
			},
			&cli.StringFlag{
				Name:   "profile-memory",
				Usage:  "Write memory profile to file",
				Hidden: true,
			},
		},
		Before: func(c *cli.Context) error {
			if path := os.Getenv("LMI_DEBUG_LOG"); path != "" {
				if err := debug.InitRotatingLog(path, 0); err != nil {
					return err
				}
			} else if debug.IsDebugEnabled() {
				debug.SetDebugOutput(c.App.ErrWriter)
			}
			stop, err := search.StartCPUProfile(profiling(c))
			if err != nil {
				return fmt.Errorf("failed to start CPU profile: %w", err)
			}
			stopProfile = stop
			return nil
		},
		After: func(c *cli.Context) error {
			if stopProfile != nil {
				stopProfile()
				stopProfile = nil
			}
			if err := search.WriteMemProfile(profiling(c)); err != nil {
				return fmt.Errorf("failed to write memory profile: %w", err)
			}
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Aliases:   []string{"s"},
				Usage:     "Search the corpus for passages matching the meter of a phrase",
				ArgsUsage: "<phrase>",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "cutoff",
						Usage: "Minimum similarity score, 0-100 (default from config)",
					},
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"m"},
						Usage:   "Maximum matches (default from config, -1 for all)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, compact or json",
						Value:   "text",
					},
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON (same as --format json)",
					},
					&cli.BoolFlag{
						Name:  "server",
						Usage: "Send the search to a running lmi server instead of loading the corpus",
					},
				},
				Action: searchCommand,
			},
			{
				Name:      "count",
				Aliases:   []string{"c"},
				Usage:     "Count syllables per word",
				ArgsUsage: "<text>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Show how each count was resolved"},
				},
				Action: countCommand,
			},
			{
				Name:      "analyze",
				Usage:     "Show expansion options and counts for each word",
				ArgsUsage: "<text>",
				Action:    analyzeCommand,
			},
			{
				Name:      "hyphenate",
				Usage:     "Split words into syllable-sized parts",
				ArgsUsage: "<word>...",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "parts", Aliases: []string{"p"}, Usage: "Number of parts (default: resolved syllable count)"},
				},
				Action: hyphenateCommand,
			},
			{
				Name:  "index",
				Usage: "Build the corpus index and write its snapshot",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Snapshot path (default from config, else <corpus>.lmi)"},
				},
				Action: indexCommand,
			},
			{
				Name:  "status",
				Usage: "Show corpus status of a running server",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Aliases: []string{"j"}, Usage: "Output as JSON"},
				},
				Action: statusCommand,
			},
			{
				Name:  "serve",
				Usage: "Run the HTTP server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "Listen address (overrides config)"},
					&cli.StringFlag{Name: "static", Usage: "Directory served at / (overrides config)"},
					&cli.StringFlag{Name: "log-file", Usage: "Rotated debug log (overrides config)"},
				},
				Action: serveCommand,
			},
			{
				Name:  "shutdown",
				Usage: "Stop a running server",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "Request immediate shutdown"},
				},
				Action: shutdownCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Run as an MCP server over stdio",
				Action: mcpCommand,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		debug.FatalAndExit("%v", err)
	}
}
