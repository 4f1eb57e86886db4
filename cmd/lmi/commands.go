package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/lmi/internal/display"
	"github.com/standardbeagle/lmi/internal/engine"
	"github.com/standardbeagle/lmi/internal/server"
	"github.com/standardbeagle/lmi/internal/text"
	"github.com/standardbeagle/lmi/internal/types"
)

func argsText(c *cli.Context, what string) (string, error) {
	input := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if input == "" {
		return "", fmt.Errorf("%s is required", what)
	}
	return input, nil
}

// searchCommand runs a meter search locally or against a running server
func searchCommand(c *cli.Context) error {
	phrase, err := argsText(c, "phrase")
	if err != nil {
		return err
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	format := c.String("format")
	if c.Bool("json") {
		format = "json"
	}
	formatter := display.NewTableFormatter(display.FormatterOptions{
		Format:     format,
		Marks:      true,
		ShowDigits: true,
	})

	var (
		query  types.Sequence
		tables []types.MatchTable
	)
	if c.Bool("server") {
		client := server.NewClient(cfg.Server.Addr)
		resp, err := client.Search(phrase, c.Float64("cutoff"), c.Int("max"))
		if err != nil {
			return err
		}
		query = types.Sequence{Words: text.Words(phrase), Digits: resp.Digits}
		tables = resp.Tables
	} else {
		e, err := engine.NewFromConfig(cfg)
		if err != nil {
			return err
		}
		if query, err = e.Query(phrase); err != nil {
			return err
		}
		tables, err = e.SearchCorpusWith(c.Context, phrase, engine.SearchParams{
			ScoreCutoff: c.Float64("cutoff"),
			MaxResults:  c.Int("max"),
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(c.App.Writer, strings.TrimRight(formatter.Format(query, tables), "\n"))
	return nil
}

// countCommand prints per-word syllable counts
func countCommand(c *cli.Context) error {
	input, err := argsText(c, "text")
	if err != nil {
		return err
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	e, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	total, words := e.Count(input)
	if c.Bool("verbose") {
		for _, w := range words {
			fmt.Fprintf(c.App.Writer, "%-20s %2d  %s\n", w.Word, w.Count, w.Method)
		}
		fmt.Fprintf(c.App.Writer, "total %d\n", total)
		return nil
	}

	names := make([]string, len(words))
	counts := make([]int, len(words))
	for i, w := range words {
		names[i], counts[i] = w.Word, w.Count
	}
	fmt.Fprintln(c.App.Writer, display.FormatCounts(names, counts))
	return nil
}

// analyzeCommand prints every expansion option of each word
func analyzeCommand(c *cli.Context) error {
	input, err := argsText(c, "text")
	if err != nil {
		return err
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	e, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	words, err := e.Analyze(input)
	if err != nil {
		return err
	}
	for _, w := range words {
		opts := make([]string, len(w.Options))
		for i, o := range w.Options {
			opts[i] = fmt.Sprintf("%s(%d)", o.Text, o.Syllables)
		}
		fmt.Fprintf(c.App.Writer, "%s: %s\n", w.Word, strings.Join(opts, " | "))
	}
	return nil
}

// hyphenateCommand prints each argument split into parts
func hyphenateCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("word is required")
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	e, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	for _, word := range c.Args().Slice() {
		fmt.Fprintln(c.App.Writer, e.Hyphenate(word, c.Int("parts")))
	}
	return nil
}

// indexCommand builds the corpus index and saves its snapshot
func indexCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	switch {
	case c.String("output") != "":
		out, err := filepath.Abs(c.String("output"))
		if err != nil {
			return err
		}
		cfg.Corpus.Snapshot = out
	case cfg.Corpus.Snapshot == "":
		cfg.Corpus.Snapshot = cfg.Corpus.Name + ".lmi"
	}

	e, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	started := time.Now()
	if err := e.Warm(c.Context); err != nil {
		return fmt.Errorf("failed to build corpus %s: %w", cfg.Corpus.Name, err)
	}
	st := e.Status()
	fmt.Fprintf(c.App.Writer, "Indexed %s: %d words, fingerprint %s, %v\n",
		st.Corpus, st.Words, st.Fingerprint, time.Since(started).Round(time.Millisecond))
	fmt.Fprintf(c.App.Writer, "Snapshot: %s\n", cfg.SnapshotPath())
	return nil
}

// statusCommand shows the status of a running server
func statusCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	client := server.NewClient(cfg.Server.Addr)
	status, err := client.GetStatus()
	if err != nil {
		return fmt.Errorf("no server is running at %s: %w", cfg.Server.Addr, err)
	}

	if c.Bool("json") {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, string(data))
		return nil
	}

	state := "building"
	if status.Ready {
		state = "ready"
	}
	if status.Error != "" {
		state = "failed: " + status.Error
	}
	fmt.Fprintf(c.App.Writer, "Corpus:       %s (%s)\n", status.Corpus, state)
	fmt.Fprintf(c.App.Writer, "Words:        %d\n", status.Words)
	if status.Fingerprint != "" {
		fmt.Fprintf(c.App.Writer, "Fingerprint:  %s\n", status.Fingerprint)
	}
	fmt.Fprintf(c.App.Writer, "Cached words: %d\n", status.CachedWords)
	fmt.Fprintf(c.App.Writer, "Searches:     %d (avg %.2fms, max %.2fms)\n",
		status.Searches.Searches, status.Searches.AvgSearchMs, status.Searches.MaxSearchMs)
	fmt.Fprintf(c.App.Writer, "Uptime:       %v\n", (time.Duration(status.UptimeSeconds) * time.Second).String())
	return nil
}
