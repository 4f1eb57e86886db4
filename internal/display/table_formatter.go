// Package display formats match tables for terminal output.
package display

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/standardbeagle/lmi/internal/types"
)

// TableFormatter formats rendered matches for display
type TableFormatter struct {
	options FormatterOptions
}

// FormatterOptions controls table formatting
type FormatterOptions struct {
	Format     string // "text", "json", "compact"
	Marks      bool   // flag rows whose syllable counts differ
	ShowDigits bool   // print the matched digit window in headers
	Indent     string // indentation string for table rows
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options FormatterOptions) *TableFormatter {
	if options.Indent == "" {
		options.Indent = "  "
	}
	return &TableFormatter{options: options}
}

// Format formats every table for display
func (tf *TableFormatter) Format(query types.Sequence, tables []types.MatchTable) string {
	switch tf.options.Format {
	case "json":
		return tf.formatJSON(query, tables)
	case "compact":
		return tf.formatCompact(tables)
	default:
		return tf.formatText(query, tables)
	}
}

func (tf *TableFormatter) formatText(query types.Sequence, tables []types.MatchTable) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Query: %s\n", strings.Join(query.Words, " ")))
	if tf.options.ShowDigits {
		sb.WriteString(fmt.Sprintf("Meter: %s\n", query.Digits))
	}
	if len(tables) == 0 {
		sb.WriteString("No matches\n")
		return sb.String()
	}

	for i := range tables {
		sb.WriteString("\n")
		tf.formatTable(&sb, i+1, &tables[i])
	}
	return sb.String()
}

// formatTable writes one match as aligned columns
func (tf *TableFormatter) formatTable(sb *strings.Builder, n int, table *types.MatchTable) {
	header := fmt.Sprintf("Match %d: score %.1f at word %d", n, table.Score, table.Start)
	if tf.options.ShowDigits {
		header += fmt.Sprintf(" [%s]", table.Window)
	}
	if m := table.MismatchCount(); m > 0 {
		header += fmt.Sprintf(", %d mismatched", m)
	}
	sb.WriteString(header + "\n")

	w := tabwriter.NewWriter(sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%scorpus\t#\tquery\t#\t\n", tf.options.Indent)
	for _, row := range table.Rows {
		mark := ""
		if tf.options.Marks && row.Mismatch {
			mark = "*"
		}
		fmt.Fprintf(w, "%s%s\t%d\t%s\t%d\t%s\n", tf.options.Indent, row.CorpusWord, row.CorpusCount, row.QueryWord, row.QueryCount, mark)
	}
	w.Flush()
}

// formatCompact writes one line per match
func (tf *TableFormatter) formatCompact(tables []types.MatchTable) string {
	var sb strings.Builder
	for i := range tables {
		sb.WriteString(fmt.Sprintf("%d\t%.1f\t%s\n", tables[i].Start, tables[i].Score, tables[i].CorpusText()))
	}
	return sb.String()
}

// formatJSON formats the query and its matches as indented JSON
func (tf *TableFormatter) formatJSON(query types.Sequence, tables []types.MatchTable) string {
	if tables == nil {
		tables = []types.MatchTable{}
	}
	data, err := json.MarshalIndent(struct {
		Query   types.Sequence     `json:"query"`
		Matches []types.MatchTable `json:"matches"`
	}{query, tables}, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// FormatCounts formats per-word counts as "word(n)" tokens with a total
func FormatCounts(words []string, counts []int) string {
	parts := make([]string, len(words))
	total := 0
	for i, w := range words {
		parts[i] = fmt.Sprintf("%s(%d)", w, counts[i])
		total += counts[i]
	}
	return fmt.Sprintf("%s = %d", strings.Join(parts, " "), total)
}
