// Package mcp exposes the meter engine as Model Context Protocol tools over
// stdio.
package mcp

import (
	"context"
	"errors"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/lmi/internal/debug"
	"github.com/standardbeagle/lmi/internal/engine"
	"github.com/standardbeagle/lmi/internal/version"
)

// Server wraps an MCP server around one engine.
type Server struct {
	engine *engine.Engine
	server *mcp.Server
}

// NewServer creates a new MCP server with every meter tool registered.
func NewServer(e *engine.Engine) (*Server, error) {
	if e == nil {
		return nil, errors.New("mcp: engine is required")
	}

	s := &Server{engine: e}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "lmi-mcp-server",
		Version: version.Version,
	}, nil)
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "info",
		Description: "Describe the meter tools. Use {\"tool\": \"meter_search\"} for one tool or no arguments for an overview.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"tool": {Type: "string", Description: "Tool name"},
			},
		},
	}, s.handleInfo)

	s.server.AddTool(&mcp.Tool{
		Name:        "meter_search",
		Description: "Find passages in the reference corpus whose per-word syllable pattern matches a phrase, each shown as a word-by-word comparison table.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query":  {Type: "string", Description: "Phrase to match"},
				"cutoff": {Type: "number", Description: "Minimum similarity score, 0-100 (default from config)"},
				"max":    {Type: "integer", Description: "Maximum matches (default from config, -1 for all)"},
			},
			Required: []string{"query"},
		},
	}, s.handleMeterSearch)

	s.server.AddTool(&mcp.Tool{
		Name:        "syllables",
		Description: "Count syllables for every word of a text and report how each count was resolved.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"text": {Type: "string", Description: "Text to count"},
			},
			Required: []string{"text"},
		},
	}, s.handleSyllables)

	s.server.AddTool(&mcp.Tool{
		Name:        "analyze",
		Description: "List every word of a text with its contraction and slang expansions and the syllable count of each option.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"text": {Type: "string", Description: "Text to analyze"},
			},
			Required: []string{"text"},
		},
	}, s.handleAnalyze)

	s.server.AddTool(&mcp.Tool{
		Name:        "hyphenate",
		Description: "Split a word into syllable-sized parts.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"word":  {Type: "string", Description: "Word to split"},
				"parts": {Type: "integer", Description: "Number of parts (default: resolved syllable count)"},
			},
			Required: []string{"word"},
		},
	}, s.handleHyphenate)

	s.server.AddTool(&mcp.Tool{
		Name:        "status",
		Description: "Report the corpus name, whether its index is built, and its size.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, s.handleStatus)
}

// Start builds the corpus in the background and serves over stdio until ctx
// is cancelled or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	debug.LogMCP("starting MCP server with stdio transport")

	go func() {
		if err := s.engine.Warm(ctx); err != nil {
			debug.LogMCP("corpus build failed: %v", err)
			return
		}
		debug.LogMCP("corpus %s ready", s.engine.CorpusName())
	}()

	return s.server.Run(ctx, &mcp.StdioTransport{})
}
