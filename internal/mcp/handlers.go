package mcp

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/lmi/internal/engine"
	"github.com/standardbeagle/lmi/internal/types"
	"github.com/standardbeagle/lmi/internal/version"
)

// InfoParams selects the tool to describe.
type InfoParams struct {
	Tool string `json:"tool"`
}

// MeterSearchParams are the meter_search arguments.
type MeterSearchParams struct {
	Query  string  `json:"query"`
	Cutoff float64 `json:"cutoff"`
	Max    int     `json:"max"`
}

// TextParams carry a single text argument.
type TextParams struct {
	Text string `json:"text"`
}

// HyphenateParams are the hyphenate arguments.
type HyphenateParams struct {
	Word  string `json:"word"`
	Parts int    `json:"parts"`
}

// MeterSearchResponse is the meter_search result.
type MeterSearchResponse struct {
	Query    string             `json:"query"`
	Digits   string             `json:"digits"`
	Corpus   string             `json:"corpus"`
	Matches  []types.MatchTable `json:"matches"`
	Warnings []UnknownField     `json:"warnings,omitempty"`
}

var toolHelp = map[string]string{
	"meter_search": `{"query": "I love you lonely day", "cutoff": 80, "max": 5}. Scores are 0-100; 100 means the syllable pattern matches exactly.`,
	"syllables":    `{"text": "Removeth the heaven"}. Method is direct, estimated, or the rewrite that found the word.`,
	"analyze":      `{"text": "I've got to go"}. The first option of each word is the word itself.`,
	"hyphenate":    `{"word": "beginning", "parts": 3}`,
	"status":       `{}`,
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params InfoParams
	if _, err := decodeParams(req.Params.Arguments, &params, "tool"); err != nil {
		return createErrorResponse("info", fmt.Errorf("invalid parameters: %w", err), `{"tool": "meter_search"}`)
	}

	tool := strings.ToLower(strings.TrimSpace(params.Tool))
	switch tool {
	case "":
		return createJSONResponse(map[string]interface{}{
			"server_version": version.FullInfo(),
			"go_version":     runtime.Version(),
			"corpus":         s.engine.CorpusName(),
			"tools":          []string{"meter_search", "syllables", "analyze", "hyphenate", "status"},
		})
	case "version":
		return createJSONResponse(map[string]interface{}{
			"server_version": version.FullInfo(),
			"build_id":       version.BuildID(),
		})
	}

	help, ok := toolHelp[tool]
	if !ok {
		return createErrorResponse("info", fmt.Errorf("unknown tool %q", params.Tool), "")
	}
	return createJSONResponse(map[string]string{"tool": tool, "example": help})
}

func (s *Server) handleMeterSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params MeterSearchParams
	warnings, err := decodeParams(req.Params.Arguments, &params, "query", "cutoff", "max")
	if err != nil {
		return createErrorResponse("meter_search", fmt.Errorf("invalid parameters: %w", err), toolHelp["meter_search"])
	}
	if params.Cutoff < 0 || params.Cutoff > 100 {
		return createErrorResponse("meter_search", fmt.Errorf("cutoff %v outside 0-100", params.Cutoff), toolHelp["meter_search"])
	}

	query, err := s.engine.Query(params.Query)
	if err != nil {
		return createErrorResponse("meter_search", err, toolHelp["meter_search"])
	}
	tables, err := s.engine.SearchCorpusWith(ctx, params.Query, engine.SearchParams{
		ScoreCutoff: params.Cutoff,
		MaxResults:  params.Max,
	})
	if err != nil {
		return createErrorResponse("meter_search", err, "")
	}

	return createJSONResponse(MeterSearchResponse{
		Query:    params.Query,
		Digits:   query.Digits,
		Corpus:   s.engine.CorpusName(),
		Matches:  tables,
		Warnings: warnings,
	})
}

func (s *Server) handleSyllables(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params TextParams
	if _, err := decodeParams(req.Params.Arguments, &params, "text"); err != nil {
		return createErrorResponse("syllables", fmt.Errorf("invalid parameters: %w", err), toolHelp["syllables"])
	}
	total, words := s.engine.Count(params.Text)
	return createJSONResponse(map[string]interface{}{
		"total": total,
		"words": words,
	})
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params TextParams
	if _, err := decodeParams(req.Params.Arguments, &params, "text"); err != nil {
		return createErrorResponse("analyze", fmt.Errorf("invalid parameters: %w", err), toolHelp["analyze"])
	}
	words, err := s.engine.Analyze(params.Text)
	if err != nil {
		return createErrorResponse("analyze", err, toolHelp["analyze"])
	}
	return createJSONResponse(map[string]interface{}{"words": words})
}

func (s *Server) handleHyphenate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params HyphenateParams
	if _, err := decodeParams(req.Params.Arguments, &params, "word", "parts"); err != nil {
		return createErrorResponse("hyphenate", fmt.Errorf("invalid parameters: %w", err), toolHelp["hyphenate"])
	}
	word := strings.TrimSpace(params.Word)
	if word == "" {
		return createErrorResponse("hyphenate", fmt.Errorf("word is required"), toolHelp["hyphenate"])
	}
	return createJSONResponse(map[string]string{
		"word":       word,
		"hyphenated": s.engine.Hyphenate(word, params.Parts),
	})
}

func (s *Server) handleStatus(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return createJSONResponse(s.engine.Status())
}
