package server

import (
	"github.com/standardbeagle/lmi/internal/engine"
	"github.com/standardbeagle/lmi/internal/types"
)

// RPC request/response types for client-server communication

// StatusResponse represents the current corpus status
type StatusResponse struct {
	engine.Status
	UptimeSeconds float64 `json:"uptime_seconds"`
	Error         string  `json:"error,omitempty"`
}

// SearchRequest represents a meter search from a client
type SearchRequest struct {
	Query       string  `json:"query"`
	ScoreCutoff float64 `json:"score_cutoff,omitempty"` // 0 = configured cutoff
	MaxResults  int     `json:"max_results,omitempty"`  // 0 = configured cap, -1 = unlimited
}

// SearchResponse contains one comparison table per match
type SearchResponse struct {
	Query  string             `json:"query"`
	Digits string             `json:"digits"`
	Tables []types.MatchTable `json:"tables"`
	Error  string             `json:"error,omitempty"`
}

// AnalyzeRequest asks for the word options of a text
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse lists every word with its expansions and their counts
type AnalyzeResponse struct {
	Words []types.WordSyllable `json:"words"`
	Error string               `json:"error,omitempty"`
}

// CountRequest asks for syllable counts
type CountRequest struct {
	Text string `json:"text"`
}

// CountResponse contains per-word counts and their total
type CountResponse struct {
	Total int                `json:"total"`
	Words []engine.WordCount `json:"words"`
}

// HyphenateRequest asks for a word split into parts
type HyphenateRequest struct {
	Word  string `json:"word"`
	Parts int    `json:"parts,omitempty"` // 0 = resolved syllable count
}

// HyphenateResponse contains the hyphenated word
type HyphenateResponse struct {
	Word       string `json:"word"`
	Hyphenated string `json:"hyphenated"`
}

// LegacyRow is one aligned word pair in the /fuzzy_search response.
// "long" is the corpus side, "short" the query side.
type LegacyRow struct {
	WordLong      string `json:"word_long"`
	WordShort     string `json:"word_short"`
	SyllableLong  int    `json:"syllable_long"`
	SyllableShort int    `json:"syllable_short"`
}

// ShutdownRequest requests server shutdown
type ShutdownRequest struct {
	Force bool `json:"force,omitempty"`
}

// ShutdownResponse confirms shutdown
type ShutdownResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PingResponse confirms server is alive
type PingResponse struct {
	Uptime  float64 `json:"uptime_seconds"`
	Version string  `json:"version"`
	BuildID string  `json:"build_id"`
}

// ErrorResponse is returned for requests that fail before producing a result
type ErrorResponse struct {
	Error string `json:"error"`
}
