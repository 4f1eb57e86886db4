package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/lmi/testhelpers"
)

type handler func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(testhelpers.NewFixtureEngine(t))
	require.NoError(t, err)
	return s
}

func call(t *testing.T, h handler, args interface{}) (*mcp.CallToolResult, map[string]interface{}) {
	t.Helper()
	var raw json.RawMessage
	if args != nil {
		b, err := json.Marshal(args)
		require.NoError(t, err)
		raw = b
	}
	res, err := h(context.Background(), &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Arguments: raw}})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out), text.Text)
	return res, out
}

func TestNewServer_RequiresEngine(t *testing.T) {
	_, err := NewServer(nil)
	require.Error(t, err)
}

func TestMeterSearch(t *testing.T) {
	s := newTestServer(t)

	res, out := call(t, s.handleMeterSearch, map[string]interface{}{"query": "In the beginning God created"})
	require.False(t, res.IsError, out)
	assert.Equal(t, "11313", out["digits"])
	assert.Equal(t, "genesis", out["corpus"])

	matches := out["matches"].([]interface{})
	require.NotEmpty(t, matches)
	first := matches[0].(map[string]interface{})
	assert.Equal(t, 0.0, first["start"])
	assert.Equal(t, 100.0, first["score"])
}

func TestMeterSearch_MaxAndWarnings(t *testing.T) {
	s := newTestServer(t)

	res, out := call(t, s.handleMeterSearch, map[string]interface{}{"query": "and", "max": 2, "pattern": "x"})
	require.False(t, res.IsError, out)
	assert.Len(t, out["matches"], 2)

	warnings := out["warnings"].([]interface{})
	require.Len(t, warnings, 1)
	assert.Equal(t, "pattern", warnings[0].(map[string]interface{})["name"])
}

func TestMeterSearch_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		args interface{}
	}{
		{"no query", map[string]interface{}{}},
		{"no words", map[string]interface{}{"query": "?!"}},
		{"cutoff too high", map[string]interface{}{"query": "and", "cutoff": 101}},
		{"wrong type", map[string]interface{}{"query": 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, out := call(t, s.handleMeterSearch, tt.args)
			assert.True(t, res.IsError)
			assert.Equal(t, false, out["success"])
			assert.Equal(t, "meter_search", out["operation"])
		})
	}
}

func TestSyllablesAndAnalyze(t *testing.T) {
	s := newTestServer(t)

	_, out := call(t, s.handleSyllables, TextParams{Text: "Removeth the heaven"})
	assert.Equal(t, 6.0, out["total"])
	assert.Len(t, out["words"], 3)

	res, out := call(t, s.handleAnalyze, TextParams{Text: "I've"})
	require.False(t, res.IsError)
	words := out["words"].([]interface{})
	require.Len(t, words, 1)
	assert.Equal(t, "i've", words[0].(map[string]interface{})["word"])

	res, _ = call(t, s.handleAnalyze, TextParams{Text: ""})
	assert.True(t, res.IsError)
}

func TestHyphenateTool(t *testing.T) {
	s := newTestServer(t)

	_, out := call(t, s.handleHyphenate, HyphenateParams{Word: "beginning"})
	assert.Equal(t, "be-gin-ning", out["hyphenated"])

	_, out = call(t, s.handleHyphenate, HyphenateParams{Word: "god", Parts: 3})
	assert.Equal(t, "g-o-d", out["hyphenated"])

	res, _ := call(t, s.handleHyphenate, HyphenateParams{Word: "  "})
	assert.True(t, res.IsError)
}

func TestStatusAndInfo(t *testing.T) {
	s := newTestServer(t)

	_, out := call(t, s.handleStatus, nil)
	assert.Equal(t, "genesis", out["corpus"])
	assert.Equal(t, false, out["ready"])

	_, out = call(t, s.handleInfo, nil)
	assert.Len(t, out["tools"], 5)

	_, out = call(t, s.handleInfo, InfoParams{Tool: "Meter_Search"})
	assert.Equal(t, "meter_search", out["tool"])

	res, _ := call(t, s.handleInfo, InfoParams{Tool: "grep"})
	assert.True(t, res.IsError)
}
