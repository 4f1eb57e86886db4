package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveAndRestoreState saves the debug package state and returns a cleanup function
func saveAndRestoreState() func() {
	originalDebug := EnableDebug
	originalMode := MCPMode
	originalOutput := debugOutput
	originalFile := debugFile
	originalExit := exit
	return func() {
		exit = originalExit
		EnableDebug = originalDebug
		MCPMode = originalMode
		debugOutput = originalOutput
		debugFile = originalFile
	}
}

func TestSetMCPMode(t *testing.T) {
	defer saveAndRestoreState()()

	SetMCPMode(true)
	assert.True(t, MCPMode)

	SetMCPMode(false)
	assert.False(t, MCPMode)
}

func TestIsDebugEnabled(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("DEBUG", "")

	EnableDebug = "false"
	MCPMode = false
	assert.False(t, IsDebugEnabled())

	EnableDebug = "true"
	assert.True(t, IsDebugEnabled())

	// MCP mode always wins
	MCPMode = true
	assert.False(t, IsDebugEnabled())

	MCPMode = false
	EnableDebug = "invalid"
	assert.False(t, IsDebugEnabled())

	t.Setenv("DEBUG", "1")
	assert.True(t, IsDebugEnabled())
}

func TestLog(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	MCPMode = false
	Log("TEST", "Hello %s", "World")

	output := buf.String()
	assert.Contains(t, output, "[DEBUG:TEST]")
	assert.Contains(t, output, "Hello World")
}

func TestLog_MCPMode(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	MCPMode = true
	Log("TEST", "Should not appear")

	assert.Empty(t, buf.String())
}

func TestFatalAndExit(t *testing.T) {
	defer saveAndRestoreState()()

	var code int
	exit = func(c int) { code = c }

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	MCPMode = false
	FatalAndExit("resource error for %s", "cmudict.dict")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL] resource error for cmudict.dict")

	// the log sink stays quiet in MCP mode but the process still exits
	buf.Reset()
	code = 0
	MCPMode = true
	FatalAndExit("boom")
	assert.Equal(t, 1, code)
	assert.Empty(t, buf.String())
}

func TestLogHelpers(t *testing.T) {
	defer saveAndRestoreState()()

	EnableDebug = "true"
	MCPMode = false

	tests := []struct {
		name    string
		logFunc func(string, ...interface{})
		prefix  string
	}{
		{"LogCorpus", LogCorpus, "[DEBUG:CORPUS]"},
		{"LogSearch", LogSearch, "[DEBUG:SEARCH]"},
		{"LogResolve", LogResolve, "[DEBUG:RESOLVE]"},
		{"LogServer", LogServer, "[DEBUG:SERVER]"},
		{"LogMCP", LogMCP, "[DEBUG:MCP]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetDebugOutput(&buf)
			tt.logFunc("value %d", 42)
			assert.Contains(t, buf.String(), tt.prefix)
			assert.Contains(t, buf.String(), "value 42")
		})
	}
}

func TestInitRotatingLog(t *testing.T) {
	defer saveAndRestoreState()()

	EnableDebug = "true"
	MCPMode = false

	path := filepath.Join(t.TempDir(), "logs", "lmi.log")
	require.NoError(t, InitRotatingLog(path, 1))

	LogServer("listening on %s", "127.0.0.1:8000")
	require.NoError(t, CloseDebugLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG:SERVER] listening on 127.0.0.1:8000")

	assert.Error(t, InitRotatingLog("", 1))
}
