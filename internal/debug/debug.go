// Package debug is the diagnostic log shared by every lmi component. Output
// is off unless debugging is switched on and a sink is configured, and it is
// never written while stdio carries MCP traffic.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// EnableDebug turns logging on for a whole build:
//
//	go build -ldflags "-X github.com/standardbeagle/lmi/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// MCPMode is set by the mcp command; stdout then belongs to the protocol.
var MCPMode = false

var (
	debugMutex  sync.Mutex
	debugOutput io.Writer      // nil drops everything
	debugFile   io.WriteCloser // owned sink, closed by CloseDebugLog
)

// exit is swapped out by tests.
var exit = os.Exit

// SetMCPMode silences all diagnostics while the process speaks MCP on stdio.
func SetMCPMode(enabled bool) {
	MCPMode = enabled
}

// SetDebugOutput points diagnostics at w. A nil w discards them.
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// InitRotatingLog writes diagnostics to path, rolling the file over once it
// reaches maxSizeMB (32 when maxSizeMB <= 0). The serve command and the
// LMI_DEBUG_LOG environment variable both end up here.
func InitRotatingLog(path string, maxSizeMB int) error {
	if path == "" {
		return fmt.Errorf("rotating log path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 32
	}

	debugMutex.Lock()
	defer debugMutex.Unlock()

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB, // MB
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}
	debugFile = w
	debugOutput = w
	return nil
}

// CloseDebugLog flushes and detaches a sink opened by InitRotatingLog.
func CloseDebugLog() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile != nil {
		err := debugFile.Close()
		debugFile = nil
		debugOutput = nil
		return err
	}
	return nil
}

// IsDebugEnabled reports whether diagnostics should be produced at all.
// MCP mode overrides both the build flag and DEBUG=1.
func IsDebugEnabled() bool {
	if MCPMode {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	return os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true"
}

func writer() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// Printf writes one untagged diagnostic line.
func Printf(format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	if w := writer(); w != nil {
		fmt.Fprintf(w, "[DEBUG] "+format, args...)
	}
}

// Log writes a diagnostic line tagged with component, e.g. [DEBUG:CORPUS].
func Log(component, format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	if w := writer(); w != nil {
		fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
	}
}

// Component loggers.
func LogCorpus(format string, args ...interface{})  { Log("CORPUS", format, args...) }
func LogSearch(format string, args ...interface{})  { Log("SEARCH", format, args...) }
func LogResolve(format string, args ...interface{}) { Log("RESOLVE", format, args...) }
func LogServer(format string, args ...interface{})  { Log("SERVER", format, args...) }
func LogMCP(format string, args ...interface{})     { Log("MCP", format, args...) }

// FatalAndExit reports a startup failure on stderr, copies it to the log
// sink when one is open, and exits with status 1. Only cmd/lmi calls it.
// Stderr is safe even in MCP mode, where only stdout carries the protocol.
func FatalAndExit(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w := writer(); w != nil && !MCPMode {
		fmt.Fprintf(w, "[FATAL] %s\n", msg)
	}
	fmt.Fprintf(os.Stderr, "lmi: %s\n", msg)
	_ = CloseDebugLog()
	exit(1)
}
