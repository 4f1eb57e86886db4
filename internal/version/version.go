// Package version identifies an lmi binary. The CLI prints it, /ping reports
// it, and the MCP info tool includes it so a client can tell which build of
// the meter engine answered.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"runtime/debug"
	"sync"
)

// Version is the release of the lmi module.
const Version = "0.1.0"

// Stamped by the release build:
//
//	-ldflags "-X github.com/standardbeagle/lmi/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	GitCommit = "unknown"
	BuildDate = "development"
)

// FullInfo is the one-line banner, e.g.
// "lmi 0.1.0 (commit: abc1234, built: 2026-10-17)".
func FullInfo() string {
	return "lmi " + Version + " (commit: " + GitCommit + ", built: " + BuildDate + ")"
}

// BuildID is a 16 hex digit digest of the toolchain, main module and VCS
// stamp. Two binaries built from different revisions never share one, so the
// CLI can notice it is talking to a server left over from an older build.
var BuildID = sync.OnceValue(func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version + "-" + GitCommit
	}

	h := sha256.New()
	for _, part := range []string{info.GoVersion, info.Main.Path, info.Main.Version} {
		h.Write([]byte(part))
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision", "vcs.modified", "vcs.time":
			h.Write([]byte(s.Key))
			h.Write([]byte(s.Value))
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
})
