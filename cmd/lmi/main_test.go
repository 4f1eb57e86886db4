package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/lmi/testhelpers"
)

const fixtureKDL = `
resources {
    hyphenation_us "**/hyph-en-us*.pat.txt"
    hyphenation_gb "**/hyph-en-gb*.pat.txt"
}
corpus {
    name "genesis"
    path "genesis.txt"
}
search {
    workers 2
}
server {
    addr "127.0.0.1:1"
}
`

// setupProject writes fixture resources and a project config, and returns
// the project root.
func setupProject(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := testhelpers.WriteFixtureResources(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Root, ".lmi.kdl"), []byte(fixtureKDL), 0644))
	return cfg.Root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"lmi"}, args...))
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	root := setupProject(t)

	out, err := run(t, "--root", root, "search", "In the beginning God created")
	require.NoError(t, err)
	assert.Contains(t, out, "Query: in the beginning god created")
	assert.Contains(t, out, "Meter: 11313")
	assert.Contains(t, out, "Match 1: score 100.0 at word 0 [11313]")
	assert.Contains(t, out, "be-gin-ning")
}

func TestSearchCommand_JSONAndLimits(t *testing.T) {
	root := setupProject(t)

	out, err := run(t, "--root", root, "search", "--json", "--max", "2", "And God said")
	require.NoError(t, err)

	var decoded struct {
		Query struct {
			Digits string `json:"digits"`
		} `json:"query"`
		Matches []struct {
			Start int     `json:"start"`
			Score float64 `json:"score"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), out)
	assert.Equal(t, "111", decoded.Query.Digits)
	require.Len(t, decoded.Matches, 2)
	assert.Equal(t, 7, decoded.Matches[0].Start)
}

func TestSearchCommand_Errors(t *testing.T) {
	root := setupProject(t)

	_, err := run(t, "--root", root, "search")
	assert.ErrorContains(t, err, "phrase is required")

	_, err = run(t, "--root", root, "search", "?!")
	assert.Error(t, err)

	_, err = run(t, "--root", root, "--corpus", "exodus", "search", "And God said")
	assert.ErrorContains(t, err, "exodus")
}

func TestCountCommand(t *testing.T) {
	root := setupProject(t)

	out, err := run(t, "--root", root, "count", "Removeth the heaven")
	require.NoError(t, err)
	assert.Equal(t, "removeth(3) the(1) heaven(2) = 6\n", out)

	out, err = run(t, "--root", root, "count", "-v", "Removeth")
	require.NoError(t, err)
	assert.Contains(t, out, "strip-long-suffix")
	assert.Contains(t, out, "total 3")
}

func TestAnalyzeAndHyphenateCommands(t *testing.T) {
	root := setupProject(t)

	out, err := run(t, "--root", root, "analyze", "I've")
	require.NoError(t, err)
	assert.Contains(t, out, "i've: i've(1)")
	assert.Contains(t, out, "i have(2)")

	out, err = run(t, "--root", root, "hyphenate", "-p", "3", "god")
	require.NoError(t, err)
	assert.Equal(t, "g-o-d\n", out)

	_, err = run(t, "--root", root, "hyphenate")
	assert.Error(t, err)
}

func TestIndexCommand(t *testing.T) {
	root := setupProject(t)

	out, err := run(t, "--root", root, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed genesis: 50 words")

	snapshot := filepath.Join(root, "resources", "genesis.lmi")
	assert.FileExists(t, snapshot)

	custom := filepath.Join(t.TempDir(), "out.idx")
	_, err = run(t, "--root", root, "index", "-o", custom)
	require.NoError(t, err)
	assert.FileExists(t, custom)
}

func TestStatusCommand_NoServer(t *testing.T) {
	root := setupProject(t)

	_, err := run(t, "--root", root, "status")
	assert.ErrorContains(t, err, "no server is running")

	_, err = run(t, "--root", root, "shutdown")
	assert.ErrorContains(t, err, "no server is running")
}

func TestProfileFlags(t *testing.T) {
	root := setupProject(t)
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.prof")
	mem := filepath.Join(dir, "mem.prof")

	_, err := run(t, "--root", root, "--profile-cpu", cpu, "--profile-memory", mem, "count", "God")
	require.NoError(t, err)
	assert.FileExists(t, cpu)
	assert.FileExists(t, mem)
}
