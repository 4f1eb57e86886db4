package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDL_Defaults(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "resources", cfg.Resources.Dir)
	assert.Equal(t, "cmudict.dict", cfg.Resources.Pronunciations)
	assert.Equal(t, "kjv", cfg.Corpus.Name)
	assert.Equal(t, 95.0, cfg.Search.ScoreCutoff)
	assert.Equal(t, 0, cfg.Search.MaxResults, "no cap unless configured")
	assert.True(t, cfg.Search.ExactFastPath)
	assert.Equal(t, 32768, cfg.Resolver.CacheSize)
	assert.False(t, cfg.Resolver.StemFallback)
	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr)
}

func TestParseKDL_AllSections(t *testing.T) {
	kdlContent := `
resources {
    dir "/data/lmi"
    pronunciations "cmudict.dict.zst"
    hyphenation_us "**/hyph-en-us*"
    hyphenation_gb "**/hyph-en-gb*"
    lexicon "slang.toml"
}
corpus {
    name "psalms"
    path "psalms.txt.gz"
    snapshot "psalms.idx"
}
search {
    score_cutoff 80
    max_results 0
    workers 3
    exact_fast_path false
}
resolver {
    cache_size 1024
    stem_fallback true
}
server {
    addr ":9000"
    static_dir "web/build"
    log_file "lmi.log"
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)

	assert.Equal(t, "/data/lmi", cfg.Resources.Dir)
	assert.Equal(t, "cmudict.dict.zst", cfg.Resources.Pronunciations)
	assert.Equal(t, "**/hyph-en-us*", cfg.Resources.HyphenationUS)
	assert.Equal(t, "**/hyph-en-gb*", cfg.Resources.HyphenationGB)
	assert.Equal(t, "slang.toml", cfg.Resources.Lexicon)
	assert.Equal(t, "psalms", cfg.Corpus.Name)
	assert.Equal(t, "psalms.txt.gz", cfg.Corpus.Path)
	assert.Equal(t, 80.0, cfg.Search.ScoreCutoff, "integer literal accepted as float")
	assert.Equal(t, 0, cfg.Search.MaxResults)
	assert.Equal(t, 3, cfg.Search.Workers)
	assert.False(t, cfg.Search.ExactFastPath)
	assert.Equal(t, 1024, cfg.Resolver.CacheSize)
	assert.True(t, cfg.Resolver.StemFallback)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "web/build", cfg.Server.StaticDir)
	assert.Equal(t, "lmi.log", cfg.Server.LogFile)

	assert.Equal(t, "/data/lmi", cfg.ResourceDir())
	assert.Equal(t, filepath.Join("/data/lmi", "psalms.idx"), cfg.SnapshotPath())
}

func TestParseKDL_PartialSection(t *testing.T) {
	cfg, err := parseKDL(`search { score_cutoff 90.5 }`)
	require.NoError(t, err)

	assert.Equal(t, 90.5, cfg.Search.ScoreCutoff)
	assert.Equal(t, 0, cfg.Search.MaxResults, "untouched keys keep defaults")
	assert.Equal(t, "kjv.txt", cfg.Corpus.Path)
}

func TestParseKDL_WrongTypesIgnored(t *testing.T) {
	cfg, err := parseKDL(`search { score_cutoff "high"; exact_fast_path "yes" }`)
	require.NoError(t, err)
	assert.Equal(t, 95.0, cfg.Search.ScoreCutoff)
	assert.True(t, cfg.Search.ExactFastPath)
}

func TestParseKDL_Invalid(t *testing.T) {
	_, err := parseKDL(`search {`)
	assert.Error(t, err)
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, os.WriteFile(filepath.Join(home, FileName), []byte(`
search { score_cutoff 70.0; max_results 5 }
server { addr ":7000" }
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(project, FileName), []byte(`
search { score_cutoff 85.0 }
`), 0644))

	cfg, err := Load(project)
	require.NoError(t, err)

	assert.Equal(t, 85.0, cfg.Search.ScoreCutoff)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, project, cfg.Root)
	assert.Equal(t, filepath.Join(project, "resources"), cfg.ResourceDir())
	assert.Equal(t, "", cfg.SnapshotPath())
}

func TestLoad_NoFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default().Search, cfg.Search)
}

func TestLoadKDL(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadKDL(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Nil(t, cfg)

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`corpus { name "genesis" }`), 0644))
	cfg, err = LoadKDL(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "genesis", cfg.Corpus.Name)

	require.NoError(t, os.WriteFile(path, []byte(`corpus {`), 0644))
	_, err = LoadKDL(path)
	assert.Error(t, err)
}
