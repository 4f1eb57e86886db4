package resources

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lmierrors "github.com/standardbeagle/lmi/internal/errors"
)

const sampleDict = `;;; # CMUdict  --  Major Version: 0.07
BEGINNING  B IH0 G IH1 N IH0 NG
CREATED  K R IY0 EY1 T AH0 D
GOD  G AA1 D
HEAVEN  HH EH1 V AH0 N
THE  DH AH0
THE(2)  DH AH1
THE(3)  DH IY0
read R IY1 D # present tense
read(2) R EH1 D
`

func TestParsePronunciations(t *testing.T) {
	p, err := ParsePronunciations(strings.NewReader(sampleDict))
	require.NoError(t, err)

	assert.Equal(t, 6, p.Len())

	n, ok := p.Syllables("beginning")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = p.Syllables("Heaven")
	require.True(t, ok)
	assert.Equal(t, 2, n)

	opts, ok := p.Lookup("the")
	require.True(t, ok)
	require.Len(t, opts, 3, "alternates keep their order under the base word")
	assert.Equal(t, []string{"DH", "AH0"}, opts[0])

	opts, ok = p.Lookup("read")
	require.True(t, ok)
	assert.Equal(t, []string{"R", "IY1", "D"}, opts[0], "trailing comment stripped")

	_, ok = p.Syllables("asswage")
	assert.False(t, ok)
}

func TestParsePronunciations_Errors(t *testing.T) {
	_, err := ParsePronunciations(strings.NewReader(";;; only comments\n\n"))
	assert.Error(t, err)

	_, err = ParsePronunciations(strings.NewReader("orphan\n"))
	assert.Error(t, err)
}

func TestCountStressMarks(t *testing.T) {
	assert.Equal(t, 3, CountStressMarks([]string{"B", "IH0", "G", "IH1", "N", "IH0", "NG"}))
	assert.Equal(t, 0, CountStressMarks([]string{"HH", "M"}))
	assert.Equal(t, 0, CountStressMarks(nil))
	assert.Equal(t, 1, CountStressMarks([]string{"", "AA2"}))
}

func TestNewPronunciations(t *testing.T) {
	p := NewPronunciations(map[string][][]string{"GOD": {{"G", "AA1", "D"}}})
	n, ok := p.Syllables("god")
	require.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestLoadPronunciations_Missing(t *testing.T) {
	_, err := LoadPronunciations(filepath.Join(t.TempDir(), "nope.dict"))
	require.Error(t, err)
	assert.True(t, lmierrors.IsResource(err))
}

func TestOpen_Compressed(t *testing.T) {
	dir := t.TempDir()
	payload := []byte(sampleDict)

	var zbuf bytes.Buffer
	zw, err := zstd.NewWriter(&zbuf)
	require.NoError(t, err)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	zpath := filepath.Join(dir, "cmudict.dict.zst")
	require.NoError(t, os.WriteFile(zpath, zbuf.Bytes(), 0644))

	var gbuf bytes.Buffer
	gw := gzip.NewWriter(&gbuf)
	_, err = gw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	gpath := filepath.Join(dir, "cmudict.dict.gz")
	require.NoError(t, os.WriteFile(gpath, gbuf.Bytes(), 0644))

	plain := filepath.Join(dir, "cmudict.dict")
	require.NoError(t, os.WriteFile(plain, payload, 0644))

	for _, path := range []string{zpath, gpath, plain} {
		data, err := ReadAll(path)
		require.NoError(t, err, path)
		assert.Equal(t, payload, data, path)
	}

	p, err := LoadPronunciations(zpath)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Len())
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "patterns"), 0755))
	for _, name := range []string{"patterns/hyph-en-us.pat.txt", "patterns/hyph-en-gb.pat.txt.zst", "kjv.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	got, err := Resolve(dir, "kjv.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kjv.txt"), got)

	got, err = Resolve(dir, "**/hyph-en-gb*")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "patterns", "hyph-en-gb.pat.txt.zst"), got)

	got, err = Resolve("", filepath.Join(dir, "patterns", "hyph-en-u?.pat.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "patterns", "hyph-en-us.pat.txt"), got)

	_, err = Resolve(dir, "**/hyph-de*")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Resolve(dir, "missing.txt")
	assert.Error(t, err)

	_, err = Resolve(dir, "")
	assert.Error(t, err)
}

func TestPatternDictionary_PreservesLetters(t *testing.T) {
	patterns := "1ba\n1be\n1bi\n1ca\n1ce\n1de\n1ga\n1gi\n1na\n1ni\n1ta\n1ti\n1va\n1ve\n"
	d, err := ParsePatterns("test", strings.NewReader(patterns))
	require.NoError(t, err)
	assert.Equal(t, "test", d.Name())

	for _, word := range []string{"beginning", "created", "heaven", "a", ""} {
		out := d.Insert(word)
		assert.Equal(t, word, strings.ReplaceAll(out, "-", ""), "hyphenation must only insert hyphens into %q", word)
		assert.False(t, strings.HasPrefix(out, "-"), "no leading hyphen for %q", word)
	}
}

func TestPatternDictionary_NoShortEndPieces(t *testing.T) {
	d, err := ParsePatterns("en_US", strings.NewReader("1co 4m1p pu2t 5pute put3er e1r r1s."))
	require.NoError(t, err)

	assert.Equal(t, "ever", d.Insert("ever"))
	assert.Equal(t, "com-put-e-rs", d.Insert("computers"))
	assert.Equal(t, "Com-put-e-rs", d.Insert("Computers"))

	for _, word := range []string{"ever", "computers", "computer", "compute", "ers"} {
		pieces := strings.Split(d.Insert(word), "-")
		assert.GreaterOrEqual(t, len([]rune(pieces[0])), 2, "first piece of %q", word)
		assert.GreaterOrEqual(t, len([]rune(pieces[len(pieces)-1])), 2, "last piece of %q", word)
	}
}
