// Package resources loads the static inputs of the matcher: the pronunciation
// dictionary, the hyphenation pattern sets and the reference text. Paths ending
// in .zst or .gz are decompressed transparently.
package resources

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// zstdReadCloser adapts the zstd decoder, whose Close returns nothing, and
// closes the underlying file with it.
type zstdReadCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Open returns a reader for path, decompressing .zst and .gz files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		zr, err := zstd.NewReader(bufio.NewReader(f), zstd.WithDecoderConcurrency(0))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return zstdReadCloser{Decoder: zr, f: f}, nil
	case ".gz":
		gr, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return gzipReadCloser{Reader: gr, f: f}, nil
	default:
		return f, nil
	}
}

// ReadAll reads the whole of path, decompressing if needed.
func ReadAll(path string) ([]byte, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Resolve turns a configured resource name into a concrete file path.
// Relative names are taken from dir. Names containing glob metacharacters are
// expanded with doublestar semantics and the lexicographically first match
// wins, so "hyph-en-gb*.pat.txt" finds "hyph-en-gb.pat.txt.zst".
func Resolve(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty resource name")
	}

	pattern := name
	if !filepath.IsAbs(pattern) && dir != "" {
		pattern = filepath.Join(dir, pattern)
	}

	if !strings.ContainsAny(name, "*?[{") {
		if _, err := os.Stat(pattern); err != nil {
			return "", err
		}
		return pattern, nil
	}

	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return "", fmt.Errorf("invalid resource pattern %q", name)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("failed to expand %q: %w", name, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no file matches %q: %w", pattern, os.ErrNotExist)
	}
	sort.Strings(matches)
	return matches[0], nil
}
