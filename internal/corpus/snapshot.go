package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion changes whenever the encoded layout or the digit encoding does.
const snapshotVersion = 1

// ErrStaleSnapshot means a snapshot was built from different text.
var ErrStaleSnapshot = errors.New("snapshot fingerprint does not match corpus")

type snapshot struct {
	Version     int       `msgpack:"v"`
	Name        string    `msgpack:"name"`
	Fingerprint uint64    `msgpack:"fp"`
	BuiltAt     time.Time `msgpack:"built_at"`
	Words       []string  `msgpack:"words"`
	Digits      string    `msgpack:"digits"`
}

// WriteSnapshot encodes idx as zstd-compressed msgpack.
func WriteSnapshot(w io.Writer, idx *Index) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(zw)
	err = enc.Encode(&snapshot{
		Version:     snapshotVersion,
		Name:        idx.Name,
		Fingerprint: idx.Fingerprint,
		BuiltAt:     idx.BuiltAt,
		Words:       idx.Words,
		Digits:      idx.Digits,
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return zw.Close()
}

// ReadSnapshot decodes a snapshot and checks it against the expected
// fingerprint. A zero fingerprint skips the check.
func ReadSnapshot(r io.Reader, fingerprint uint64) (*Index, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var s snapshot
	if err := msgpack.NewDecoder(zr).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d: %w", s.Version, snapshotVersion, ErrStaleSnapshot)
	}
	if fingerprint != 0 && s.Fingerprint != fingerprint {
		return nil, ErrStaleSnapshot
	}

	idx := &Index{Name: s.Name, Fingerprint: s.Fingerprint, BuiltAt: s.BuiltAt}
	idx.Words = s.Words
	idx.Digits = s.Digits
	if err := idx.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}
	return idx, nil
}

// SaveSnapshot writes idx to path atomically.
func SaveSnapshot(path string, idx *Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := WriteSnapshot(tmp, idx); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadSnapshot reads a snapshot file.
func LoadSnapshot(path string, fingerprint uint64) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(f, fingerprint)
}
