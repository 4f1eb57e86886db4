package resources

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	lmierrors "github.com/standardbeagle/lmi/internal/errors"
)

// Pronunciations maps a lowercase word to its ordered pronunciation options.
// Each option is a sequence of ARPAbet phonemes; vowels carry a stress digit.
// A loaded dictionary is never mutated and is shared by reference.
type Pronunciations struct {
	entries map[string][][]string
}

// NewPronunciations wraps an in-memory mapping. Keys are lowercased.
func NewPronunciations(entries map[string][][]string) *Pronunciations {
	p := &Pronunciations{entries: make(map[string][][]string, len(entries))}
	for k, v := range entries {
		p.entries[strings.ToLower(k)] = v
	}
	return p
}

// ParsePronunciations reads the CMU Pronouncing Dictionary format. Both the
// upstream layout ("ABANDON  AH0 B AE1 N D AH0 N", ";;;" comments) and the
// cmusphinx layout ("abandon AH0 B AE1 N D AH0 N # note") are accepted.
// Alternate readings are written "word(2)" and keep their file order.
func ParsePronunciations(r io.Reader) (*Pronunciations, error) {
	p := &Pronunciations{entries: make(map[string][][]string, 135000)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.HasPrefix(line, ";;;") {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 1 {
			return nil, fmt.Errorf("line %d: entry %q has no phonemes", lineNum, fields[0])
		}

		word := strings.ToLower(fields[0])
		if i := strings.IndexByte(word, '('); i > 0 && strings.HasSuffix(word, ")") {
			word = word[:i]
		}
		p.entries[word] = append(p.entries[word], fields[1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pronunciations: %w", err)
	}
	if len(p.entries) == 0 {
		return nil, fmt.Errorf("pronunciation dictionary is empty")
	}
	return p, nil
}

// LoadPronunciations reads a pronunciation dictionary from disk.
func LoadPronunciations(path string) (*Pronunciations, error) {
	r, err := Open(path)
	if err != nil {
		return nil, lmierrors.NewResourceError("pronunciation dictionary", path, err)
	}
	defer r.Close()

	p, err := ParsePronunciations(r)
	if err != nil {
		return nil, lmierrors.NewResourceError("pronunciation dictionary", path, err)
	}
	return p, nil
}

// Lookup returns every pronunciation option for word.
func (p *Pronunciations) Lookup(word string) ([][]string, bool) {
	opts, ok := p.entries[strings.ToLower(word)]
	return opts, ok && len(opts) > 0
}

// Syllables counts the stressed phonemes of the first pronunciation of word.
// The second result is false when the word is absent.
func (p *Pronunciations) Syllables(word string) (int, bool) {
	opts, ok := p.Lookup(word)
	if !ok {
		return 0, false
	}
	return CountStressMarks(opts[0]), true
}

// Len returns the number of distinct words.
func (p *Pronunciations) Len() int {
	return len(p.entries)
}

// CountStressMarks counts phonemes whose final character is a decimal digit.
func CountStressMarks(phonemes []string) int {
	n := 0
	for _, ph := range phonemes {
		if ph == "" {
			continue
		}
		if c := ph[len(ph)-1]; c >= '0' && c <= '9' {
			n++
		}
	}
	return n
}
