// Package vocab loads the frequency-sorted IMDB word list and trims it to the
// slice of words used as bag-of-words features.
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
)

// Default trim window for aclImdb/imdb.vocab.
const (
	DefaultSkipHead = 400   // most common words to ignore
	DefaultSkipTail = 88500 // least common words to ignore
)

var (
	// ErrConfiguration is wrapped by every error caused by a bad vocabulary
	// file or trim window.
	ErrConfiguration = errors.New("configuration error")

	// ErrEmptyVocabulary reports a trim window that consumes the whole file.
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)

// Vocabulary maps each word of the trimmed slice to its feature index.
// It is immutable once built.
type Vocabulary struct {
	words []string
	index map[string]int
}

// New builds a Vocabulary assigning indices 0..len(words)-1 in order.
func New(words []string) (*Vocabulary, error) {
	if dups := lo.FindDuplicates(words); len(dups) > 0 {
		return nil, fmt.Errorf("%w: duplicate vocabulary words %q", ErrConfiguration, dups)
	}
	v := &Vocabulary{
		words: append([]string(nil), words...),
		index: make(map[string]int, len(words)),
	}
	for i, w := range v.words {
		v.index[w] = i
	}
	return v, nil
}

// Index returns the feature index of word.
func (v *Vocabulary) Index(word string) (int, bool) {
	idx, ok := v.index[word]
	return idx, ok
}

// Word returns the word at feature index i.
func (v *Vocabulary) Word(i int) string {
	return v.words[i]
}

// Len returns the vocabulary size M.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Words returns a copy of the words in index order.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Mapping returns a copy of the word -> index map.
func (v *Vocabulary) Mapping() map[string]int {
	m := make(map[string]int, len(v.index))
	for w, i := range v.index {
		m[w] = i
	}
	return m
}

// ExtractVocabulary reads the word list at path, drops the first skipHead and
// the last skipTail words, and returns the remaining words with their size.
func ExtractVocabulary(path string, skipHead, skipTail int) (*Vocabulary, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open vocabulary: %w", ErrConfiguration, err)
	}
	defer func() { _ = f.Close() }()

	v, err := Load(f, skipHead, skipTail)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return v, v.Len(), nil
}

// Load is ExtractVocabulary over an already opened word list.
func Load(r io.Reader, skipHead, skipTail int) (*Vocabulary, error) {
	if skipHead < 0 || skipTail < 0 {
		return nil, fmt.Errorf("%w: negative trim window (head=%d, tail=%d)", ErrConfiguration, skipHead, skipTail)
	}
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read vocabulary: %w", ErrConfiguration, err)
	}
	if skipHead >= len(lines) || skipTail >= len(lines)-skipHead {
		return nil, fmt.Errorf("%w: %w: skipping %d+%d of %d words leaves nothing",
			ErrConfiguration, ErrEmptyVocabulary, skipHead, skipTail, len(lines))
	}
	return New(lines[skipHead : len(lines)-skipTail])
}

// ReadWordIndex reads the full word list as a rank table: the most frequent
// word has rank 1. Repeated words keep their first rank.
func ReadWordIndex(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	index := make(map[string]int, len(lines))
	for i, w := range lines {
		if _, ok := index[w]; !ok {
			index[w] = i + 1
		}
	}
	return index, nil
}

// readLines returns the non-blank lines of r with surrounding whitespace removed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
