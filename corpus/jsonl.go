package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// JSONL reads a corpus exported from the canonical loader: a word index JSON
// object ({"word": rank}) and one JSON-lines file per split, each line a
// Review whose tokens already carry the start token and rank offset.
type JSONL struct {
	WordIndexPath string
	TrainPath     string
	TestPath      string
}

// Load implements Source.
func (j *JSONL) Load() (*Corpus, error) {
	wordIndex, err := ReadWordIndexJSON(j.WordIndexPath)
	if err != nil {
		return nil, err
	}
	train, err := ReadReviews(j.TrainPath)
	if err != nil {
		return nil, err
	}
	test, err := ReadReviews(j.TestPath)
	if err != nil {
		return nil, err
	}
	return &Corpus{Train: train, Test: test, WordIndex: wordIndex}, nil
}

// ReadWordIndexJSON reads a {"word": rank} table.
func ReadWordIndexJSON(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSource, err)
	}
	var index map[string]int
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrDataSource, path, err)
	}
	return index, nil
}

// ReadReviews reads one Review per non-blank line.
func ReadReviews(path string) ([]Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSource, err)
	}
	defer func() { _ = f.Close() }()

	var reviews []Review
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var r Review
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %w", ErrDataSource, path, lineNo, err)
		}
		reviews = append(reviews, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrDataSource, path, err)
	}
	return reviews, nil
}
