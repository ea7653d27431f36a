// Package corpus loads integer-encoded movie-review corpora and turns token
// sequences back into text.
//
// Token IDs follow the canonical IMDB benchmark encoding: 0 pads, 1 starts a
// review, 2 stands for an out-of-vocabulary word, and a word of frequency
// rank r (1-based) is encoded as r+3.
package corpus

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Reserved token IDs.
const (
	PadID   = 0
	StartID = 1
	OOVID   = 2

	// IndexFrom is the offset added to word ranks.
	IndexFrom = 3
)

// Placeholder words for the reserved IDs.
const (
	PadWord   = "[pad]"
	StartWord = "[bos]"
	OOVWord   = "[oov]"
)

var (
	// ErrDataSource is wrapped by errors for a missing or malformed corpus.
	ErrDataSource = errors.New("data source error")

	// ErrLookup is wrapped when a token ID has no word.
	ErrLookup = errors.New("lookup error")
)

// Review is one encoded review and its sentiment label.
type Review struct {
	Tokens []int `json:"tokens"`
	Label  int   `json:"label"` // 0 = negative, 1 = positive
}

// Corpus holds the train and test reviews with the word -> rank table
// their tokens refer to.
type Corpus struct {
	Train     []Review
	Test      []Review
	WordIndex map[string]int
}

// Source supplies a corpus.
type Source interface {
	Load() (*Corpus, error)
}

// Load returns c itself, so an in-memory corpus is a Source.
func (c *Corpus) Load() (*Corpus, error) {
	return c, nil
}

// Validate checks the corpus shape before any decoding happens.
func (c *Corpus) Validate() error {
	if len(c.WordIndex) == 0 {
		return fmt.Errorf("%w: empty word index", ErrDataSource)
	}
	for _, s := range []struct {
		name    string
		reviews []Review
	}{{"train", c.Train}, {"test", c.Test}} {
		if len(s.reviews) == 0 {
			return fmt.Errorf("%w: %s split is empty", ErrDataSource, s.name)
		}
		for i, r := range s.reviews {
			if r.Label != 0 && r.Label != 1 {
				return fmt.Errorf("%w: %s review %d: label %d is not 0 or 1", ErrDataSource, s.name, i, r.Label)
			}
			for _, tok := range r.Tokens {
				if tok < 0 {
					return fmt.Errorf("%w: %s review %d: negative token %d", ErrDataSource, s.name, i, tok)
				}
			}
		}
	}
	return nil
}

// Labels returns the labels of reviews in order.
func Labels(reviews []Review) []int {
	return lo.Map(reviews, func(r Review, _ int) int { return r.Label })
}

// IndexToWord inverts a word -> rank table into a token ID -> word table,
// shifting ranks by indexFrom and adding the reserved placeholders.
func IndexToWord(wordIndex map[string]int, indexFrom int) (map[int]string, error) {
	table := make(map[int]string, len(wordIndex)+indexFrom)
	for word, rank := range wordIndex {
		if rank < 1 {
			return nil, fmt.Errorf("%w: word %q has rank %d, want >= 1", ErrDataSource, word, rank)
		}
		id := rank + indexFrom
		if other, ok := table[id]; ok {
			return nil, fmt.Errorf("%w: words %q and %q share rank %d", ErrDataSource, other, word, rank)
		}
		table[id] = word
	}
	table[PadID] = PadWord
	table[StartID] = StartWord
	table[OOVID] = OOVWord
	return table, nil
}

// Encode maps words to token IDs: a start token followed by rank+IndexFrom
// for known words and OOVID for the rest.
func Encode(words []string, wordIndex map[string]int) []int {
	tokens := make([]int, 0, len(words)+1)
	tokens = append(tokens, StartID)
	for _, w := range words {
		if rank, ok := wordIndex[w]; ok {
			tokens = append(tokens, rank+IndexFrom)
		} else {
			tokens = append(tokens, OOVID)
		}
	}
	return tokens
}
