// Package imdbow turns the IMDB movie-review sentiment corpus into binary
// bag-of-words feature matrices over a trimmed vocabulary, split into train,
// dev and test partitions for a downstream classifier.
//
//	p, _ := imdbow.New(imdbow.DefaultConfig())
//	ds, _ := p.PreprocessReviews(corpus.NewACLImdb("aclImdb"))
//	fmt.Println(ds.XTrain.Rows, ds.XDev.Rows, ds.XTest.Rows) // 25000 18750 6250
//	_ = ds.Save("out")
package imdbow

import (
	"github.com/happyhackingspace/imdbow/corpus"
	"github.com/happyhackingspace/imdbow/internal/progress"
	"github.com/happyhackingspace/imdbow/internal/vectorizer"
	"github.com/happyhackingspace/imdbow/vocab"
)

// Matrix is a dense 0/1 feature matrix, one row per review and one column
// per vocabulary word.
type Matrix = vectorizer.Matrix

// Error kinds, for errors.Is.
var (
	ErrConfiguration = vocab.ErrConfiguration
	ErrDataSource    = corpus.ErrDataSource
	ErrLookup        = corpus.ErrLookup
)

// Defaults of the reference preprocessing run.
const (
	DefaultVocabularyPath = "aclImdb/imdb.vocab"
	DefaultSplitSize      = 6250
	DefaultSplitSeed      = 42
)

// Config holds the preprocessing parameters.
type Config struct {
	VocabularyPath string
	SkipHead       int // most common words to drop
	SkipTail       int // least common words to drop
	SplitSize      int // examples moved from the test set into the final test partition
	SplitSeed      uint32
	MissingIndex   corpus.MissingPolicy
	Progress       progress.Reporter
}

// DefaultConfig returns the configuration of the reference run.
func DefaultConfig() *Config {
	return &Config{
		VocabularyPath: DefaultVocabularyPath,
		SkipHead:       vocab.DefaultSkipHead,
		SkipTail:       vocab.DefaultSkipTail,
		SplitSize:      DefaultSplitSize,
		SplitSeed:      DefaultSplitSeed,
		MissingIndex:   corpus.MissingFail,
		Progress:       progress.Nop(),
	}
}

// Dataset holds the vectorized partitions. Row i of each matrix pairs with
// element i of its label slice.
type Dataset struct {
	XTrain *Matrix
	YTrain []int
	XDev   *Matrix
	YDev   []int
	XTest  *Matrix
	YTest  []int

	Vocabulary *vocab.Vocabulary
}
