package imdbow

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/happyhackingspace/imdbow/corpus"
	"github.com/happyhackingspace/imdbow/internal/progress"
	"github.com/happyhackingspace/imdbow/internal/split"
	"github.com/happyhackingspace/imdbow/internal/vectorizer"
	"github.com/happyhackingspace/imdbow/vocab"
)

// Preprocessor vectorizes corpora over a vocabulary loaded once at construction.
type Preprocessor struct {
	cfg        Config
	vocab      *vocab.Vocabulary
	vectorizer *vectorizer.BinaryVectorizer
	progress   progress.Reporter
}

// New validates cfg and loads the trimmed vocabulary.
func New(cfg *Config) (*Preprocessor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.SplitSize <= 0 {
		return nil, fmt.Errorf("imdbow: %w: split size %d must be positive", ErrConfiguration, cfg.SplitSize)
	}

	v, m, err := vocab.ExtractVocabulary(cfg.VocabularyPath, cfg.SkipHead, cfg.SkipTail)
	if err != nil {
		return nil, fmt.Errorf("imdbow: %w", err)
	}
	slog.Info("Vocabulary loaded", "path", cfg.VocabularyPath, "size", m,
		"skip-head", cfg.SkipHead, "skip-tail", cfg.SkipTail)

	rep := cfg.Progress
	if rep == nil {
		rep = progress.Nop()
	}
	return &Preprocessor{
		cfg:        *cfg,
		vocab:      v,
		vectorizer: vectorizer.NewBinaryVectorizer(v),
		progress:   rep,
	}, nil
}

// Vocabulary returns the trimmed vocabulary.
func (p *Preprocessor) Vocabulary() *vocab.Vocabulary {
	return p.vocab
}

// PreprocessReviews loads src, rebuilds every review's text, vectorizes the
// train and test sets, and splits the test set into dev and test.
func (p *Preprocessor) PreprocessReviews(src corpus.Source) (*Dataset, error) {
	start := time.Now()
	c, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("imdbow: load corpus: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("imdbow: %w", err)
	}
	if p.cfg.SplitSize >= len(c.Test) {
		return nil, fmt.Errorf("imdbow: %w: split size %d must be smaller than the %d test reviews",
			ErrConfiguration, p.cfg.SplitSize, len(c.Test))
	}
	slog.Info("Corpus loaded", "train", len(c.Train), "test", len(c.Test), "words", len(c.WordIndex))

	table, err := corpus.IndexToWord(c.WordIndex, corpus.IndexFrom)
	if err != nil {
		return nil, fmt.Errorf("imdbow: %w", err)
	}
	dec := corpus.NewDecoder(table, p.cfg.MissingIndex)
	trainTexts, err := p.decode(dec, "train", c.Train)
	if err != nil {
		return nil, err
	}
	testTexts, err := p.decode(dec, "test", c.Test)
	if err != nil {
		return nil, err
	}
	if dec.Substituted > 0 {
		slog.Warn("Unknown token IDs decoded as "+corpus.OOVWord, "count", dec.Substituted)
	}

	xTrain := p.vectorize("train", trainTexts)
	xTestFull := p.vectorize("test", testTexts)

	devIdx, testIdx, err := split.TrainTestSplit(len(c.Test), p.cfg.SplitSize, p.cfg.SplitSeed)
	if err != nil {
		return nil, fmt.Errorf("imdbow: %w: %w", ErrConfiguration, err)
	}
	yTestFull := corpus.Labels(c.Test)
	xDev, err := xTestFull.Take(devIdx)
	if err != nil {
		return nil, fmt.Errorf("imdbow: %w", err)
	}
	xTest, err := xTestFull.Take(testIdx)
	if err != nil {
		return nil, fmt.Errorf("imdbow: %w", err)
	}

	ds := &Dataset{
		XTrain:     xTrain,
		YTrain:     corpus.Labels(c.Train),
		XDev:       xDev,
		YDev:       gather(yTestFull, devIdx),
		XTest:      xTest,
		YTest:      gather(yTestFull, testIdx),
		Vocabulary: p.vocab,
	}
	slog.Info("Dataset ready", "train", ds.XTrain.Rows, "dev", ds.XDev.Rows, "test", ds.XTest.Rows,
		"features", p.vocab.Len(), "duration", time.Since(start))
	return ds, nil
}

func (p *Preprocessor) decode(dec *corpus.Decoder, name string, reviews []corpus.Review) ([]string, error) {
	p.progress.Start("decode "+name, len(reviews))
	defer p.progress.Stop()
	texts, err := dec.DecodeAll(reviews, p.progress.Incr)
	if err != nil {
		return nil, fmt.Errorf("imdbow: %s %w", name, err)
	}
	return texts, nil
}

func (p *Preprocessor) vectorize(name string, texts []string) *Matrix {
	p.progress.Start("vectorize "+name, len(texts))
	defer p.progress.Stop()
	m := p.vectorizer.TransformEach(texts, p.progress.Incr)
	slog.Debug("Vectorized", "split", name, "rows", m.Rows, "nnz", countNonZero(m))
	return m
}

func gather(labels []int, idx []int) []int {
	return lo.Map(idx, func(i int, _ int) int { return labels[i] })
}

func countNonZero(m *Matrix) int {
	return lo.Count(m.Data, 1)
}
