package corpus

import (
	"fmt"
	"log/slog"

	"github.com/happyhackingspace/imdbow/internal/progress"
	"github.com/happyhackingspace/imdbow/internal/split"
	"github.com/happyhackingspace/imdbow/internal/storage"
	"github.com/happyhackingspace/imdbow/internal/textutil"
	"github.com/happyhackingspace/imdbow/vocab"
)

// DefaultShuffleSeed is the seed the canonical IMDB loader shuffles with.
const DefaultShuffleSeed = 113

// ACLImdb encodes the raw aclImdb review folder. Words are ranked by their
// position in imdb.vocab, and train then test are shuffled with one generator.
//
// Unlike the canonical integer corpus, which keeps the "br" of every <br />
// as a word, review markup is stripped before encoding.
type ACLImdb struct {
	Folder   string
	Shuffle  bool
	Seed     uint32
	Progress progress.Reporter
}

// NewACLImdb creates a source for folder with the default shuffle.
func NewACLImdb(folder string) *ACLImdb {
	return &ACLImdb{
		Folder:   folder,
		Shuffle:  true,
		Seed:     DefaultShuffleSeed,
		Progress: progress.Nop(),
	}
}

// Load implements Source.
func (a *ACLImdb) Load() (*Corpus, error) {
	store := storage.NewStorage(a.Folder)
	wordIndex, err := vocab.ReadWordIndex(store.VocabularyPath())
	if err != nil {
		return nil, fmt.Errorf("%w: word index: %w", ErrDataSource, err)
	}
	slog.Debug("Word index loaded", "words", len(wordIndex))

	train, err := a.loadSplit(store, storage.Train, wordIndex)
	if err != nil {
		return nil, err
	}
	test, err := a.loadSplit(store, storage.Test, wordIndex)
	if err != nil {
		return nil, err
	}

	if a.Shuffle {
		rng := split.NewMT19937(a.Seed)
		train = shuffleReviews(rng, train)
		test = shuffleReviews(rng, test)
	}
	return &Corpus{Train: train, Test: test, WordIndex: wordIndex}, nil
}

func (a *ACLImdb) loadSplit(store *storage.Storage, name string, wordIndex map[string]int) ([]Review, error) {
	rep := a.Progress
	if rep == nil {
		rep = progress.Nop()
	}
	opts := storage.DefaultIterOptions()
	opts.OnStart = func(total int) { rep.Start("read "+name, total) }
	opts.OnRead = rep.Incr

	raw, err := store.IterReviews(name, opts)
	rep.Stop()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSource, err)
	}

	reviews := make([]Review, len(raw))
	for i, r := range raw {
		reviews[i] = Review{
			Tokens: Encode(textutil.Words(r.Text), wordIndex),
			Label:  r.Label,
		}
	}
	slog.Info("Split encoded", "split", name, "reviews", len(reviews))
	return reviews, nil
}

// shuffleReviews reorders reviews by a permutation drawn from rng.
func shuffleReviews(rng *split.MT19937, reviews []Review) []Review {
	idx := make([]int, len(reviews))
	for i := range idx {
		idx[i] = i
	}
	split.Shuffle(rng, idx)
	out := make([]Review, len(reviews))
	for i, j := range idx {
		out[i] = reviews[j]
	}
	return out
}
