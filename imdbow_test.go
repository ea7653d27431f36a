package imdbow

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/happyhackingspace/imdbow/corpus"
)

func writeVocab(t *testing.T, words []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imdb.vocab")
	if err := os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// numberedCorpus builds a vocabulary r0..r(n-1) and reviews that each
// contain exactly one of those words: test review i holds r(i), train
// review i holds r(i % n).
func numberedCorpus(t *testing.T, nWords, nTrain, nTest int) (*Config, *corpus.Corpus) {
	t.Helper()
	words := make([]string, nWords)
	wordIndex := make(map[string]int, nWords)
	for i := range words {
		words[i] = fmt.Sprintf("r%d", i)
		wordIndex[words[i]] = i + 1
	}
	review := func(i int) corpus.Review {
		return corpus.Review{Tokens: []int{corpus.StartID, i%nWords + 1 + corpus.IndexFrom}, Label: i % 2}
	}
	c := &corpus.Corpus{WordIndex: wordIndex}
	for i := 0; i < nTrain; i++ {
		c.Train = append(c.Train, review(i))
	}
	for i := 0; i < nTest; i++ {
		c.Test = append(c.Test, review(i))
	}

	cfg := DefaultConfig()
	cfg.VocabularyPath = writeVocab(t, words)
	cfg.SkipHead, cfg.SkipTail = 0, 0
	return cfg, c
}

func onlyColumn(t *testing.T, m *Matrix, row int) int {
	t.Helper()
	col := -1
	for j, x := range m.Row(row) {
		if x == 1 {
			if col >= 0 {
				t.Fatalf("row %d has more than one set column", row)
			}
			col = j
		}
	}
	return col
}

func TestPreprocessReviewsExample(t *testing.T) {
	lines := make([]string, 90000)
	for i := range lines {
		lines[i] = fmt.Sprintf("w%d", i)
	}
	lines[0], lines[1], lines[500], lines[900] = "the", "was", "movie", "great"

	cfg := DefaultConfig()
	cfg.VocabularyPath = writeVocab(t, lines)
	cfg.SplitSize = 1

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Vocabulary().Len() != 1100 {
		t.Fatalf("vocabulary size = %d, want 1100", p.Vocabulary().Len())
	}

	the, movie, was, great := 4, 5, 6, 7
	review := corpus.Review{Tokens: []int{the, movie, was, great}, Label: 1}
	c := &corpus.Corpus{
		Train:     []corpus.Review{review},
		Test:      []corpus.Review{review, review},
		WordIndex: map[string]int{"the": 1, "movie": 2, "was": 3, "great": 4},
	}
	ds, err := p.PreprocessReviews(c)
	if err != nil {
		t.Fatal(err)
	}
	if ds.XTrain.Rows != 1 || ds.XTrain.Cols != 1100 {
		t.Fatalf("XTrain shape = %v, want [1 1100]", ds.XTrain.Shape())
	}
	var set []int
	for j, x := range ds.XTrain.Row(0) {
		if x != 0 && x != 1 {
			t.Fatalf("non-binary entry %d at %d", x, j)
		}
		if x == 1 {
			set = append(set, j)
		}
	}
	if !reflect.DeepEqual(set, []int{100, 500}) {
		t.Errorf("set columns = %v, want [100 500] (movie, great)", set)
	}
}

func TestPreprocessReviewsPartition(t *testing.T) {
	cfg, c := numberedCorpus(t, 10, 4, 10)
	cfg.SplitSize = 3

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := p.PreprocessReviews(c)
	if err != nil {
		t.Fatal(err)
	}

	if ds.XTrain.Rows != 4 || len(ds.YTrain) != 4 {
		t.Errorf("train rows = %d/%d, want 4", ds.XTrain.Rows, len(ds.YTrain))
	}
	if ds.XDev.Rows != 7 || ds.XTest.Rows != 3 {
		t.Fatalf("dev/test rows = %d/%d, want 7/3", ds.XDev.Rows, ds.XTest.Rows)
	}

	// Each test review i carries only column i, so the columns recover the
	// original review order of each partition.
	var dev, test []int
	for i := 0; i < ds.XDev.Rows; i++ {
		dev = append(dev, onlyColumn(t, ds.XDev, i))
		if ds.YDev[i] != dev[i]%2 {
			t.Errorf("dev row %d: label %d does not match review %d", i, ds.YDev[i], dev[i])
		}
	}
	for i := 0; i < ds.XTest.Rows; i++ {
		test = append(test, onlyColumn(t, ds.XTest, i))
		if ds.YTest[i] != test[i]%2 {
			t.Errorf("test row %d: label %d does not match review %d", i, ds.YTest[i], test[i])
		}
	}
	if !reflect.DeepEqual(dev, []int{0, 7, 2, 9, 4, 3, 6}) {
		t.Errorf("dev reviews = %v, want [0 7 2 9 4 3 6]", dev)
	}
	if !reflect.DeepEqual(test, []int{8, 1, 5}) {
		t.Errorf("test reviews = %v, want [8 1 5]", test)
	}
	for i, y := range ds.YTrain {
		if y != i%2 || onlyColumn(t, ds.XTrain, i) != i {
			t.Errorf("train row %d out of order", i)
		}
	}
}

func TestPreprocessReviewsDeterministic(t *testing.T) {
	cfg, c := numberedCorpus(t, 20, 30, 40)
	cfg.SplitSize = 10

	p1, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	a, err := p1.PreprocessReviews(c)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p2.PreprocessReviews(c)
	if err != nil {
		t.Fatal(err)
	}
	if !a.XTrain.Equal(b.XTrain) || !a.XDev.Equal(b.XDev) || !a.XTest.Equal(b.XTest) {
		t.Error("feature matrices differ between runs")
	}
	if !reflect.DeepEqual(a.YDev, b.YDev) || !reflect.DeepEqual(a.YTest, b.YTest) {
		t.Error("labels differ between runs")
	}
}

func TestPreprocessReviewsMissingIndex(t *testing.T) {
	cfg, c := numberedCorpus(t, 5, 3, 5)
	cfg.SplitSize = 2
	c.Test[3].Tokens = append(c.Test[3].Tokens, 999)

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.PreprocessReviews(c)
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("err = %v, want ErrLookup", err)
	}
	if !strings.Contains(err.Error(), "test review 3") {
		t.Errorf("err = %v, want it to name test review 3", err)
	}

	cfg.MissingIndex = corpus.MissingOOV
	p, err = New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := p.PreprocessReviews(c)
	if err != nil {
		t.Fatal(err)
	}
	if ds.XDev.Rows+ds.XTest.Rows != 5 {
		t.Errorf("dev+test = %d, want 5", ds.XDev.Rows+ds.XTest.Rows)
	}
}

func TestPreprocessReviewsSplitTooLarge(t *testing.T) {
	cfg, c := numberedCorpus(t, 5, 3, 5)
	cfg.SplitSize = 5

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.PreprocessReviews(c); !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

func TestPreprocessReviewsBadCorpus(t *testing.T) {
	cfg, c := numberedCorpus(t, 5, 3, 5)
	cfg.SplitSize = 2
	c.Train[0].Label = 7

	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.PreprocessReviews(c); !errors.Is(err, ErrDataSource) {
		t.Errorf("err = %v, want ErrDataSource", err)
	}
}

func TestNewConfigurationErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VocabularyPath = filepath.Join(t.TempDir(), "missing.vocab")
	_, err := New(cfg)
	if !errors.Is(err, ErrConfiguration) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing vocabulary: err = %v", err)
	}

	cfg = DefaultConfig()
	cfg.VocabularyPath = writeVocab(t, []string{"a", "b", "c"})
	if _, err := New(cfg); !errors.Is(err, ErrConfiguration) {
		t.Errorf("empty window: err = %v, want ErrConfiguration", err)
	}

	cfg.SkipHead, cfg.SkipTail = 0, 0
	cfg.SplitSize = 0
	if _, err := New(cfg); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero split size: err = %v, want ErrConfiguration", err)
	}
}

func TestDatasetSave(t *testing.T) {
	cfg, c := numberedCorpus(t, 6, 4, 6)
	cfg.SplitSize = 2
	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := p.PreprocessReviews(c)
	if err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	if err := ds.Save(dir); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"X_train.npy", "y_train.npy", "X_dev.npy", "y_dev.npy", "X_test.npy", "y_test.npy"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "\x93NUMPY") {
			t.Errorf("%s: missing .npy magic", name)
		}
	}
	xTrain, _ := os.ReadFile(filepath.Join(dir, "X_train.npy"))
	if payload := xTrain[len(xTrain)-len(ds.XTrain.Data):]; !reflect.DeepEqual(payload, ds.XTrain.Data) {
		t.Error("X_train.npy payload does not match the matrix")
	}

	data, err := os.ReadFile(filepath.Join(dir, VocabularyFile))
	if err != nil {
		t.Fatal(err)
	}
	var vocab struct {
		Vocabulary map[string]int `json:"vocabulary"`
		Size       int            `json:"size"`
	}
	if err := json.Unmarshal(data, &vocab); err != nil {
		t.Fatal(err)
	}
	if vocab.Size != 6 || vocab.Vocabulary["r5"] != 5 {
		t.Errorf("vocabulary.json = %s", data)
	}
}
