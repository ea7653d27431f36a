package vectorizer

import (
	"encoding/json"
	"strings"

	"github.com/happyhackingspace/imdbow/internal/textutil"
	"github.com/happyhackingspace/imdbow/vocab"
)

// BinaryVectorizer records which vocabulary words occur in a text.
// The vocabulary is fixed at construction.
type BinaryVectorizer struct {
	vocab *vocab.Vocabulary
}

// NewBinaryVectorizer creates a vectorizer over a fixed vocabulary.
func NewBinaryVectorizer(v *vocab.Vocabulary) *BinaryVectorizer {
	return &BinaryVectorizer{vocab: v}
}

// analyze lowercases text and splits it into tokens of two or more word characters.
func (bv *BinaryVectorizer) analyze(text string) []string {
	return textutil.Tokenize(strings.ToLower(text))
}

// Transform converts a single text to a binary sparse vector.
// Tokens outside the vocabulary are ignored.
func (bv *BinaryVectorizer) Transform(text string) SparseVector {
	sv := NewSparseVector(bv.vocab.Len())
	for _, tok := range bv.analyze(text) {
		if idx, ok := bv.vocab.Index(tok); ok {
			sv.Set(idx)
		}
	}
	return sv
}

// TransformAll vectorizes texts into a (len(texts), VocabSize()) matrix.
func (bv *BinaryVectorizer) TransformAll(texts []string) *Matrix {
	return bv.TransformEach(texts, nil)
}

// TransformEach is TransformAll calling tick after every row, if non-nil.
func (bv *BinaryVectorizer) TransformEach(texts []string, tick func()) *Matrix {
	m := NewMatrix(len(texts), bv.VocabSize())
	for i, text := range texts {
		m.SetRow(i, bv.Transform(text))
		if tick != nil {
			tick()
		}
	}
	return m
}

// VocabSize returns the vocabulary size.
func (bv *BinaryVectorizer) VocabSize() int {
	return bv.vocab.Len()
}

// MarshalJSON implements json.Marshaler. Only the vocabulary is written,
// which is enough to map matrix columns back to words.
func (bv *BinaryVectorizer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Vocabulary map[string]int `json:"vocabulary"`
		Size       int            `json:"size"`
		Binary     bool           `json:"binary"`
	}{
		Vocabulary: bv.vocab.Mapping(),
		Size:       bv.vocab.Len(),
		Binary:     true,
	})
}
