package imdbow

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/happyhackingspace/imdbow/internal/npy"
	"github.com/happyhackingspace/imdbow/internal/vectorizer"
)

// VocabularyFile is the name of the column mapping written by Save.
const VocabularyFile = "vocabulary.json"

// Save writes the six arrays as .npy files (X_train.npy, y_train.npy, ...)
// and the vocabulary mapping into dir, creating it if needed.
func (d *Dataset) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("imdbow: create %s: %w", dir, err)
	}
	parts := []struct {
		name string
		x    *Matrix
		y    []int
	}{
		{"train", d.XTrain, d.YTrain},
		{"dev", d.XDev, d.YDev},
		{"test", d.XTest, d.YTest},
	}
	for _, part := range parts {
		x, y := part.x, part.y
		if err := npy.WriteFile(filepath.Join(dir, "X_"+part.name+".npy"), func(w io.Writer) error {
			return npy.WriteUint8(w, x.Shape(), x.Data)
		}); err != nil {
			return fmt.Errorf("imdbow: %w", err)
		}
		labels := lo.Map(y, func(v int, _ int) int64 { return int64(v) })
		if err := npy.WriteFile(filepath.Join(dir, "y_"+part.name+".npy"), func(w io.Writer) error {
			return npy.WriteInt64(w, []int{len(labels)}, labels)
		}); err != nil {
			return fmt.Errorf("imdbow: %w", err)
		}
	}

	if d.Vocabulary != nil {
		data, err := json.Marshal(vectorizer.NewBinaryVectorizer(d.Vocabulary))
		if err != nil {
			return fmt.Errorf("imdbow: encode vocabulary: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, VocabularyFile), data, 0644); err != nil {
			return fmt.Errorf("imdbow: %w", err)
		}
	}
	slog.Info("Dataset saved", "dir", dir)
	return nil
}
