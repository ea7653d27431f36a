package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/happyhackingspace/imdbow/internal/htmlutil"
)

// VocabFile is the word list shipped at the root of the aclImdb folder.
const VocabFile = "imdb.vocab"

// Storage wraps the aclImdb data folder.
type Storage struct {
	Folder string
}

// NewStorage creates a Storage for the given data folder.
func NewStorage(folder string) *Storage {
	return &Storage{Folder: folder}
}

// VocabularyPath returns the path of imdb.vocab inside the folder.
func (s *Storage) VocabularyPath() string {
	return filepath.Join(s.Folder, VocabFile)
}

// ListReviews returns the review files of a split, negatives first, each
// label ordered by review ID.
func (s *Storage) ListReviews(split string) ([]ReviewFile, error) {
	var files []ReviewFile
	for _, ld := range labelDirs {
		dir := filepath.Join(s.Folder, split, ld.dir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("list %s reviews: %w", split, err)
		}
		var group []ReviewFile
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
				continue
			}
			id, rating, err := ParseReviewName(e.Name())
			if err != nil {
				slog.Warn("Skipping review file", "path", filepath.Join(dir, e.Name()), "error", err)
				continue
			}
			group = append(group, ReviewFile{
				Path:   filepath.Join(dir, e.Name()),
				ID:     id,
				Rating: rating,
				Label:  ld.label,
			})
		}
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		files = append(files, group...)
	}
	return files, nil
}

// IterReviews loads every review of a split in ListReviews order.
func (s *Storage) IterReviews(split string, opts IterOptions) ([]Review, error) {
	files, err := s.ListReviews(split)
	if err != nil {
		return nil, err
	}
	if opts.OnStart != nil {
		opts.OnStart(len(files))
	}

	reviews := make([]Review, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("read review: %w", err)
		}
		text := string(data)
		if opts.CleanHTML {
			text, err = htmlutil.Text(text)
			if err != nil {
				return nil, fmt.Errorf("clean review %s: %w", f.Path, err)
			}
		}
		reviews = append(reviews, Review{ReviewFile: f, Text: text})
		if opts.OnRead != nil {
			opts.OnRead()
		}
	}
	slog.Debug("Reviews loaded", "split", split, "count", len(reviews))
	return reviews, nil
}

// IterOptions controls review loading.
type IterOptions struct {
	CleanHTML bool
	OnStart   func(total int)
	OnRead    func()
}

// DefaultIterOptions returns the default options for loading reviews.
func DefaultIterOptions() IterOptions {
	return IterOptions{CleanHTML: true}
}

// ParseReviewName extracts the ID and star rating from "<id>_<rating>.txt".
func ParseReviewName(name string) (id, rating int, err error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	idStr, ratingStr, ok := strings.Cut(base, "_")
	if !ok {
		return 0, 0, fmt.Errorf("review name %q: want <id>_<rating>", name)
	}
	if id, err = strconv.Atoi(idStr); err != nil {
		return 0, 0, fmt.Errorf("review name %q: bad id: %w", name, err)
	}
	if rating, err = strconv.Atoi(ratingStr); err != nil {
		return 0, 0, fmt.Errorf("review name %q: bad rating: %w", name, err)
	}
	return id, rating, nil
}
