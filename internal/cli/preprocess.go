package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/imdbow"
	"github.com/happyhackingspace/imdbow/corpus"
	"github.com/happyhackingspace/imdbow/internal/storage"
	"github.com/happyhackingspace/imdbow/vocab"
)

// corpusFlags selects and configures the corpus source.
type corpusFlags struct {
	format      string
	dataFolder  string
	noShuffle   bool
	shuffleSeed uint32
	wordIndex   string
	trainPath   string
	testPath    string
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "acl", "Corpus format: acl (raw aclImdb folder) or jsonl")
	cmd.Flags().StringVar(&f.dataFolder, "data-folder", "aclImdb", "Path to the aclImdb folder (acl format)")
	cmd.Flags().BoolVar(&f.noShuffle, "no-shuffle", false, "Keep aclImdb reviews in folder order (acl format)")
	cmd.Flags().Uint32Var(&f.shuffleSeed, "shuffle-seed", corpus.DefaultShuffleSeed, "Seed for shuffling train and test reviews (acl format)")
	cmd.Flags().StringVar(&f.wordIndex, "word-index", "word_index.json", "Word -> rank JSON table (jsonl format)")
	cmd.Flags().StringVar(&f.trainPath, "train", "train.jsonl", "Encoded train reviews (jsonl format)")
	cmd.Flags().StringVar(&f.testPath, "test", "test.jsonl", "Encoded test reviews (jsonl format)")
}

func (f *corpusFlags) source(c *CLI) (corpus.Source, error) {
	switch f.format {
	case "acl":
		src := corpus.NewACLImdb(f.dataFolder)
		src.Shuffle = !f.noShuffle
		src.Seed = f.shuffleSeed
		src.Progress = c.reporter()
		return src, nil
	case "jsonl":
		return &corpus.JSONL{
			WordIndexPath: f.wordIndex,
			TrainPath:     f.trainPath,
			TestPath:      f.testPath,
		}, nil
	}
	return nil, fmt.Errorf("unknown corpus format %q (want acl or jsonl)", f.format)
}

func (c *CLI) newPreprocessCommand() *cobra.Command {
	cfg := imdbow.DefaultConfig()
	var src corpusFlags
	var onMissing string
	var outDir string

	cmd := &cobra.Command{
		Use:   "imdbow",
		Short: "Turn IMDB reviews into binary bag-of-words train/dev/test matrices",
		Args:  cobra.NoArgs,
		Example: `  # Reference run: aclImdb/ in the working directory, results discarded
  imdbow

  # Persist the arrays as .npy files
  imdbow --out features

  # Use a different trim window and split
  imdbow --skip-head 100 --skip-tail 80000 --split-size 5000 --seed 7

  # Read a corpus exported as JSON lines
  imdbow --format jsonl --word-index word_index.json --train train.jsonl --test test.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := corpus.ParseMissingPolicy(onMissing)
			if err != nil {
				return err
			}
			cfg.MissingIndex = policy
			if !cmd.Flags().Changed("vocab") && src.format == "acl" {
				cfg.VocabularyPath = filepath.Join(src.dataFolder, storage.VocabFile)
			}
			cfg.Progress = c.reporter()

			source, err := src.source(c)
			if err != nil {
				return err
			}
			p, err := imdbow.New(cfg)
			if err != nil {
				return err
			}
			ds, err := p.PreprocessReviews(source)
			if err != nil {
				return err
			}
			if outDir == "" {
				slog.Debug("No output directory given, discarding arrays")
				return nil
			}
			return ds.Save(outDir)
		},
	}

	cmd.Flags().StringVar(&cfg.VocabularyPath, "vocab", imdbow.DefaultVocabularyPath, "Frequency-sorted word list (defaults to <data-folder>/imdb.vocab)")
	cmd.Flags().IntVar(&cfg.SkipHead, "skip-head", vocab.DefaultSkipHead, "Number of most common words to ignore")
	cmd.Flags().IntVar(&cfg.SkipTail, "skip-tail", vocab.DefaultSkipTail, "Number of least common words to ignore")
	cmd.Flags().IntVar(&cfg.SplitSize, "split-size", imdbow.DefaultSplitSize, "Number of test reviews kept as the final test partition; the rest become dev")
	cmd.Flags().Uint32Var(&cfg.SplitSeed, "seed", imdbow.DefaultSplitSeed, "Seed for the dev/test split")
	cmd.Flags().StringVar(&onMissing, "on-missing", corpus.MissingFail.String(), "Token IDs with no word: fail or oov")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory to write X_*.npy, y_*.npy and vocabulary.json into")
	src.register(cmd)
	return cmd
}
