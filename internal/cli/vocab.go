package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/imdbow"
	"github.com/happyhackingspace/imdbow/vocab"
)

func (c *CLI) newVocabCommand() *cobra.Command {
	var path string
	var skipHead, skipTail int
	var printWords bool

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Load the trimmed vocabulary and report its size",
		Args:  cobra.NoArgs,
		Example: `  imdbow vocab
  imdbow vocab --skip-head 100 --skip-tail 80000 --words`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, m, err := vocab.ExtractVocabulary(path, skipHead, skipTail)
			if err != nil {
				return err
			}
			fmt.Printf("Vocabulary size: %d (first %q, last %q)\n", m, v.Word(0), v.Word(m-1))
			if printWords {
				for i, w := range v.Words() {
					fmt.Printf("%d\t%s\n", i, w)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "vocab", imdbow.DefaultVocabularyPath, "Frequency-sorted word list")
	cmd.Flags().IntVar(&skipHead, "skip-head", vocab.DefaultSkipHead, "Number of most common words to ignore")
	cmd.Flags().IntVar(&skipTail, "skip-tail", vocab.DefaultSkipTail, "Number of least common words to ignore")
	cmd.Flags().BoolVar(&printWords, "words", false, "Print every word with its feature index")
	return cmd
}
