// Package storage provides access to the raw aclImdb review folder.
package storage

// Split names as laid out under the aclImdb folder.
const (
	Train = "train"
	Test  = "test"
)

// Label directories and their sentiment values.
var labelDirs = []struct {
	dir   string
	label int
}{
	{"neg", 0},
	{"pos", 1},
}

// ReviewFile identifies one review on disk.
type ReviewFile struct {
	Path   string
	ID     int
	Rating int // star rating from the file name, 1-10
	Label  int // 0 = negative, 1 = positive
}

// Review is a review file with its text loaded.
type Review struct {
	ReviewFile
	Text string
}
