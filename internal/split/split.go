// Package split partitions datasets with a seeded shuffle that reproduces
// NumPy RandomState permutations and sklearn's train_test_split.
package split

import (
	"fmt"
	"math"
)

// Shuffle permutes idx in place with a Fisher-Yates pass from the last element down.
func Shuffle(rng *MT19937, idx []int) {
	for i := len(idx) - 1; i > 0; i-- {
		j := int(rng.Interval(uint32(i)))
		idx[i], idx[j] = idx[j], idx[i]
	}
}

// Permutation returns a seeded permutation of 0..n-1.
func Permutation(n int, seed uint32) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	Shuffle(NewMT19937(seed), idx)
	return idx
}

// TrainTestSplit splits n samples into train and test index sets, test
// holding exactly testSize samples. Both sides keep permutation order.
func TrainTestSplit(n, testSize int, seed uint32) (train, test []int, err error) {
	if uint64(n) > math.MaxUint32 {
		return nil, nil, fmt.Errorf("split: %d samples exceed generator range", n)
	}
	if testSize <= 0 || testSize >= n {
		return nil, nil, fmt.Errorf("split: test size %d must be in [1, %d) for %d samples", testSize, n, n)
	}
	perm := Permutation(n, seed)
	return perm[testSize:], perm[:testSize], nil
}
