// Package vectorizer turns review text into binary bag-of-words vectors,
// matching sklearn's CountVectorizer(vocabulary=..., binary=True).
package vectorizer

import "sort"

// SparseVector is a binary vector stored as its sorted set positions.
type SparseVector struct {
	Indices []int
	Dim     int
}

// NewSparseVector creates an all-zero sparse vector with given dimension.
func NewSparseVector(dim int) SparseVector {
	return SparseVector{Dim: dim}
}

// Set marks position idx. Setting an already set position is a no-op.
func (sv *SparseVector) Set(idx int) {
	i := sort.SearchInts(sv.Indices, idx)
	if i < len(sv.Indices) && sv.Indices[i] == idx {
		return
	}
	sv.Indices = append(sv.Indices, 0)
	copy(sv.Indices[i+1:], sv.Indices[i:])
	sv.Indices[i] = idx
}

// Has reports whether position idx is set.
func (sv SparseVector) Has(idx int) bool {
	i := sort.SearchInts(sv.Indices, idx)
	return i < len(sv.Indices) && sv.Indices[i] == idx
}

// ToDense converts to a dense 0/1 slice.
func (sv SparseVector) ToDense() []uint8 {
	dense := make([]uint8, sv.Dim)
	for _, idx := range sv.Indices {
		if idx < sv.Dim {
			dense[idx] = 1
		}
	}
	return dense
}

// Nnz returns the number of non-zero entries.
func (sv SparseVector) Nnz() int {
	return len(sv.Indices)
}
