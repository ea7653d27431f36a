package vectorizer

import (
	"bytes"
	"fmt"
)

// Matrix is a dense row-major 0/1 feature matrix, one row per review.
type Matrix struct {
	Rows int
	Cols int
	Data []uint8
}

// NewMatrix allocates a zero matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]uint8, rows*cols)}
}

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) uint8 {
	return m.Data[i*m.Cols+j]
}

// Row returns row i. The slice aliases the matrix storage.
func (m *Matrix) Row(i int) []uint8 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// SetRow writes a sparse vector into row i.
func (m *Matrix) SetRow(i int, sv SparseVector) {
	row := m.Row(i)
	clear(row)
	for _, idx := range sv.Indices {
		row[idx] = 1
	}
}

// Take returns a new matrix made of the given rows, in order.
func (m *Matrix) Take(rows []int) (*Matrix, error) {
	out := NewMatrix(len(rows), m.Cols)
	for i, r := range rows {
		if r < 0 || r >= m.Rows {
			return nil, fmt.Errorf("row %d out of range [0, %d)", r, m.Rows)
		}
		copy(out.Row(i), m.Row(r))
	}
	return out, nil
}

// Equal reports whether both matrices have the same shape and entries.
func (m *Matrix) Equal(o *Matrix) bool {
	return m.Rows == o.Rows && m.Cols == o.Cols && bytes.Equal(m.Data, o.Data)
}

// Shape returns (rows, cols).
func (m *Matrix) Shape() []int {
	return []int{m.Rows, m.Cols}
}
