// Package vector holds the dense row-major matrix shared by the loader, the
// clustering engine and the formatter.
package vector

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmpty is returned when a matrix would have no rows or no columns
	ErrEmpty = errors.New("matrix has no rows or columns")

	// ErrDimensionMismatch is returned when row lengths disagree
	ErrDimensionMismatch = errors.New("row dimension mismatch")
)

// Matrix is an ordered set of N vectors of equal dimension D.
type Matrix struct {
	dense *mat.Dense
}

// NewMatrix builds a rows x dim matrix over data, which is used as backing
// storage without copying.
func NewMatrix(rows, dim int, data []float64) (*Matrix, error) {
	if rows <= 0 || dim <= 0 {
		return nil, ErrEmpty
	}
	if len(data) != rows*dim {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrDimensionMismatch, len(data), rows, dim)
	}
	return &Matrix{dense: mat.NewDense(rows, dim, data)}, nil
}

// FromRows copies rows into a new matrix. All rows must share the length of
// the first one.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	dim := len(rows[0])
	data := make([]float64, 0, len(rows)*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrDimensionMismatch, i, len(row), dim)
		}
		data = append(data, row...)
	}
	return NewMatrix(len(rows), dim, data)
}

// Rows returns N.
func (m *Matrix) Rows() int {
	r, _ := m.dense.Dims()
	return r
}

// Dim returns D.
func (m *Matrix) Dim() int {
	_, c := m.dense.Dims()
	return c
}

// Row returns a view of row i. Writes through the view modify the matrix.
func (m *Matrix) Row(i int) []float64 {
	return m.dense.RawRowView(i)
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{dense: mat.DenseCopyOf(m.dense)}
}

// Head returns an independent copy of the first n rows.
func (m *Matrix) Head(n int) (*Matrix, error) {
	if n <= 0 || n > m.Rows() {
		return nil, fmt.Errorf("head of %d rows out of range [1,%d]", n, m.Rows())
	}
	return &Matrix{dense: mat.DenseCopyOf(m.dense.Slice(0, n, 0, m.Dim()))}, nil
}

// ToRows copies the matrix out as a slice of rows.
func (m *Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = append([]float64(nil), m.Row(i)...)
	}
	return out
}

// Equal reports whether both matrices have the same shape and identical values.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil {
		return false
	}
	return mat.Equal(m.dense, other.dense)
}
