// Package format renders centroids as comma-separated lines with four
// fractional digits.
package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/objones25/kmeans/internal/vector"
)

// Precision is the number of fractional digits written per value
const Precision = 4

// AppendRow appends the formatted values of row to dst without a newline.
func AppendRow(dst []byte, row []float64) []byte {
	for i, v := range row {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendFloat(dst, v, 'f', Precision, 64)
	}
	return dst
}

// Row formats a single row without a trailing newline.
func Row(row []float64) string {
	return string(AppendRow(nil, row))
}

// Write writes one newline-terminated line per row of m.
func Write(w io.Writer, m *vector.Matrix) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16*m.Dim())
	for i := 0; i < m.Rows(); i++ {
		buf = AppendRow(buf[:0], m.Row(i))
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("writing centroid %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing centroids: %w", err)
	}
	return nil
}
