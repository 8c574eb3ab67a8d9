package testutil

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/objones25/kmeans/internal/vector"
)

// MustMatrix builds a matrix from rows or fails the test
func MustMatrix(t testing.TB, rows [][]float64) *vector.Matrix {
	t.Helper()
	m, err := vector.FromRows(rows)
	require.NoError(t, err)
	return m
}

// Blobs generates perCenter points around each center with Gaussian noise,
// interleaving centers so the first rows come from different blobs.
func Blobs(rng *rand.Rand, centers [][]float64, perCenter int, stddev float64) [][]float64 {
	rows := make([][]float64, 0, len(centers)*perCenter)
	for i := 0; i < perCenter; i++ {
		for _, center := range centers {
			point := make([]float64, len(center))
			for d, c := range center {
				point[d] = c + rng.NormFloat64()*stddev
			}
			rows = append(rows, point)
		}
	}
	return rows
}
