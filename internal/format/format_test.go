package format

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objones25/kmeans/internal/loader"
	"github.com/objones25/kmeans/internal/testutil"
)

func TestRow(t *testing.T) {
	tests := []struct {
		name string
		row  []float64
		want string
	}{
		{name: "integers", row: []float64{5, 0}, want: "5.0000,0.0000"},
		{name: "rounding", row: []float64{1.23456, -0.00004, 2.5}, want: "1.2346,-0.0000,2.5000"},
		{name: "single value", row: []float64{-7.1}, want: "-7.1000"},
		{name: "large value", row: []float64{123456.789}, want: "123456.7890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Row(tt.row))
		})
	}
}

func TestWrite(t *testing.T) {
	m := testutil.MustMatrix(t, [][]float64{{5, 0}, {5, 1}})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	assert.Equal(t, "5.0000,0.0000\n5.0000,1.0000\n", buf.String())
}

func TestWriteRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rows := make([][]float64, 25)
	for i := range rows {
		rows[i] = make([]float64, 4)
		for d := range rows[i] {
			rows[i][d] = rng.NormFloat64() * 1000
		}
	}
	m := testutil.MustMatrix(t, rows)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	assert.Equal(t, len(rows), strings.Count(buf.String(), "\n"))
	assert.NotContains(t, buf.String(), ",\n")

	parsed, err := loader.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, m.Rows(), parsed.Rows())
	for i := 0; i < m.Rows(); i++ {
		assert.InDeltaSlice(t, m.Row(i), parsed.Row(i), 1e-4)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWriteError(t *testing.T) {
	m := testutil.MustMatrix(t, [][]float64{{1}})
	assert.Error(t, Write(failingWriter{}, m))
}
