// Package loader reads line-delimited, comma-separated numeric records into a
// vector.Matrix.
//
// The first non-blank line fixes the dimension (commas + 1). Every later
// record must carry exactly that many values. Any malformed record fails the
// whole load; no partial matrix is ever returned.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/objones25/kmeans/internal/vector"
)

// maxLineSize bounds a single record. bufio.Scanner's default of 64KiB is too
// small for high-dimensional rows.
const maxLineSize = 16 << 20

var (
	// ErrMalformedInput is returned when a record cannot be parsed
	ErrMalformedInput = errors.New("malformed input")

	// ErrNoData is returned when the input holds no records
	ErrNoData = errors.New("no input vectors")
)

// ParseError describes why a load failed
type ParseError struct {
	Line   int    // 1-based input line, 0 when not tied to a line
	Reason string // Human readable detail
	Err    error  // ErrMalformedInput, ErrNoData or the underlying read error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v (%s)", e.Line, e.Err, e.Reason)
	}
	return fmt.Sprintf("%v (%s)", e.Err, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads records from r until EOF.
func Load(r io.Reader) (*vector.Matrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		data   []float64
		dim    int
		rows   int
		lineNo int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		if line == "" {
			continue
		}

		if rows == 0 {
			dim = strings.Count(line, ",") + 1
		}

		var reason string
		data, reason = parseRecord(data, line, dim)
		if reason != "" {
			return nil, &ParseError{Line: lineNo, Reason: reason, Err: ErrMalformedInput}
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: lineNo + 1, Reason: "read failed", Err: err}
	}

	if rows == 0 {
		return nil, &ParseError{Reason: "input contained no records", Err: ErrNoData}
	}

	return vector.NewMatrix(rows, dim, data)
}

// LoadString is Load over an in-memory string.
func LoadString(s string) (*vector.Matrix, error) {
	return Load(strings.NewReader(s))
}

// parseRecord appends the dim values of line to dst. A non-empty reason
// means the record is malformed.
func parseRecord(dst []float64, line string, dim int) ([]float64, string) {
	rest := line
	for i := 0; i < dim; i++ {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)

		var token string
		if i < dim-1 {
			idx := strings.IndexByte(rest, ',')
			if idx < 0 {
				return dst, fmt.Sprintf("expected %d values, found %d", dim, i+1)
			}
			token, rest = rest[:idx], rest[idx+1:]
		} else {
			// Trailing whitespace was already trimmed off the line.
			token = rest
		}

		v, reason := parseValue(token)
		if reason != "" {
			return dst, fmt.Sprintf("value %d: %s", i+1, reason)
		}
		dst = append(dst, v)
	}
	return dst, ""
}

func parseValue(token string) (float64, string) {
	if token == "" {
		return 0, "missing value"
	}
	if strings.ContainsRune(token, '_') {
		return 0, fmt.Sprintf("invalid number %q", token)
	}
	v, err := strconv.ParseFloat(hexExponent(token), 64)
	if err != nil {
		return 0, fmt.Sprintf("invalid number %q", token)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Sprintf("non-finite number %q", token)
	}
	return v, ""
}

// hexExponent appends a zero binary exponent to a hexadecimal mantissa that
// has none, so "0x10" reads as 16. ParseFloat requires the exponent.
func hexExponent(token string) string {
	digits := strings.TrimLeft(token, "+-")
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') &&
		!strings.ContainsAny(digits, "pP") {
		return token + "p0"
	}
	return token
}
