package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/objones25/kmeans/internal/kmeans"
)

const (
	// MinClusters is the smallest accepted K
	MinClusters = 2

	// MinIterations and MaxIterations bound the iteration argument, inclusive
	MinIterations = 2
	MaxIterations = 999
)

// Args holds the validated positional arguments
type Args struct {
	K             int
	MaxIterations int
}

// ParseArgs validates "K [MAX_ITER]". K is checked before MAX_ITER and both
// are checked before any input is read.
func ParseArgs(args []string) (Args, error) {
	if len(args) < 1 || len(args) > 2 {
		return Args{}, fmt.Errorf("%w: expected 1 or 2 arguments, got %d", ErrUsage, len(args))
	}

	k, err := parseInt(args[0], ErrInvalidClusters)
	if err != nil {
		return Args{}, fmt.Errorf("K: %w", err)
	}
	if k < MinClusters {
		return Args{}, fmt.Errorf("%w: k=%d", ErrInvalidClusters, k)
	}

	parsed := Args{K: k, MaxIterations: kmeans.DefaultMaxIterations}
	if len(args) == 2 {
		iter, err := parseInt(args[1], ErrInvalidIterations)
		if err != nil {
			return Args{}, fmt.Errorf("MAX_ITER: %w", err)
		}
		if iter < MinIterations || iter > MaxIterations {
			return Args{}, fmt.Errorf("%w: max_iter=%d", ErrInvalidIterations, iter)
		}
		parsed.MaxIterations = iter
	}

	return parsed, nil
}

// parseInt accepts a base-10 integer with no surrounding characters. A
// well-formed integer that overflows int is reported as rangeErr, anything
// else as ErrUsage.
func parseInt(s string, rangeErr error) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q out of range", rangeErr, s)
		}
		return 0, fmt.Errorf("%w: %q is not an integer", ErrUsage, s)
	}
	return v, nil
}
