package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when K is below 1 or above the number of vectors
	ErrInvalidK = errors.New("invalid number of clusters")

	// ErrInvalidIterations is returned when the iteration budget is not positive
	ErrInvalidIterations = errors.New("invalid maximum iterations")

	// ErrInvalidConfig is returned for any other out-of-range setting
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyMatrix is returned when there is nothing to cluster
	ErrEmptyMatrix = errors.New("empty input matrix")

	// ErrDimensionMismatch is returned when initial centroids don't match the input shape
	ErrDimensionMismatch = errors.New("centroid dimension mismatch")
)

// ClusterError represents a clustering error with context
type ClusterError struct {
	Op      string // Operation that failed
	Err     error  // Underlying error
	Context string // Additional context
}

func (e *ClusterError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Context)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ClusterError) Unwrap() error {
	return e.Err
}

// NewClusterError creates a new ClusterError
func NewClusterError(op string, err error, context string) error {
	return &ClusterError{
		Op:      op,
		Err:     err,
		Context: context,
	}
}

// IsInvalidK checks if an error is an "invalid number of clusters" error
func IsInvalidK(err error) bool {
	return errors.Is(err, ErrInvalidK)
}

// IsInvalidIterations checks if an error is an "invalid maximum iterations" error
func IsInvalidIterations(err error) bool {
	return errors.Is(err, ErrInvalidIterations)
}

// IsDimensionMismatch checks if an error is a "centroid dimension mismatch" error
func IsDimensionMismatch(err error) bool {
	return errors.Is(err, ErrDimensionMismatch)
}
