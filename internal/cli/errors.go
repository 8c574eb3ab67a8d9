package cli

import (
	"errors"
)

// User-facing messages. Each failure prints exactly one of these on stdout.
const (
	MsgGeneric           = "An Error Has Occurred"
	MsgInvalidClusters   = "Incorrect number of clusters!"
	MsgInvalidIterations = "Incorrect maximum iteration!"
)

var (
	// ErrUsage is returned for a wrong argument count or a non-integer argument
	ErrUsage = errors.New("usage error")

	// ErrInvalidClusters is returned when K is out of range
	ErrInvalidClusters = errors.New("incorrect number of clusters")

	// ErrInvalidIterations is returned when the iteration budget is out of range
	ErrInvalidIterations = errors.New("incorrect maximum iteration")

	// ErrInput is returned when standard input cannot be loaded
	ErrInput = errors.New("input error")
)

// Message maps an error to the line printed for the user.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidClusters):
		return MsgInvalidClusters
	case errors.Is(err, ErrInvalidIterations):
		return MsgInvalidIterations
	default:
		return MsgGeneric
	}
}
