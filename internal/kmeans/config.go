package kmeans

import (
	"fmt"
	"runtime"
)

const (
	// DefaultMaxIterations is the iteration budget when none is given
	DefaultMaxIterations = 400

	// DefaultParallelThreshold is the N*K*D work size above which the
	// assignment step is spread over workers
	DefaultParallelThreshold = 1 << 16
)

// Config holds clustering configuration
type Config struct {
	K             int     // Number of clusters
	MaxIterations int     // Upper bound on Lloyd iterations
	Tolerance     float64 // Stop once no centroid moves further than this; 0 disables

	// Assignment parallelism
	Workers           int // Goroutines used for the assignment step; <=1 runs inline
	ParallelThreshold int // Minimum N*K*D before Workers are used
}

// DefaultConfig returns default clustering configuration
func DefaultConfig() Config {
	return Config{
		K:                 2,
		MaxIterations:     DefaultMaxIterations,
		Tolerance:         0,
		Workers:           runtime.NumCPU(),
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// Validate checks that the configuration can drive a run
func (c Config) Validate() error {
	if c.K < 1 {
		return NewClusterError("validate", ErrInvalidK, fmt.Sprintf("k=%d", c.K))
	}
	if c.MaxIterations < 1 {
		return NewClusterError("validate", ErrInvalidIterations, fmt.Sprintf("max_iterations=%d", c.MaxIterations))
	}
	if c.Tolerance < 0 {
		return NewClusterError("validate", ErrInvalidConfig, fmt.Sprintf("tolerance=%g", c.Tolerance))
	}
	return nil
}

// withDefaults fills zero-valued tuning fields
func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ParallelThreshold <= 0 {
		c.ParallelThreshold = DefaultParallelThreshold
	}
	return c
}
