// Package kmeans implements deterministic Lloyd's k-means clustering.
//
// Centroids are seeded from the first K input rows, every row is assigned to
// its nearest centroid by squared Euclidean distance (lowest index wins ties)
// and centroids are recomputed as the mean of their members. A run stops when
// an iteration after the first changes no assignment, or when the iteration
// budget is spent.
package kmeans

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/objones25/kmeans/internal/vector"
)

// Result is the outcome of a clustering run
type Result struct {
	Centroids   *vector.Matrix // K x D final centroids
	Assignments []int          // Cluster id per input row
	Counts      []int          // Members per cluster in the final iteration
	Iterations  int            // Iterations executed
	Converged   bool           // Stopped before exhausting the budget
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.With().Str("component", "kmeans").Logger()
	}
}

// WithObserver registers an Observer for progress events
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observer = observer
		}
	}
}

// Engine runs k-means with a fixed configuration. An Engine holds no
// per-run state and may be reused.
type Engine struct {
	config   Config
	logger   zerolog.Logger
	observer Observer
}

// New creates a new Engine
func New(cfg Config, opts ...Option) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config:   cfg,
		logger:   log.With().Str("component", "kmeans").Logger(),
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return e.config
}

// Cluster partitions the rows of m into Config.K clusters, seeding the
// centroids with a copy of the first K rows.
func (e *Engine) Cluster(ctx context.Context, m *vector.Matrix) (*Result, error) {
	if m == nil {
		return nil, NewClusterError("cluster", ErrEmptyMatrix, "")
	}
	if e.config.K > m.Rows() {
		return nil, NewClusterError("cluster", ErrInvalidK,
			fmt.Sprintf("k=%d exceeds %d vectors", e.config.K, m.Rows()))
	}

	centroids, err := m.Head(e.config.K)
	if err != nil {
		return nil, NewClusterError("cluster", ErrInvalidK, err.Error())
	}
	return e.run(ctx, m, centroids)
}

// ClusterFrom runs k-means starting from the given centroids instead of the
// first rows of m. K is taken from initial; Config.K is ignored. initial is
// copied and never modified.
func (e *Engine) ClusterFrom(ctx context.Context, m, initial *vector.Matrix) (*Result, error) {
	if m == nil || initial == nil {
		return nil, NewClusterError("cluster_from", ErrEmptyMatrix, "")
	}
	if initial.Dim() != m.Dim() {
		return nil, NewClusterError("cluster_from", ErrDimensionMismatch,
			fmt.Sprintf("centroids have %d dimensions, vectors have %d", initial.Dim(), m.Dim()))
	}
	return e.run(ctx, m, initial.Clone())
}

func (e *Engine) run(ctx context.Context, m, centroids *vector.Matrix) (*Result, error) {
	start := time.Now()
	n, k, dim := m.Rows(), centroids.Rows(), m.Dim()

	assignments := make([]int, n)
	previous := make([]int, n)
	counts := make([]int, k)
	backing := make([]float64, k*dim)
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = backing[c*dim : (c+1)*dim]
	}

	parallel := e.config.Workers > 1 && n*k*dim >= e.config.ParallelThreshold

	logger := e.logger.With().Int("vectors", n).Int("clusters", k).Int("dimension", dim).Logger()
	logger.Debug().Bool("parallel", parallel).Int("max_iterations", e.config.MaxIterations).Msg("Starting clustering")

	result := &Result{}
	for iter := 0; iter < e.config.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, NewClusterError("cluster", err, fmt.Sprintf("iteration %d", iter))
		}

		copy(previous, assignments)

		if parallel {
			if err := e.assignParallel(ctx, m, centroids, assignments); err != nil {
				return nil, NewClusterError("assign", err, fmt.Sprintf("iteration %d", iter))
			}
		} else {
			assignRange(m, centroids, assignments, 0, n)
		}

		changes := 0
		for i := range assignments {
			if assignments[i] != previous[i] {
				changes++
			}
		}

		// Update centroids
		clear(backing)
		clear(counts)
		for i, cluster := range assignments {
			floats.Add(sums[cluster], m.Row(i))
			counts[cluster]++
		}

		maxShift := 0.0
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				logger.Warn().Int("iteration", iter).Int("cluster", c).Msg("Empty cluster, centroid left unchanged")
				e.observer.EmptyCluster(iter, c)
				continue
			}

			mean := sums[c]
			for d := range mean {
				mean[d] /= float64(counts[c])
			}
			centroid := centroids.Row(c)
			if e.config.Tolerance > 0 {
				maxShift = math.Max(maxShift, floats.Distance(centroid, mean, 2))
			}
			copy(centroid, mean)
		}

		e.observer.IterationCompleted(iter, changes)
		result.Iterations = iter + 1

		if iter > 0 && changes == 0 {
			result.Converged = true
			break
		}
		if e.config.Tolerance > 0 && maxShift <= e.config.Tolerance {
			result.Converged = true
			break
		}
	}

	result.Centroids = centroids
	result.Assignments = assignments
	result.Counts = counts

	elapsed := time.Since(start)
	e.observer.RunCompleted(result.Iterations, result.Converged, elapsed)
	logger.Debug().
		Int("iterations", result.Iterations).
		Bool("converged", result.Converged).
		Dur("elapsed", elapsed).
		Msg("Clustering finished")

	return result, nil
}

// assignParallel splits the rows into contiguous chunks, one per worker.
// Rows are independent within an iteration, so the result is identical to
// the sequential pass.
func (e *Engine) assignParallel(ctx context.Context, m, centroids *vector.Matrix, assignments []int) error {
	n := m.Rows()
	workers := e.config.Workers
	chunkSize := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		lo, hi := start, min(start+chunkSize, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			assignRange(m, centroids, assignments, lo, hi)
			return nil
		})
	}
	return g.Wait()
}

func assignRange(m, centroids *vector.Matrix, assignments []int, lo, hi int) {
	for i := lo; i < hi; i++ {
		assignments[i] = Assign(m.Row(i), centroids)
	}
}

// Assign returns the index of the centroid nearest to row. On exact ties the
// lowest index wins.
func Assign(row []float64, centroids *vector.Matrix) int {
	minDist := math.MaxFloat64
	best := 0
	for c := 0; c < centroids.Rows(); c++ {
		dist := vector.SquaredEuclidean(row, centroids.Row(c))
		if dist < minDist {
			minDist = dist
			best = c
		}
	}
	return best
}

// Cluster runs k-means over m with k clusters and at most iterations rounds
// using the default configuration, returning the final centroids.
func Cluster(m *vector.Matrix, k, iterations int) (*vector.Matrix, error) {
	cfg := DefaultConfig()
	cfg.K = k
	cfg.MaxIterations = iterations

	engine, err := New(cfg)
	if err != nil {
		return nil, err
	}
	result, err := engine.Cluster(context.Background(), m)
	if err != nil {
		return nil, err
	}
	return result.Centroids, nil
}
