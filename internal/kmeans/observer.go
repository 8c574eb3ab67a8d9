package kmeans

import "time"

// Observer receives progress events from an Engine. Implementations must be
// cheap; they are called inline from the clustering loop.
type Observer interface {
	// IterationCompleted is called after centroids are recomputed
	IterationCompleted(iteration, changes int)

	// EmptyCluster is called once per empty cluster per iteration
	EmptyCluster(iteration, cluster int)

	// RunCompleted is called once when a run returns without error
	RunCompleted(iterations int, converged bool, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) IterationCompleted(int, int)           {}
func (noopObserver) EmptyCluster(int, int)                 {}
func (noopObserver) RunCompleted(int, bool, time.Duration) {}
