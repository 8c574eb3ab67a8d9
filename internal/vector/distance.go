package vector

// SquaredEuclidean returns the squared Euclidean distance between a and b.
// Both slices must have the same length.
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
