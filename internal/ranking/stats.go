package ranking

import (
	"math"
	"sort"
)

// madScale makes the MAD a consistent estimator of the standard deviation
// under normality
const madScale = 1.4826

// RobustZScore standardizes a series against its median and MAD instead of
// mean and standard deviation, so a handful of extreme flow prints cannot
// drag the center. Returns all zeros when the input is empty or the MAD is
// zero. Not used by the current ranking path; kept as a general statistic
// for score experiments.
func RobustZScore(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	med := median(x)

	dev := make([]float64, len(x))
	for i, v := range x {
		dev[i] = math.Abs(v - med)
	}
	mad := median(dev)

	if mad == 0 {
		return out
	}

	for i, v := range x {
		out[i] = (v - med) / (madScale * mad)
	}
	return out
}

// median returns the middle value of x, averaging the two central values
// for even lengths. Does not modify x.
func median(x []float64) float64 {
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
