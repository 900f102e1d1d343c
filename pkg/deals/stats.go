package deals

import (
	"math"
	"slices"
)

// Quantile returns the q-th quantile (0..1) of sorted values using linear
// interpolation between closest ranks, the same definition as Postgres
// percentile_cont. sorted must be ascending and non-empty.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// Mean returns the arithmetic mean of values, or 0 for none.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// fencedMean drops values outside [Q1-1.5·IQR, Q3+1.5·IQR] and returns the
// mean of the rest. ok is false when the IQR is zero or fewer than minKeep
// values survive.
func fencedMean(values []float64, minKeep int) (float64, bool) {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	if !(iqr > 0) {
		return 0, false
	}

	lo, hi := q1-1.5*iqr, q3+1.5*iqr
	kept := make([]float64, 0, len(sorted))
	for _, v := range sorted {
		if v >= lo && v <= hi {
			kept = append(kept, v)
		}
	}
	if len(kept) < minKeep {
		return 0, false
	}
	return Mean(kept), true
}
