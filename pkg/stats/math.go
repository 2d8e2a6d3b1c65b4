// Package stats provides the numeric helpers shared by the regression metrics.
//
// Every function here is pure: inputs are read, never retained or mutated.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon is the machine epsilon of float64 (the gap between 1 and the next
// representable value). Magnitudes below it are treated as zero.
const Epsilon = 2.220446049250313e-16

// CheckVectors reports whether yTrue and yPred can be compared element-wise:
// both must have the same length and at least one element.
func CheckVectors(yTrue, yPred []float64) bool {
	return len(yTrue) > 0 && len(yTrue) == len(yPred)
}

// Mean returns the arithmetic mean of values, or NaN if values is empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return floats.Sum(values) / float64(len(values))
}

// SumOfSquares returns Σ(v - mean)² over values.
// The mean is supplied by the caller and is not recomputed.
func SumOfSquares(values []float64, mean float64) float64 {
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return ss
}
