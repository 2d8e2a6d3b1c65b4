// Package statmetrics provides closed-form metrics for evaluating regression
// model predictions in Go.
//
// Every metric is a pure function over two equal-length float64 slices. Invalid
// input (empty slices or mismatched lengths) is reported with a NaN result
// instead of an error, so callers check the result with math.IsNaN.
//
// # Installation
//
//	go get github.com/YuminosukeSato/statmetrics
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "math"
//
//	    "github.com/YuminosukeSato/statmetrics/metrics"
//	)
//
//	func main() {
//	    yTrue := []float64{3.0, -0.5, 2.0, 7.0}
//	    yPred := []float64{2.5, 0.0, 2.0, 8.0}
//
//	    fmt.Println(metrics.MeanAbsoluteError(yTrue, yPred))    // 0.5
//	    fmt.Println(metrics.MeanSquaredError(yTrue, yPred))     // 0.375
//	    fmt.Println(metrics.RootMeanSquaredError(yTrue, yPred)) // 0.6124
//
//	    if r2 := metrics.AdjustedRSquared(yTrue, yPred, 3); math.IsNaN(r2) {
//	        fmt.Println("not enough samples for 3 features")
//	    }
//	}
//
// # Packages
//
//   - metrics: MAE, MSE, RMSE, MAPE, RMSLE, R², Adjusted R², explained variance;
//     gonum vector adapters returning errors; Evaluate for a full Report
//   - pkg/stats: shared helpers (CheckVectors, Mean, SumOfSquares)
//   - diagnostics: residuals and residual plots (gonum/plot)
//   - pkg/errors: structured errors and warnings built on cockroachdb/errors
//   - pkg/log: slog setup with stack-trace extraction
//
// # Numeric edge cases
//
//   - R² (and explained variance) return exactly 1.0 when yTrue has no variance.
//   - MAPE skips elements with |yTrue| < machine epsilon but still divides by
//     the full sample count.
//   - RMSLE does not guard values <= -1; the logarithm's NaN or -Inf propagates.
//     The vector adapter RMSLE reports this as a NumericalInstabilityError.
//
// # License
//
// statmetrics is released under the MIT License.
package statmetrics
