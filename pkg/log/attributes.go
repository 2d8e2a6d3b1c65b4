// Package log defines standard attribute keys for metric evaluation logging.
//
// The keys follow a hierarchical naming convention (e.g. "metrics.mae",
// "data.samples") so that evaluation logs can be filtered and aggregated
// by the same names across services.

package log

// Data Shape
// These attributes describe the inputs an evaluation was computed over.
const (
	// SamplesKey indicates the number of paired observations.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of model features, used by Adjusted R².
	FeaturesKey = "data.features"

	// SkippedKey indicates how many observations a metric excluded.
	SkippedKey = "data.skipped"
)

// Regression Metrics
const (
	// MAEKey records the mean absolute error, in target units.
	MAEKey = "metrics.mae"

	// MSEKey records the mean squared error, in squared target units.
	MSEKey = "metrics.mse"

	// RMSEKey records the root mean squared error, in target units.
	RMSEKey = "metrics.rmse"

	// MAPEKey records the mean absolute percentage error, as a percentage.
	MAPEKey = "metrics.mape"

	// RMSLEKey records the root mean squared logarithmic error.
	RMSLEKey = "metrics.rmsle"

	// R2ScoreKey records R² coefficient of determination for regression.
	// Range (-∞, 1.0], with 1.0 being perfect prediction.
	R2ScoreKey = "metrics.r2_score"

	// AdjustedR2Key records R² adjusted for the number of features.
	AdjustedR2Key = "metrics.adjusted_r2"

	// ExplainedVarianceKey records the explained variance score.
	ExplainedVarianceKey = "metrics.explained_variance"
)

// Error Context
const (
	// MetricKey names the metric an error or warning refers to.
	MetricKey = "error.metric"
)
