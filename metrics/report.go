package metrics

import (
	"log/slog"
	"math"

	"github.com/YuminosukeSato/statmetrics/pkg/errors"
	"github.com/YuminosukeSato/statmetrics/pkg/log"
	"github.com/rs/zerolog"
)

// Option はEvaluateの設定を変更する関数
type Option func(*evalConfig)

type evalConfig struct {
	numFeatures int
	warnings    bool
}

// WithNumFeatures はAdjusted R²の計算に使う特徴量数を設定する（デフォルト0）
func WithNumFeatures(p int) Option {
	return func(c *evalConfig) {
		c.numFeatures = p
	}
}

// WithWarnings は未定義の指標に対して警告を出すかを設定する（デフォルトtrue）
func WithWarnings(enabled bool) Option {
	return func(c *evalConfig) {
		c.warnings = enabled
	}
}

// Report は一組の実測値と予測値に対するすべての回帰指標をまとめたもの。
// 個別に定義できない指標はNaNのまま格納される。
type Report struct {
	Samples           int
	Features          int
	MAE               float64
	MSE               float64
	RMSE              float64
	MAPE              float64
	RMSLE             float64
	R2                float64
	AdjustedR2        float64
	ExplainedVariance float64
	// SkippedInMAPE は |yTrue| < Epsilon のためMAPEの加算から除外された要素数
	SkippedInMAPE int
}

// Evaluate はすべての回帰指標を計算してReportを返す。
// 入力が空または長さが異なる場合のみエラーを返す。
func Evaluate(yTrue, yPred []float64, opts ...Option) (*Report, error) {
	cfg := evalConfig{warnings: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(yTrue) == 0 {
		return nil, errors.NewValueError("Evaluate", "empty vector")
	}
	if len(yPred) != len(yTrue) {
		return nil, errors.NewDimensionError("Evaluate", len(yTrue), len(yPred), 0)
	}
	if cfg.numFeatures < 0 {
		return nil, errors.NewValidationError("num_features", "must be non-negative", cfg.numFeatures)
	}

	_, skipped := percentageErrorSum(yTrue, yPred)
	r := &Report{
		Samples:           len(yTrue),
		Features:          cfg.numFeatures,
		MAE:               MeanAbsoluteError(yTrue, yPred),
		MSE:               MeanSquaredError(yTrue, yPred),
		RMSE:              RootMeanSquaredError(yTrue, yPred),
		MAPE:              MeanAbsolutePercentageError(yTrue, yPred),
		RMSLE:             RootMeanSquaredLogError(yTrue, yPred),
		R2:                RSquared(yTrue, yPred),
		AdjustedR2:        AdjustedRSquared(yTrue, yPred, cfg.numFeatures),
		ExplainedVariance: ExplainedVariance(yTrue, yPred),
		SkippedInMAPE:     skipped,
	}

	if cfg.warnings {
		r.warn(yTrue)
	}
	return r, nil
}

func (r *Report) warn(yTrue []float64) {
	if math.IsNaN(r.AdjustedR2) {
		errors.Warn(errors.NewUndefinedMetricWarning("AdjustedR2",
			"non-positive degrees of freedom", r.AdjustedR2))
	}
	if math.IsNaN(r.RMSLE) || math.IsInf(r.RMSLE, 0) {
		errors.Warn(errors.NewUndefinedMetricWarning("RMSLE",
			"values outside the logarithm domain (<= -1)", r.RMSLE))
	}
	if r.SkippedInMAPE > 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("MAPE", "zero values in yTrue", r.MAPE))
	}
	if hasNoVariance(yTrue) {
		errors.Warn(errors.NewUndefinedMetricWarning("R2", "no variance in yTrue", r.R2))
	}
}

// MarshalZerologObject はzerologのイベントにレポートの各指標を追加する
func (r *Report) MarshalZerologObject(e *zerolog.Event) {
	e.Int("samples", r.Samples).
		Int("features", r.Features).
		Float64("mae", r.MAE).
		Float64("mse", r.MSE).
		Float64("rmse", r.RMSE).
		Float64("mape", r.MAPE).
		Float64("rmsle", r.RMSLE).
		Float64("r2", r.R2).
		Float64("adjusted_r2", r.AdjustedR2).
		Float64("explained_variance", r.ExplainedVariance).
		Int("mape_skipped", r.SkippedInMAPE)
}

// LogValue はslogで出力する際の属性グループを返す
func (r *Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int(log.SamplesKey, r.Samples),
		slog.Int(log.FeaturesKey, r.Features),
		slog.Float64(log.MAEKey, r.MAE),
		slog.Float64(log.MSEKey, r.MSE),
		slog.Float64(log.RMSEKey, r.RMSE),
		slog.Float64(log.MAPEKey, r.MAPE),
		slog.Float64(log.RMSLEKey, r.RMSLE),
		slog.Float64(log.R2ScoreKey, r.R2),
		slog.Float64(log.AdjustedR2Key, r.AdjustedR2),
		slog.Float64(log.ExplainedVarianceKey, r.ExplainedVariance),
		slog.Int(log.SkippedKey, r.SkippedInMAPE),
	)
}
