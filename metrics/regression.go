package metrics

import (
	"math"

	"github.com/YuminosukeSato/statmetrics/pkg/stats"
	"gonum.org/v1/gonum/stat"
)

// このファイルの関数はすべて純粋関数で、入力の検証に失敗するとNaNを返す。
// 呼び出し側はmath.IsNaNで結果を確認すること。

// MeanAbsoluteError は平均絶対誤差（MAE）を計算する
//
//	yTrue := []float64{3.0, -0.5, 2.0, 7.0}
//	yPred := []float64{2.5, 0.0, 2.0, 8.0}
//	metrics.MeanAbsoluteError(yTrue, yPred) // 0.5
func MeanAbsoluteError(yTrue, yPred []float64) float64 {
	if !stats.CheckVectors(yTrue, yPred) {
		return math.NaN()
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i, y := range yTrue {
		sum += math.Abs(y - yPred[i])
	}
	return sum / float64(len(yTrue))
}

// MeanSquaredError は平均二乗誤差（MSE）を計算する
func MeanSquaredError(yTrue, yPred []float64) float64 {
	if !stats.CheckVectors(yTrue, yPred) {
		return math.NaN()
	}
	return sumSquaredResiduals(yTrue, yPred) / float64(len(yTrue))
}

// RootMeanSquaredError は平方根平均二乗誤差（RMSE）を計算する。
// 入力検証はMeanSquaredErrorに委ね、そのNaNをそのまま伝播する。
func RootMeanSquaredError(yTrue, yPred []float64) float64 {
	return math.Sqrt(MeanSquaredError(yTrue, yPred))
}

// MeanAbsolutePercentageError は平均絶対パーセンテージ誤差（MAPE、単位は%）を計算する。
//
// |yTrue| < Epsilon の要素は加算から除外されるが、平均の分母は全要素数nのままである。
// そのためゼロを含む入力では値が小さめに出る。
func MeanAbsolutePercentageError(yTrue, yPred []float64) float64 {
	if !stats.CheckVectors(yTrue, yPred) {
		return math.NaN()
	}

	sum, _ := percentageErrorSum(yTrue, yPred)
	return sum / float64(len(yTrue)) * 100
}

// RootMeanSquaredLogError は平方根平均二乗対数誤差（RMSLE）を計算する。
// -1以下の値は対数の定義域外で、結果はmath.Logが返すNaNまたは-Infに従う。
func RootMeanSquaredLogError(yTrue, yPred []float64) float64 {
	if !stats.CheckVectors(yTrue, yPred) {
		return math.NaN()
	}

	var sum float64
	for i, y := range yTrue {
		diff := math.Log(y+1) - math.Log(yPred[i]+1)
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(yTrue)))
}

// RSquared は決定係数（R²）を計算する。
// yTrueの全変動が0（すべて同じ値）の場合は、yPredに関わらず1.0を返す。
func RSquared(yTrue, yPred []float64) float64 {
	if !stats.CheckVectors(yTrue, yPred) {
		return math.NaN()
	}

	yMean := stats.Mean(yTrue)
	rss := sumSquaredResiduals(yTrue, yPred)
	tss := stats.SumOfSquares(yTrue, yMean)

	if math.Abs(tss) < stats.Epsilon {
		return 1.0
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss
}

// AdjustedRSquared は自由度調整済み決定係数を計算する。
//
//	1 - (1 - R²) * (n - 1) / (n - p - 1)
//
// numFeatures >= n-1 の場合は自由度が正にならないためNaNを返す。
// この判定はRSquaredの入力検証より先に行われる。
func AdjustedRSquared(yTrue, yPred []float64, numFeatures int) float64 {
	n := len(yTrue)
	if numFeatures >= n-1 {
		return math.NaN()
	}

	r2 := RSquared(yTrue, yPred)
	return 1 - (1-r2)*float64(n-1)/float64(n-numFeatures-1)
}

// ExplainedVariance は説明分散スコアを計算する。
//
//	1 - Var(yTrue - yPred) / Var(yTrue)
//
// 分散は母分散。yTrueの全変動が0の場合はRSquaredと同じく1.0を返す。
func ExplainedVariance(yTrue, yPred []float64) float64 {
	if !stats.CheckVectors(yTrue, yPred) {
		return math.NaN()
	}

	diff := make([]float64, len(yTrue))
	for i, y := range yTrue {
		diff[i] = y - yPred[i]
	}

	if hasNoVariance(yTrue) {
		return 1.0
	}
	return 1 - populationVariance(diff)/populationVariance(yTrue)
}

// sumSquaredResiduals は Σ(yTrue - yPred)² を返す。長さは検証済みであること。
func sumSquaredResiduals(yTrue, yPred []float64) float64 {
	var sum float64
	for i, y := range yTrue {
		diff := y - yPred[i]
		sum += diff * diff
	}
	return sum
}

// percentageErrorSum は Σ|(yTrue - yPred)/yTrue| と、ゼロとして除外した要素数を返す
func percentageErrorSum(yTrue, yPred []float64) (sum float64, skipped int) {
	for i, y := range yTrue {
		if math.Abs(y) < stats.Epsilon {
			skipped++
			continue
		}
		sum += math.Abs((y - yPred[i]) / y)
	}
	return sum, skipped
}

func populationVariance(x []float64) float64 {
	_, variance := stat.PopMeanVariance(x, nil)
	return variance
}
