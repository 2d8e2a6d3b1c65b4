package metrics

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/statmetrics/pkg/errors"
	"github.com/YuminosukeSato/statmetrics/pkg/stats"
	"gonum.org/v1/gonum/mat"
)

// gonumのベクトルを受け取り、(値, error) を返すアダプタ群。
// エラー時の値は常にNaNで、スライス版の関数と同じ番兵の方針を保つ。

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	yt, yp, err := vectors("MSE", yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}
	return MeanSquaredError(yt, yp), nil
}

// MSEMatrix は行列形式の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	// 入力検証
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return math.NaN(), errors.NewValueError("MSEMatrix", "empty matrix")
	}

	if rTrue != rPred {
		return math.NaN(), errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return math.NaN(), errors.NewDimensionError("MSEMatrix", cTrue, cPred, 1)
	}

	if cTrue != 1 {
		return math.NaN(), errors.NewValueError("MSEMatrix", "must be a column vector (n×1 matrix)")
	}

	return MeanSquaredError(mat.Col(nil, 0, yTrue), mat.Col(nil, 0, yPred)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	yt, yp, err := vectors("MAE", yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}
	return MeanAbsoluteError(yt, yp), nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する。
// yTrueにゼロが含まれる場合は、除外した件数をUndefinedMetricWarningで通知する。
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	yt, yp, err := vectors("MAPE", yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}

	result := MeanAbsolutePercentageError(yt, yp)
	if _, skipped := percentageErrorSum(yt, yp); skipped > 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("MAPE",
			fmt.Sprintf("%d of %d yTrue values being zero", skipped, len(yt)), result))
	}
	return result, nil
}

// RMSLE は平方根平均二乗対数誤差を計算する。
// 対数の定義域外（-1以下）の値で結果が有限にならない場合はNaNとNumericalInstabilityErrorを返す。
// 元の値（NaNまたは+Inf）はエラーのValuesに入る。
func RMSLE(yTrue, yPred *mat.VecDense) (float64, error) {
	yt, yp, err := vectors("RMSLE", yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}

	result := RootMeanSquaredLogError(yt, yp)
	if err := errors.CheckScalar("RMSLE", result); err != nil {
		return math.NaN(), err
	}
	return result, nil
}

// R2Score は決定係数（R²）を計算する。
// yTrueに分散がない場合は1.0を返し、UndefinedMetricWarningを発生させる。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	yt, yp, err := vectors("R2Score", yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}

	result := RSquared(yt, yp)
	warnIfNoVariance("R2Score", yt, result)
	return result, nil
}

// AdjustedR2Score は自由度調整済み決定係数を計算する
func AdjustedR2Score(yTrue, yPred *mat.VecDense, numFeatures int) (float64, error) {
	if numFeatures < 0 {
		return math.NaN(), errors.NewValidationError("num_features", "must be non-negative", numFeatures)
	}

	yt, yp, err := vectors("AdjustedR2Score", yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}

	n := len(yt)
	if numFeatures >= n-1 {
		return math.NaN(), errors.NewValueError("AdjustedR2Score",
			fmt.Sprintf("n_samples=%d must exceed num_features+1 (num_features=%d)", n, numFeatures))
	}

	result := AdjustedRSquared(yt, yp, numFeatures)
	warnIfNoVariance("AdjustedR2Score", yt, result)
	return result, nil
}

// ExplainedVarianceScore は説明分散スコアを計算する
func ExplainedVarianceScore(yTrue, yPred *mat.VecDense) (float64, error) {
	yt, yp, err := vectors("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return math.NaN(), err
	}

	result := ExplainedVariance(yt, yp)
	warnIfNoVariance("ExplainedVarianceScore", yt, result)
	return result, nil
}

// vectors は入力を検証し、スライスへコピーして返す
func vectors(op string, yTrue, yPred *mat.VecDense) ([]float64, []float64, error) {
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return nil, nil, errors.NewValueError(op, "empty vector")
	}

	if yPred.Len() != n {
		return nil, nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	return toSlice(yTrue), toSlice(yPred), nil
}

func toSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

func hasNoVariance(yTrue []float64) bool {
	return math.Abs(stats.SumOfSquares(yTrue, stats.Mean(yTrue))) < stats.Epsilon
}

func warnIfNoVariance(metric string, yTrue []float64, result float64) {
	if hasNoVariance(yTrue) {
		errors.Warn(errors.NewUndefinedMetricWarning(metric, "no variance in yTrue", result))
	}
}
