package metrics

import (
	"math"
	"sync"
	"testing"

	"github.com/YuminosukeSato/statmetrics/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// captureWarnings は警告ハンドラを差し替え、テスト終了時に元に戻す
func captureWarnings(t *testing.T) func() []error {
	t.Helper()
	var (
		mu       sync.Mutex
		received []error
	)
	errors.SetWarningHandler(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, w)
	})
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })

	return func() []error {
		mu.Lock()
		defer mu.Unlock()
		return append([]error(nil), received...)
	}
}

func TestVectorAdapters(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{3.0, -0.5, 2.0, 7.0})
	yPred := mat.NewVecDense(4, []float64{2.5, 0.0, 2.0, 8.0})

	tests := []struct {
		name      string
		fn        func(a, b *mat.VecDense) (float64, error)
		want      float64
		tolerance float64
	}{
		{name: "MAE", fn: MAE, want: 0.5, tolerance: 1e-12},
		{name: "MSE", fn: MSE, want: 0.375, tolerance: 1e-12},
		{name: "RMSE", fn: RMSE, want: 0.6123724356957945, tolerance: 1e-7},
		{name: "R2Score", fn: R2Score, want: 0.9486081370449679, tolerance: 1e-12},
		{name: "ExplainedVarianceScore", fn: ExplainedVarianceScore, want: 0.9571734475374732, tolerance: 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(yTrue, yPred)
			if err != nil {
				t.Fatalf("%s() error = %v", tt.name, err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("%s() = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestVectorAdapters_InvalidInput(t *testing.T) {
	adapters := map[string]func(a, b *mat.VecDense) (float64, error){
		"MAE":                    MAE,
		"MSE":                    MSE,
		"RMSE":                   RMSE,
		"MAPE":                   MAPE,
		"RMSLE":                  RMSLE,
		"R2Score":                R2Score,
		"ExplainedVarianceScore": ExplainedVarianceScore,
	}

	for name, fn := range adapters {
		t.Run(name+"/dimension mismatch", func(t *testing.T) {
			got, err := fn(
				mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
				mat.NewVecDense(2, []float64{1.0, 2.0}),
			)
			require.Error(t, err)
			assert.True(t, math.IsNaN(got), "value should be NaN on error")

			var dimErr *errors.DimensionError
			assert.True(t, errors.As(err, &dimErr))
		})

		t.Run(name+"/empty vectors", func(t *testing.T) {
			got, err := fn(&mat.VecDense{}, &mat.VecDense{})
			require.Error(t, err)
			assert.True(t, math.IsNaN(got))

			var valErr *errors.ValueError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestMSEMatrix(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   mat.Matrix
		yPred   mat.Matrix
		want    float64
		wantErr bool
	}{
		{
			name:  "matrix input - single column",
			yTrue: mat.NewDense(4, 1, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred: mat.NewDense(4, 1, []float64{1.5, 2.5, 2.5, 3.5}),
			want:  0.25,
		},
		{
			name:  "vector satisfies matrix",
			yTrue: mat.NewVecDense(2, []float64{1.0, 3.0}),
			yPred: mat.NewVecDense(2, []float64{2.0, 3.0}),
			want:  0.5,
		},
		{
			name:    "matrix input - multiple columns should error",
			yTrue:   mat.NewDense(2, 2, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:   mat.NewDense(2, 2, []float64{1.0, 2.0, 3.0, 4.0}),
			wantErr: true,
		},
		{
			name:    "row mismatch",
			yTrue:   mat.NewDense(3, 1, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewDense(2, 1, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "column mismatch",
			yTrue:   mat.NewDense(2, 1, []float64{1.0, 2.0}),
			yPred:   mat.NewDense(2, 2, []float64{1.0, 2.0, 3.0, 4.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSEMatrix(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MSEMatrix() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if !math.IsNaN(got) {
					t.Errorf("MSEMatrix() = %v, want NaN on error", got)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MSEMatrix() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMAPE_WarnsOnSkippedZeros(t *testing.T) {
	warnings := captureWarnings(t)

	got, err := MAPE(
		mat.NewVecDense(2, []float64{0.0, 2.0}),
		mat.NewVecDense(2, []float64{1.0, 1.0}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got, 1e-12)

	ws := warnings()
	require.Len(t, ws, 1)
	var undefined *errors.UndefinedMetricWarning
	require.True(t, errors.As(ws[0], &undefined))
	assert.Equal(t, "MAPE", undefined.Metric)
	assert.Contains(t, undefined.Condition, "1 of 2")
}

func TestMAPE_NoWarningWithoutZeros(t *testing.T) {
	warnings := captureWarnings(t)

	got, err := MAPE(
		mat.NewVecDense(3, []float64{100.0, 200.0, 300.0}),
		mat.NewVecDense(3, []float64{110.0, 190.0, 310.0}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 6.111111111111111, got, 1e-9)
	assert.Empty(t, warnings())
}

func TestRMSLE_DomainViolation(t *testing.T) {
	got, err := RMSLE(
		mat.NewVecDense(2, []float64{-2.0, 1.0}),
		mat.NewVecDense(2, []float64{1.0, 1.0}),
	)
	require.Error(t, err)
	assert.True(t, math.IsNaN(got))

	var numErr *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, "RMSLE", numErr.Operation)
}

func TestRMSLE_MinusOneReturnsNaN(t *testing.T) {
	// log(0) = -Inf で生の結果は +Inf になるが、返り値はNaNでエラーに元の値が入る
	got, err := RMSLE(
		mat.NewVecDense(1, []float64{-1.0}),
		mat.NewVecDense(1, []float64{1.0}),
	)
	require.Error(t, err)
	assert.True(t, math.IsNaN(got))

	var numErr *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &numErr))
	require.Len(t, numErr.Values, 1)
	assert.True(t, math.IsInf(numErr.Values[0], 1))
}

func TestRMSLE_Valid(t *testing.T) {
	got, err := RMSLE(
		mat.NewVecDense(4, []float64{3.0, 5.0, 2.0, 7.0}),
		mat.NewVecDense(4, []float64{2.5, 5.0, 2.0, 8.0}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.08902735015807975, got, 1e-9)
}

func TestR2Score_NoVarianceWarns(t *testing.T) {
	warnings := captureWarnings(t)

	got, err := R2Score(
		mat.NewVecDense(5, []float64{3.0, 3.0, 3.0, 3.0, 3.0}),
		mat.NewVecDense(5, []float64{2.0, 3.0, 4.0, 3.0, 3.0}),
	)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	ws := warnings()
	require.Len(t, ws, 1)
	assert.Contains(t, ws[0].Error(), "no variance in yTrue")
}

func TestAdjustedR2Score(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{3.0, -0.5, 2.0, 7.0})
	yPred := mat.NewVecDense(4, []float64{2.5, 0.0, 2.0, 8.0})

	t.Run("valid", func(t *testing.T) {
		got, err := AdjustedR2Score(yTrue, yPred, 1)
		require.NoError(t, err)
		assert.InDelta(t, 0.9229122055674519, got, 1e-12)
	})

	t.Run("non-positive degrees of freedom", func(t *testing.T) {
		got, err := AdjustedR2Score(yTrue, yPred, 3)
		require.Error(t, err)
		assert.True(t, math.IsNaN(got))

		var valErr *errors.ValueError
		assert.True(t, errors.As(err, &valErr))
	})

	t.Run("max int features", func(t *testing.T) {
		got, err := AdjustedR2Score(yTrue, yPred, math.MaxInt)
		require.Error(t, err)
		assert.True(t, math.IsNaN(got))

		var valErr *errors.ValueError
		assert.True(t, errors.As(err, &valErr))
	})

	t.Run("negative features", func(t *testing.T) {
		got, err := AdjustedR2Score(yTrue, yPred, -1)
		require.Error(t, err)
		assert.True(t, math.IsNaN(got))

		var validationErr *errors.ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := AdjustedR2Score(yTrue, mat.NewVecDense(2, []float64{1, 2}), 0)
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
	})
}

func TestVectorAdapters_ViewOfLargerVector(t *testing.T) {
	// SliceVecで作ったビューでも正しく値を読めること
	base := mat.NewVecDense(6, []float64{9.0, 3.0, -0.5, 2.0, 7.0, 9.0})
	view := base.SliceVec(1, 5).(*mat.VecDense)
	yPred := mat.NewVecDense(4, []float64{2.5, 0.0, 2.0, 8.0})

	got, err := MAE(view, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)

	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
