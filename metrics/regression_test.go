package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/metrics"
)

func vec(values ...float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}

func TestMSE(t *testing.T) {
	yTrue := vec(1, 2, 3)
	yPred := vec(1, 2, 5)

	mse, err := metrics.MSE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, mse, 1e-12)
}

func TestRMSEPerfectFit(t *testing.T) {
	yTrue := vec(1, 2, 3, 4)

	rmse, err := metrics.RMSE(yTrue, yTrue)
	require.NoError(t, err)
	assert.Zero(t, rmse)
}

func TestMAE(t *testing.T) {
	yTrue := vec(1, 2, 3)
	yPred := vec(2, 2, 1)

	mae, err := metrics.MAE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mae, 1e-12)
}

func TestR2ScorePerfectAndMean(t *testing.T) {
	yTrue := vec(1, 2, 3, 4)

	r2, err := metrics.R2Score(yTrue, yTrue)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r2, 1e-12)

	// Predicting the mean scores exactly zero.
	mean := vec(2.5, 2.5, 2.5, 2.5)
	r2, err = metrics.R2Score(yTrue, mean)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, r2, 1e-12)
}

func TestR2ScoreNoVariance(t *testing.T) {
	yTrue := vec(3, 3, 3)
	_, err := metrics.R2Score(yTrue, yTrue)
	assert.Error(t, err)
}

func TestDimensionMismatch(t *testing.T) {
	_, err := metrics.MSE(vec(1, 2), vec(1, 2, 3))
	assert.Error(t, err)

	_, err = metrics.MAE(vec(1, 2), vec(1))
	assert.Error(t, err)
}

func TestEmptyInput(t *testing.T) {
	empty := &mat.VecDense{}
	_, err := metrics.MSE(empty, empty)
	assert.Error(t, err)
}

func TestEvaluateRegression(t *testing.T) {
	yTrue := vec(1, 2, 3, 4)
	yPred := vec(1.1, 1.9, 3.2, 3.8)

	scores, err := metrics.EvaluateRegression(yTrue, yPred)
	require.NoError(t, err)
	assert.Contains(t, scores, "r2")
	assert.Contains(t, scores, "rmse")
	assert.Contains(t, scores, "mae")
	assert.Greater(t, scores["r2"], 0.9)
}

func TestFromColumn(t *testing.T) {
	m := mat.NewDense(3, 1, []float64{1, 2, 3})
	v, err := metrics.FromColumn(m)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 2.0, v.AtVec(1))

	_, err = metrics.FromColumn(mat.NewDense(3, 2, nil))
	assert.Error(t, err)
}
