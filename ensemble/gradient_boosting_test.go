package ensemble_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/ensemble"
	"github.com/admetric/campaignml/metrics"
)

func TestGradientBoostingReducesTrainingError(t *testing.T) {
	X := mat.NewDense(10, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	y := mat.NewDense(10, 1, []float64{1, 4, 9, 16, 25, 36, 49, 64, 81, 100})
	yVec := mat.NewVecDense(10, []float64{1, 4, 9, 16, 25, 36, 49, 64, 81, 100})

	few := ensemble.NewGradientBoostingRegressor()
	few.NEstimators = 5
	require.NoError(t, few.Fit(X, y))

	many := ensemble.NewGradientBoostingRegressor()
	many.NEstimators = 100
	require.NoError(t, many.Fit(X, y))

	rmseOf := func(gb *ensemble.GradientBoostingRegressor) float64 {
		pred, err := gb.Predict(X)
		require.NoError(t, err)
		predVec, err := metrics.FromColumn(pred)
		require.NoError(t, err)
		rmse, err := metrics.RMSE(yVec, predVec)
		require.NoError(t, err)
		return rmse
	}

	// More boosting rounds fit the training data tighter.
	assert.Less(t, rmseOf(many), rmseOf(few))
}

func TestGradientBoostingBaseScore(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	gb := ensemble.NewGradientBoostingRegressor()
	gb.NEstimators = 10
	require.NoError(t, gb.Fit(X, y))

	assert.Equal(t, 5.0, gb.BaseScore)
	assert.Len(t, gb.Trees, 10)
}

func TestGradientBoostingValidation(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})

	gb := ensemble.NewGradientBoostingRegressor()
	gb.NEstimators = 0
	assert.Error(t, gb.Fit(X, y))

	gb = ensemble.NewGradientBoostingRegressor()
	gb.LearningRate = -0.1
	assert.Error(t, gb.Fit(X, y))
}

func TestGradientBoostingSetParams(t *testing.T) {
	gb := ensemble.NewGradientBoostingRegressor()
	require.NoError(t, gb.SetParams(map[string]interface{}{
		"max_depth":     5,
		"learning_rate": 0.05,
	}))
	assert.Equal(t, 5, gb.MaxDepth)
	assert.Equal(t, 0.05, gb.LearningRate)

	assert.Error(t, gb.SetParams(map[string]interface{}{"subsample": 0.8}))
}
