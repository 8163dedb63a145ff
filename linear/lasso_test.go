package linear_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/linear"
)

func TestLassoSmallAlphaNearOLS(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	y := mat.NewDense(5, 1, []float64{1, 3, 5, 7, 9})

	ls := linear.NewLasso(0.001)
	require.NoError(t, ls.Fit(X, y))

	assert.InDelta(t, 2.0, ls.Weights[0], 0.01)
	assert.InDelta(t, 1.0, ls.Intercept, 0.05)
}

func TestLassoLargeAlphaZerosCoefficients(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	y := mat.NewDense(5, 1, []float64{1, 3, 5, 7, 9})

	// Alpha above the max correlation kills the coefficient entirely and
	// the model degenerates to predicting the mean.
	ls := linear.NewLasso(1000)
	require.NoError(t, ls.Fit(X, y))

	assert.Zero(t, ls.Weights[0])
	assert.InDelta(t, 5.0, ls.Intercept, 1e-9)
}

func TestLassoSelectsInformativeFeature(t *testing.T) {
	// Second feature is pure noise with tiny magnitude; a moderate alpha
	// should zero it while keeping the informative one.
	X := mat.NewDense(6, 2, []float64{
		0, 0.01,
		1, -0.02,
		2, 0.01,
		3, -0.01,
		4, 0.02,
		5, -0.01,
	})
	y := mat.NewDense(6, 1, []float64{0, 2, 4, 6, 8, 10})

	ls := linear.NewLasso(0.1)
	require.NoError(t, ls.Fit(X, y))

	assert.Greater(t, ls.Weights[0], 1.0)
	assert.Zero(t, ls.Weights[1])
}

func TestLassoConstantColumn(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 7,
		2, 7,
		3, 7,
		4, 7,
	})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	ls := linear.NewLasso(0.001)
	require.NoError(t, ls.Fit(X, y))

	// Constant columns carry no signal after centering.
	assert.Zero(t, ls.Weights[1])
	assert.False(t, math.IsNaN(ls.Weights[0]))
}

func TestLassoSetParams(t *testing.T) {
	ls := linear.NewLasso(1)
	require.NoError(t, ls.SetParams(map[string]interface{}{
		"alpha":    0.01,
		"max_iter": 500,
		"tol":      1e-6,
	}))
	assert.Equal(t, 0.01, ls.Alpha)
	assert.Equal(t, 500, ls.MaxIter)

	assert.Error(t, ls.SetParams(map[string]interface{}{"max_iter": "many"}))
}
