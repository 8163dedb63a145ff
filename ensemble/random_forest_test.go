package ensemble_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/ensemble"
)

func forestData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(12, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	y := mat.NewDense(12, 1, []float64{2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24})
	return X, y
}

func TestRandomForestFitPredict(t *testing.T) {
	X, y := forestData()

	rf := ensemble.NewRandomForestRegressor(50, 42)
	require.NoError(t, rf.Fit(X, y))
	require.Len(t, rf.Trees, 50)

	pred, err := rf.Predict(mat.NewDense(1, 1, []float64{6.5}))
	require.NoError(t, err)
	// The forest averages leaf means, so interior predictions land near
	// the true value even if not exactly on it.
	assert.InDelta(t, 13.0, pred.At(0, 0), 3.0)
}

func TestRandomForestDeterministicAcrossRuns(t *testing.T) {
	X, y := forestData()
	query := mat.NewDense(3, 1, []float64{2.5, 6.5, 10.5})

	a := ensemble.NewRandomForestRegressor(30, 42)
	require.NoError(t, a.Fit(X, y))
	b := ensemble.NewRandomForestRegressor(30, 42)
	require.NoError(t, b.Fit(X, y))

	predA, err := a.Predict(query)
	require.NoError(t, err)
	predB, err := b.Predict(query)
	require.NoError(t, err)

	// Same seed, same forest, regardless of goroutine scheduling.
	for i := 0; i < 3; i++ {
		assert.Equal(t, predA.At(i, 0), predB.At(i, 0))
	}
}

func TestRandomForestDifferentSeedsDiffer(t *testing.T) {
	X, y := forestData()

	a := ensemble.NewRandomForestRegressor(10, 1)
	require.NoError(t, a.Fit(X, y))
	b := ensemble.NewRandomForestRegressor(10, 9001)
	require.NoError(t, b.Fit(X, y))

	query := mat.NewDense(4, 1, []float64{1.5, 4.5, 7.5, 10.5})
	predA, err := a.Predict(query)
	require.NoError(t, err)
	predB, err := b.Predict(query)
	require.NoError(t, err)

	same := true
	for i := 0; i < 4; i++ {
		if predA.At(i, 0) != predB.At(i, 0) {
			same = false
		}
	}
	assert.False(t, same, "different seeds should bootstrap differently")
}

func TestRandomForestInvalidEstimators(t *testing.T) {
	X, y := forestData()
	rf := ensemble.NewRandomForestRegressor(0, 42)
	assert.Error(t, rf.Fit(X, y))
}

func TestRandomForestSetParams(t *testing.T) {
	rf := ensemble.NewRandomForestRegressor(10, 42)
	require.NoError(t, rf.SetParams(map[string]interface{}{
		"n_estimators": 200,
		"max_depth":    8,
	}))
	assert.Equal(t, 200, rf.NEstimators)
	assert.Equal(t, 8, rf.MaxDepth)

	assert.Error(t, rf.SetParams(map[string]interface{}{"n_estimators": 1.5}))
}
