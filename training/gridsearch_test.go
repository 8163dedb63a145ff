package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/pkg/errors"
)

func TestExpandGridDeterministicOrder(t *testing.T) {
	grid := map[string][]interface{}{
		"b": {"x", "y", "z"},
		"a": {1, 2},
	}

	combos := expandGrid(grid)
	require.Len(t, combos, 6)

	// Names iterate sorted, values in grid order, so the expansion is
	// stable regardless of map iteration.
	assert.Equal(t, map[string]interface{}{"a": 1, "b": "x"}, combos[0])
	assert.Equal(t, map[string]interface{}{"a": 1, "b": "y"}, combos[1])
	assert.Equal(t, map[string]interface{}{"a": 2, "b": "x"}, combos[3])
	assert.Equal(t, map[string]interface{}{"a": 2, "b": "z"}, combos[5])
}

func TestExpandGridEmpty(t *testing.T) {
	combos := expandGrid(nil)
	require.Len(t, combos, 1)
	assert.Empty(t, combos[0])
}

func TestKFoldIndicesCoverAllRows(t *testing.T) {
	folds := kfoldIndices(8, 5, 42)
	require.Len(t, folds, 5)

	seen := map[int]int{}
	for _, fold := range folds {
		assert.NotEmpty(t, fold)
		for _, i := range fold {
			seen[i]++
		}
	}
	require.Len(t, seen, 8)
	for _, count := range seen {
		assert.Equal(t, 1, count)
	}
}

func TestKFoldIndicesDeterministic(t *testing.T) {
	a := kfoldIndices(20, 5, 42)
	b := kfoldIndices(20, 5, 42)
	assert.Equal(t, a, b)
}

func TestGridSearchPicksBestConfiguration(t *testing.T) {
	// y = 1 + 2x exactly; fitting the intercept is strictly better.
	n := 20
	X := mat.NewDense(n, 1, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		y.SetVec(i, 1+2*float64(i))
	}

	spec := ModelSpecs()[0] // linear, grid over fit_intercept
	require.Equal(t, "linear", spec.Name)

	result, err := GridSearch(spec, X, y, RandomState)
	require.NoError(t, err)

	assert.Equal(t, true, result.BestParams["fit_intercept"])
	assert.InDelta(t, 0, result.CVRMSE, 1e-6)

	// The winner comes back refitted on the full partition.
	pred, err := result.Best.Predict(mat.NewDense(1, 1, []float64{100}))
	require.NoError(t, err)
	assert.InDelta(t, 201.0, pred.At(0, 0), 1e-6)
}

func TestGridSearchTooFewRows(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewVecDense(3, []float64{1, 2, 3})

	_, err := GridSearch(ModelSpecs()[0], X, y, RandomState)
	var se *errors.SizingError
	assert.ErrorAs(t, err, &se)
}
