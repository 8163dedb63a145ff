package linear_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/linear"
	"github.com/admetric/campaignml/pkg/errors"
)

func TestLinearRegressionRecoversCoefficients(t *testing.T) {
	// y = 1 + 2x, exactly.
	X := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	y := mat.NewDense(5, 1, []float64{1, 3, 5, 7, 9})

	lr := linear.NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))

	assert.InDelta(t, 1.0, lr.InterceptValue(), 1e-9)
	coefs := lr.Coefs()
	require.Len(t, coefs, 1)
	assert.InDelta(t, 2.0, coefs[0], 1e-9)

	pred, err := lr.Predict(mat.NewDense(1, 1, []float64{10}))
	require.NoError(t, err)
	assert.InDelta(t, 21.0, pred.At(0, 0), 1e-9)
}

func TestLinearRegressionWithoutIntercept(t *testing.T) {
	// y = 3x through the origin.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 6, 9, 12})

	lr := linear.NewLinearRegression()
	require.NoError(t, lr.SetParams(map[string]interface{}{"fit_intercept": false}))
	require.NoError(t, lr.Fit(X, y))

	assert.Zero(t, lr.InterceptValue())
	assert.InDelta(t, 3.0, lr.Coefs()[0], 1e-9)
}

func TestLinearRegressionMultivariate(t *testing.T) {
	// y = 1 + 2a + 3b
	X := mat.NewDense(6, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
		2, 1,
		1, 2,
	})
	y := mat.NewDense(6, 1, []float64{1, 3, 4, 6, 8, 9})

	lr := linear.NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))

	assert.InDelta(t, 1.0, lr.InterceptValue(), 1e-9)
	coefs := lr.Coefs()
	assert.InDelta(t, 2.0, coefs[0], 1e-9)
	assert.InDelta(t, 3.0, coefs[1], 1e-9)
}

func TestLinearRegressionNotFitted(t *testing.T) {
	lr := linear.NewLinearRegression()
	_, err := lr.Predict(mat.NewDense(1, 1, []float64{1}))

	var nf *errors.NotFittedError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "LinearRegression", nf.ModelName)
}

func TestLinearRegressionEmptyData(t *testing.T) {
	lr := linear.NewLinearRegression()
	err := lr.Fit(&mat.Dense{}, &mat.Dense{})
	assert.ErrorIs(t, err, errors.ErrEmptyData)
}

func TestLinearRegressionSetParamsRejectsUnknown(t *testing.T) {
	lr := linear.NewLinearRegression()
	err := lr.SetParams(map[string]interface{}{"learning_rate": 0.1})
	assert.Error(t, err)
}
