package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/pkg/errors"
)

// Ridge is a linear regression model with L2 regularization. The penalty
// shrinks coefficients toward zero without eliminating them; the intercept
// is never penalized.
type Ridge struct {
	State     *model.StateManager // Public for gob encoding
	Weights   []float64
	Intercept float64
	NFeatures int

	// Alpha is the L2 regularization strength. Grid-searched by the
	// "ridge" model spec; must be non-negative.
	Alpha float64
}

// NewRidge creates a new untrained Ridge model with the given alpha.
func NewRidge(alpha float64) *Ridge {
	return &Ridge{
		State: model.NewStateManager(),
		Alpha: alpha,
	}
}

// Fit trains the model by solving the regularized normal equations
// (XcᵀXc + αI)w = Xcᵀyc on centered data, then recovering the intercept
// from the column means.
//
// Errors:
//   - ModelError(ErrEmptyData): if X or y are empty
//   - DimensionError: if X and y row counts differ
//   - ValueError: if Alpha is negative
//   - ModelError(ErrSingularMatrix): if the solve fails
func (rg *Ridge) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Ridge.Fit")

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("Ridge.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("Ridge.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("Ridge.Fit", "y must be a column vector")
	}
	if rg.Alpha < 0 {
		return errors.NewValueError("Ridge.Fit", "alpha must be non-negative")
	}

	rg.NFeatures = c

	xMeans := make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		xMeans[j] = sum / float64(r)
	}
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	xc := mat.NewDense(r, c, nil)
	yc := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			xc.Set(i, j, X.At(i, j)-xMeans[j])
		}
		yc.SetVec(i, y.At(i, 0)-yMean)
	}

	// A = XcᵀXc + αI, b = Xcᵀyc
	var a mat.Dense
	a.Mul(xc.T(), xc)
	for j := 0; j < c; j++ {
		a.Set(j, j, a.At(j, j)+rg.Alpha)
	}
	var b mat.VecDense
	b.MulVec(xc.T(), yc)

	var w mat.VecDense
	if err := w.SolveVec(&a, &b); err != nil {
		return errors.NewModelError("Ridge.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	rg.Weights = make([]float64, c)
	rg.Intercept = yMean
	for j := 0; j < c; j++ {
		rg.Weights[j] = w.AtVec(j)
		rg.Intercept -= xMeans[j] * w.AtVec(j)
	}

	rg.State.SetFitted()
	rg.State.SetDimensions(c, r)
	return nil
}

// Predict returns predictions for X as an (n_samples, 1) matrix.
func (rg *Ridge) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "Ridge.Predict")

	if !rg.State.IsFitted() {
		return nil, errors.NewNotFittedError("Ridge", "Predict")
	}

	r, c := X.Dims()
	if c != rg.NFeatures {
		return nil, errors.NewDimensionError("Ridge.Predict", rg.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := rg.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * rg.Weights[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// GetParams returns the model's hyperparameters.
func (rg *Ridge) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"alpha": rg.Alpha,
	}
}

// SetParams sets the model's hyperparameters.
func (rg *Ridge) SetParams(params map[string]interface{}) error {
	for k, v := range params {
		switch k {
		case "alpha":
			f, ok := v.(float64)
			if !ok {
				return errors.NewValueError("Ridge.SetParams", "alpha must be a float64")
			}
			rg.Alpha = f
		default:
			return errors.NewValueError("Ridge.SetParams", "unknown parameter "+k)
		}
	}
	return nil
}
