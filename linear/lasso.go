package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/pkg/errors"
)

// Lasso is a linear regression model with L1 regularization, fitted by
// cyclic coordinate descent on centered data. The L1 penalty drives weak
// coefficients exactly to zero. Objective:
//
//	(1/2n)·‖y − Xw‖² + α·‖w‖₁
type Lasso struct {
	State     *model.StateManager // Public for gob encoding
	Weights   []float64
	Intercept float64
	NFeatures int

	// Alpha is the L1 regularization strength. Grid-searched by the
	// "lasso" model spec.
	Alpha float64

	// MaxIter bounds the coordinate descent sweeps.
	MaxIter int

	// Tol stops descent once the largest coefficient update in a sweep
	// falls below it.
	Tol float64
}

// NewLasso creates a new untrained Lasso model with the given alpha and the
// defaults MaxIter 10000, Tol 1e-4.
func NewLasso(alpha float64) *Lasso {
	return &Lasso{
		State:   model.NewStateManager(),
		Alpha:   alpha,
		MaxIter: 10000,
		Tol:     1e-4,
	}
}

// Fit trains the model with cyclic coordinate descent.
//
// Errors:
//   - ModelError(ErrEmptyData): if X or y are empty
//   - DimensionError: if X and y row counts differ
//   - ValueError: if Alpha is negative or MaxIter is not positive
func (ls *Lasso) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Lasso.Fit")

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("Lasso.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("Lasso.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("Lasso.Fit", "y must be a column vector")
	}
	if ls.Alpha < 0 {
		return errors.NewValueError("Lasso.Fit", "alpha must be non-negative")
	}
	if ls.MaxIter <= 0 {
		return errors.NewValueError("Lasso.Fit", "max_iter must be positive")
	}

	ls.NFeatures = c
	n := float64(r)

	xMeans := make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		xMeans[j] = sum / n
	}
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= n

	// Centered copies; columns are contiguous for the descent loop.
	xc := make([][]float64, c)
	for j := 0; j < c; j++ {
		col := make([]float64, r)
		for i := 0; i < r; i++ {
			col[i] = X.At(i, j) - xMeans[j]
		}
		xc[j] = col
	}
	yc := make([]float64, r)
	for i := 0; i < r; i++ {
		yc[i] = y.At(i, 0) - yMean
	}

	// z_j = (1/n)·Σ x_ij²; constant columns are skipped.
	z := make([]float64, c)
	for j := 0; j < c; j++ {
		sumSq := 0.0
		for i := 0; i < r; i++ {
			sumSq += xc[j][i] * xc[j][i]
		}
		z[j] = sumSq / n
	}

	w := make([]float64, c)
	residual := make([]float64, r)
	copy(residual, yc)

	for iter := 0; iter < ls.MaxIter; iter++ {
		maxDelta := 0.0
		for j := 0; j < c; j++ {
			if z[j] == 0 {
				continue
			}
			// rho = (1/n)·Σ x_ij·(r_i + x_ij·w_j)
			rho := 0.0
			for i := 0; i < r; i++ {
				rho += xc[j][i] * (residual[i] + xc[j][i]*w[j])
			}
			rho /= n

			wNew := softThreshold(rho, ls.Alpha) / z[j]
			if wNew != w[j] {
				delta := wNew - w[j]
				for i := 0; i < r; i++ {
					residual[i] -= xc[j][i] * delta
				}
				if math.Abs(delta) > maxDelta {
					maxDelta = math.Abs(delta)
				}
				w[j] = wNew
			}
		}
		if maxDelta < ls.Tol {
			break
		}
	}

	ls.Weights = w
	ls.Intercept = yMean
	for j := 0; j < c; j++ {
		ls.Intercept -= xMeans[j] * w[j]
	}

	ls.State.SetFitted()
	ls.State.SetDimensions(c, r)
	return nil
}

// softThreshold is the L1 proximal operator.
func softThreshold(x, threshold float64) float64 {
	switch {
	case x > threshold:
		return x - threshold
	case x < -threshold:
		return x + threshold
	default:
		return 0
	}
}

// Predict returns predictions for X as an (n_samples, 1) matrix.
func (ls *Lasso) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "Lasso.Predict")

	if !ls.State.IsFitted() {
		return nil, errors.NewNotFittedError("Lasso", "Predict")
	}

	r, c := X.Dims()
	if c != ls.NFeatures {
		return nil, errors.NewDimensionError("Lasso.Predict", ls.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := ls.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * ls.Weights[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// GetParams returns the model's hyperparameters.
func (ls *Lasso) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"alpha":    ls.Alpha,
		"max_iter": ls.MaxIter,
		"tol":      ls.Tol,
	}
}

// SetParams sets the model's hyperparameters.
func (ls *Lasso) SetParams(params map[string]interface{}) error {
	for k, v := range params {
		switch k {
		case "alpha":
			f, ok := v.(float64)
			if !ok {
				return errors.NewValueError("Lasso.SetParams", "alpha must be a float64")
			}
			ls.Alpha = f
		case "max_iter":
			i, ok := v.(int)
			if !ok {
				return errors.NewValueError("Lasso.SetParams", "max_iter must be an int")
			}
			ls.MaxIter = i
		case "tol":
			f, ok := v.(float64)
			if !ok {
				return errors.NewValueError("Lasso.SetParams", "tol must be a float64")
			}
			ls.Tol = f
		default:
			return errors.NewValueError("Lasso.SetParams", "unknown parameter "+k)
		}
	}
	return nil
}
