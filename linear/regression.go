// Package linear provides the linear model family used by the training
// pipeline: ordinary least squares, Ridge (L2) and Lasso (L1) regression.
//
// All three implement the core/model.Regressor interface and expose their
// grid-searchable hyperparameters through GetParams/SetParams:
//
//   - LinearRegression: fit_intercept
//   - Ridge: alpha
//   - Lasso: alpha, max_iter, tol
//
// Coefficients are solved with gonum/mat (QR-backed least squares for OLS,
// dense solve of the regularized normal equations for Ridge, cyclic
// coordinate descent for Lasso). Trained state lives in exported fields so
// fitted models persist through the gob artifact store.
//
// Example usage:
//
//	lr := linear.NewLinearRegression()
//	if err := lr.Fit(X, y); err != nil {
//		log.Fatal(err)
//	}
//	predictions, err := lr.Predict(XTest)
package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/pkg/errors"
	"github.com/admetric/campaignml/pkg/log"
)

// LinearRegression is an ordinary least squares regression model.
type LinearRegression struct {
	State     *model.StateManager // Public for gob encoding
	Weights   []float64           // Coefficients, one per feature
	Intercept float64             // Bias term (zero when FitIntercept is false)
	NFeatures int                 // Number of features seen during Fit

	// FitIntercept controls whether a bias column is added to the design
	// matrix. Grid-searched by the "linear" model spec.
	FitIntercept bool

	logger log.Logger
}

// NewLinearRegression creates a new untrained OLS model with an intercept.
//
// The solve uses gonum's QR-backed least squares for numerical stability and
// handles both overdetermined and square systems. The model must be trained
// with Fit before Predict.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{
		State:        model.NewStateManager(),
		FitIntercept: true,
		logger: log.GetLoggerWithName("linear").With(
			log.ModelNameKey, "LinearRegression",
			log.ComponentKey, "linear",
		),
	}
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
//
// Errors:
//   - ModelError(ErrEmptyData): if X or y are empty
//   - DimensionError: if X and y row counts differ
//   - ModelError(ErrSingularMatrix): if the least squares solve fails
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	if lr.logger != nil {
		lr.logger.Debug("Training started",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	lr.NFeatures = c

	// Design matrix, with a leading column of ones when fitting an intercept.
	cols := c
	offset := 0
	if lr.FitIntercept {
		cols = c + 1
		offset = 1
	}
	design := mat.NewDense(r, cols, nil)
	for i := 0; i < r; i++ {
		if lr.FitIntercept {
			design.Set(i, 0, 1.0)
		}
		for j := 0; j < c; j++ {
			design.Set(i, j+offset, X.At(i, j))
		}
	}

	yDense := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		yDense.Set(i, 0, y.At(i, 0))
	}

	// Least squares solve; gonum uses QR for rectangular systems.
	var sol mat.Dense
	if err := sol.Solve(design, yDense); err != nil {
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	if lr.FitIntercept {
		lr.Intercept = sol.At(0, 0)
	} else {
		lr.Intercept = 0
	}
	lr.Weights = make([]float64, c)
	for j := 0; j < c; j++ {
		lr.Weights[j] = sol.At(j+offset, 0)
	}

	lr.State.SetFitted()
	lr.State.SetDimensions(c, r)

	if lr.logger != nil {
		lr.logger.Debug("Training completed",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.DurationMsKey, time.Since(startTime).Milliseconds(),
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}
	return nil
}

// Predict returns predictions for X as an (n_samples, 1) matrix.
//
// Errors:
//   - NotFittedError: if the model has not been trained
//   - DimensionError: if X has a different feature count than training data
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "LinearRegression.Predict")

	if !lr.State.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// Coefs returns a copy of the learned coefficients.
func (lr *LinearRegression) Coefs() []float64 {
	if lr.Weights == nil {
		return nil
	}
	out := make([]float64, len(lr.Weights))
	copy(out, lr.Weights)
	return out
}

// InterceptValue returns the learned intercept, or zero if unfitted.
func (lr *LinearRegression) InterceptValue() float64 {
	if !lr.State.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// IsFitted returns whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool {
	return lr.State.IsFitted()
}

// GetParams returns the model's hyperparameters.
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.FitIntercept,
	}
}

// SetParams sets the model's hyperparameters.
func (lr *LinearRegression) SetParams(params map[string]interface{}) error {
	for k, v := range params {
		switch k {
		case "fit_intercept":
			b, ok := v.(bool)
			if !ok {
				return errors.NewValueError("LinearRegression.SetParams", "fit_intercept must be a bool")
			}
			lr.FitIntercept = b
		default:
			return errors.NewValueError("LinearRegression.SetParams", "unknown parameter "+k)
		}
	}
	return nil
}
