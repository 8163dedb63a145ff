package model

import "gonum.org/v1/gonum/mat"

// Regressor is the estimator interface implemented by every model in the
// pipeline. X has shape (n_samples, n_features); y and predictions are
// column matrices of shape (n_samples, 1).
type Regressor interface {
	// Fit trains the estimator on X and y.
	Fit(X, y mat.Matrix) error

	// Predict returns predictions for X as an (n_samples, 1) matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)

	// GetParams returns the estimator's hyperparameters.
	GetParams() map[string]interface{}

	// SetParams configures hyperparameters prior to Fit. Unknown keys are
	// rejected so that grid definitions cannot silently drift.
	SetParams(params map[string]interface{}) error
}

// Transformer is a fitted feature transformation, such as standardization.
type Transformer interface {
	// Fit learns transformation statistics from X.
	Fit(X mat.Matrix) error

	// Transform applies the learned transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// Predictor is the minimal contract the serving layer needs from a loaded
// artifact: one feature row in, one scalar out.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}
