// Package pipeline composes an optional feature scaler with a regressor so
// that preprocessing statistics are always learned on the same partition the
// estimator trains on, and are persisted with it as one artifact.
package pipeline

import (
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/ensemble"
	"github.com/admetric/campaignml/linear"
	"github.com/admetric/campaignml/pkg/errors"
	"github.com/admetric/campaignml/preprocessing"
)

func init() {
	// Concrete types reachable through the Estimator interface field must
	// be registered for gob artifact encoding.
	gob.Register(&linear.LinearRegression{})
	gob.Register(&linear.Ridge{})
	gob.Register(&linear.Lasso{})
	gob.Register(&ensemble.RegressionTree{})
	gob.Register(&ensemble.RandomForestRegressor{})
	gob.Register(&ensemble.GradientBoostingRegressor{})
}

// Pipeline chains an optional StandardScaler with a final regressor. Fields
// are public for gob encoding.
type Pipeline struct {
	State *model.StateManager

	// Scaler is fitted on training features before the estimator sees
	// them; nil when the model spec trains on raw features.
	Scaler *preprocessing.StandardScaler

	// Estimator is the final regressor.
	Estimator model.Regressor
}

// New creates a pipeline around est, prepending a StandardScaler when
// withScaling is set.
func New(est model.Regressor, withScaling bool) *Pipeline {
	p := &Pipeline{
		State:     model.NewStateManager(),
		Estimator: est,
	}
	if withScaling {
		p.Scaler = preprocessing.NewStandardScaler()
	}
	return p
}

// Fit fits the scaler (if any) on X, transforms X, and fits the estimator
// on the result.
func (p *Pipeline) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Pipeline.Fit")

	if p.Estimator == nil {
		return errors.NewValueError("Pipeline.Fit", "pipeline has no estimator")
	}

	Xt := X
	if p.Scaler != nil {
		if err := p.Scaler.Fit(X); err != nil {
			return errors.Wrap(err, "failed to fit scaler step")
		}
		Xt, err = p.Scaler.Transform(X)
		if err != nil {
			return errors.Wrap(err, "failed to transform at scaler step")
		}
	}

	if err := p.Estimator.Fit(Xt, y); err != nil {
		return errors.Wrap(err, "failed to fit estimator step")
	}

	p.State.SetFitted()
	r, c := X.Dims()
	p.State.SetDimensions(c, r)
	return nil
}

// Predict transforms X through the scaler (if any) and predicts with the
// estimator, returning an (n_samples, 1) matrix.
func (p *Pipeline) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "Pipeline.Predict")

	if !p.State.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}

	Xt := X
	if p.Scaler != nil {
		Xt, err = p.Scaler.Transform(X)
		if err != nil {
			return nil, errors.Wrap(err, "failed to transform at scaler step")
		}
	}
	return p.Estimator.Predict(Xt)
}

// GetParams returns the final estimator's hyperparameters.
func (p *Pipeline) GetParams() map[string]interface{} {
	if p.Estimator == nil {
		return map[string]interface{}{}
	}
	return p.Estimator.GetParams()
}

// SetParams forwards hyperparameters to the final estimator.
func (p *Pipeline) SetParams(params map[string]interface{}) error {
	if p.Estimator == nil {
		return errors.NewValueError("Pipeline.SetParams", "pipeline has no estimator")
	}
	return p.Estimator.SetParams(params)
}
