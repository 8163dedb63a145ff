package training

import (
	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/ensemble"
	"github.com/admetric/campaignml/linear"
)

// ModelSpec defines one candidate model: a factory for fresh estimator
// instances, the hyperparameter search grid, and whether features must be
// standardized before fitting. Specs are built by ModelSpecs at the start
// of a run and never mutated.
type ModelSpec struct {
	Name         string
	New          func() model.Regressor
	Grid         map[string][]interface{}
	NeedsScaling bool
}

// boostedTreeFactory resolves the optional boosted-tree entry. When nil the
// registry omits the spec instead of failing the run, mirroring an
// environment without the optional estimator.
var boostedTreeFactory func() model.Regressor = func() model.Regressor {
	return ensemble.NewGradientBoostingRegressor()
}

// SetBoostedTreeFactory replaces the boosted-tree factory. Passing nil
// removes the gradient_boosting entry from the registry.
func SetBoostedTreeFactory(f func() model.Regressor) {
	boostedTreeFactory = f
}

// ModelSpecs returns the fixed, ordered list of candidate models and their
// search grids. The set is static per run; there is no dynamic
// registration.
func ModelSpecs() []ModelSpec {
	specs := []ModelSpec{
		{
			Name:         "linear",
			New:          func() model.Regressor { return linear.NewLinearRegression() },
			Grid:         map[string][]interface{}{"fit_intercept": {true, false}},
			NeedsScaling: true,
		},
		{
			Name:         "ridge",
			New:          func() model.Regressor { return linear.NewRidge(1.0) },
			Grid:         map[string][]interface{}{"alpha": {0.1, 1.0, 10.0}},
			NeedsScaling: true,
		},
		{
			Name:         "lasso",
			New:          func() model.Regressor { return linear.NewLasso(1.0) },
			Grid:         map[string][]interface{}{"alpha": {0.001, 0.01, 0.1, 1.0}},
			NeedsScaling: true,
		},
		{
			Name: "random_forest",
			New:  func() model.Regressor { return ensemble.NewRandomForestRegressor(200, RandomState) },
			Grid: map[string][]interface{}{
				"n_estimators": {200, 400},
				"max_depth":    {0, 8, 16}, // 0 = unlimited
			},
			NeedsScaling: false,
		},
	}

	if boostedTreeFactory != nil {
		specs = append(specs, ModelSpec{
			Name: "gradient_boosting",
			New:  boostedTreeFactory,
			Grid: map[string][]interface{}{
				"max_depth":     {3, 5, 7},
				"learning_rate": {0.05, 0.1},
			},
			NeedsScaling: false,
		})
	}

	return specs
}
