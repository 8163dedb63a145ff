package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/pkg/errors"
)

// GradientBoostingRegressor fits shallow regression trees to the residuals
// of the running prediction, shrunk by the learning rate:
//
//	F_0 = mean(y);  F_m = F_{m-1} + lr · tree_m(residuals)
//
// Boosting is inherently sequential, so trees are built one at a time.
type GradientBoostingRegressor struct {
	State     *model.StateManager // Public for gob encoding
	BaseScore float64             // Initial prediction (training target mean)
	Trees     []*RegressionTree
	NFeatures int

	// NEstimators is the number of boosting rounds.
	NEstimators int

	// LearningRate shrinks each round's contribution. Grid-searched by
	// the "gradient_boosting" model spec.
	LearningRate float64

	// MaxDepth limits each round's tree depth. Grid-searched.
	MaxDepth int
}

// NewGradientBoostingRegressor creates an unfitted booster with the
// defaults NEstimators 400, LearningRate 0.1, MaxDepth 3.
func NewGradientBoostingRegressor() *GradientBoostingRegressor {
	return &GradientBoostingRegressor{
		State:        model.NewStateManager(),
		NEstimators:  400,
		LearningRate: 0.1,
		MaxDepth:     3,
	}
}

// Fit trains the booster on X and y.
func (gb *GradientBoostingRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "GradientBoostingRegressor.Fit")

	if gb.NEstimators <= 0 {
		return errors.NewValueError("GradientBoostingRegressor.Fit", "n_estimators must be positive")
	}
	if gb.LearningRate <= 0 {
		return errors.NewValueError("GradientBoostingRegressor.Fit", "learning_rate must be positive")
	}

	rows, cols, yv, err := regressionData("GradientBoostingRegressor.Fit", X, y)
	if err != nil {
		return err
	}

	gb.NFeatures = cols

	var sum float64
	for _, v := range yv {
		sum += v
	}
	gb.BaseScore = sum / float64(len(yv))

	residual := make([]float64, len(yv))
	for i, v := range yv {
		residual[i] = v - gb.BaseScore
	}

	idx := make([]int, len(yv))
	for i := range idx {
		idx[i] = i
	}

	gb.Trees = make([]*RegressionTree, 0, gb.NEstimators)
	for m := 0; m < gb.NEstimators; m++ {
		tree := NewRegressionTree(WithMaxDepth(gb.MaxDepth))
		if err := tree.FitIndexed(rows, residual, idx); err != nil {
			return err
		}
		gb.Trees = append(gb.Trees, tree)

		for i, row := range rows {
			residual[i] -= gb.LearningRate * tree.predictRow(row)
		}
	}

	gb.State.SetFitted()
	gb.State.SetDimensions(cols, len(yv))
	return nil
}

// Predict returns predictions for X as an (n_samples, 1) matrix.
func (gb *GradientBoostingRegressor) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "GradientBoostingRegressor.Predict")

	if !gb.State.IsFitted() {
		return nil, errors.NewNotFittedError("GradientBoostingRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != gb.NFeatures {
		return nil, errors.NewDimensionError("GradientBoostingRegressor.Predict", gb.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = X.At(i, j)
		}
		pred := gb.BaseScore
		for _, tree := range gb.Trees {
			pred += gb.LearningRate * tree.predictRow(row)
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// GetParams returns the booster's hyperparameters.
func (gb *GradientBoostingRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":  gb.NEstimators,
		"learning_rate": gb.LearningRate,
		"max_depth":     gb.MaxDepth,
	}
}

// SetParams sets the booster's hyperparameters.
func (gb *GradientBoostingRegressor) SetParams(params map[string]interface{}) error {
	for k, v := range params {
		switch k {
		case "n_estimators":
			i, ok := v.(int)
			if !ok {
				return errors.NewValueError("GradientBoostingRegressor.SetParams", "n_estimators must be an int")
			}
			gb.NEstimators = i
		case "learning_rate":
			f, ok := v.(float64)
			if !ok {
				return errors.NewValueError("GradientBoostingRegressor.SetParams", "learning_rate must be a float64")
			}
			gb.LearningRate = f
		case "max_depth":
			i, ok := v.(int)
			if !ok {
				return errors.NewValueError("GradientBoostingRegressor.SetParams", "max_depth must be an int")
			}
			gb.MaxDepth = i
		default:
			return errors.NewValueError("GradientBoostingRegressor.SetParams", "unknown parameter "+k)
		}
	}
	return nil
}
