package ensemble

import (
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/pkg/errors"
	"github.com/admetric/campaignml/pkg/log"
)

// RandomForestRegressor averages bootstrap-trained regression trees.
//
// Trees are built concurrently; determinism is preserved by seeding each
// tree's bootstrap generator from Seed plus the tree index, so results do
// not depend on goroutine scheduling.
type RandomForestRegressor struct {
	State     *model.StateManager // Public for gob encoding
	Trees     []*RegressionTree
	NFeatures int

	// NEstimators is the number of trees. Grid-searched by the
	// "random_forest" model spec.
	NEstimators int

	// MaxDepth limits each tree's depth; 0 means unlimited.
	MaxDepth int

	// Seed drives the bootstrap sampling.
	Seed int64

	logger log.Logger
}

// NewRandomForestRegressor creates an unfitted forest with nEstimators
// trees and the given seed.
func NewRandomForestRegressor(nEstimators int, seed int64) *RandomForestRegressor {
	return &RandomForestRegressor{
		State:       model.NewStateManager(),
		NEstimators: nEstimators,
		Seed:        seed,
		logger: log.GetLoggerWithName("ensemble").With(
			log.ModelNameKey, "RandomForestRegressor",
			log.ComponentKey, "ensemble",
		),
	}
}

// Fit trains the forest on X and y.
func (rf *RandomForestRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "RandomForestRegressor.Fit")

	if rf.NEstimators <= 0 {
		return errors.NewValueError("RandomForestRegressor.Fit", "n_estimators must be positive")
	}

	rows, cols, yv, err := regressionData("RandomForestRegressor.Fit", X, y)
	if err != nil {
		return err
	}

	startTime := time.Now()
	rf.NFeatures = cols
	rf.Trees = make([]*RegressionTree, rf.NEstimators)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for t := 0; t < rf.NEstimators; t++ {
		t := t
		g.Go(func() error {
			rng := rand.New(rand.NewSource(rf.Seed + int64(t)))
			idx := make([]int, len(yv))
			for i := range idx {
				idx[i] = rng.Intn(len(yv))
			}
			tree := NewRegressionTree(WithMaxDepth(rf.MaxDepth))
			if err := tree.FitIndexed(rows, yv, idx); err != nil {
				return err
			}
			rf.Trees[t] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rf.State.SetFitted()
	rf.State.SetDimensions(cols, len(yv))

	if rf.logger != nil {
		rf.logger.Debug("Training completed",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.DurationMsKey, time.Since(startTime).Milliseconds(),
			log.SamplesKey, len(yv),
			log.FeaturesKey, cols,
			"n_estimators", rf.NEstimators,
		)
	}
	return nil
}

// Predict returns the mean of all trees' predictions as an (n_samples, 1)
// matrix.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "RandomForestRegressor.Predict")

	if !rf.State.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != rf.NFeatures {
		return nil, errors.NewDimensionError("RandomForestRegressor.Predict", rf.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = X.At(i, j)
		}
		var sum float64
		for _, tree := range rf.Trees {
			sum += tree.predictRow(row)
		}
		predictions.Set(i, 0, sum/float64(len(rf.Trees)))
	}
	return predictions, nil
}

// GetParams returns the forest's hyperparameters.
func (rf *RandomForestRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators": rf.NEstimators,
		"max_depth":    rf.MaxDepth,
	}
}

// SetParams sets the forest's hyperparameters.
func (rf *RandomForestRegressor) SetParams(params map[string]interface{}) error {
	for k, v := range params {
		i, ok := v.(int)
		if !ok {
			return errors.NewValueError("RandomForestRegressor.SetParams", k+" must be an int")
		}
		switch k {
		case "n_estimators":
			rf.NEstimators = i
		case "max_depth":
			rf.MaxDepth = i
		default:
			return errors.NewValueError("RandomForestRegressor.SetParams", "unknown parameter "+k)
		}
	}
	return nil
}
