package training

import (
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/metrics"
	"github.com/admetric/campaignml/pipeline"
	"github.com/admetric/campaignml/pkg/errors"
)

// cvFolds is the number of cross-validation folds used by the search.
const cvFolds = 5

// GridSearchResult holds the outcome of a cross-validated grid search: the
// winning pipeline refitted on the full training partition, its parameters,
// and its mean cross-validation RMSE.
type GridSearchResult struct {
	Best       *pipeline.Pipeline
	BestParams map[string]interface{}
	CVRMSE     float64
}

// GridSearch runs 5-fold cross-validated search over spec's grid on the
// training partition, minimizing RMSE. Parameter combinations are evaluated
// concurrently; all evaluations join before the winner is chosen, and the
// expansion order is deterministic (parameter names sorted, values in grid
// order) so ties break reproducibly. The winning configuration is refitted
// on the full partition before returning.
//
// Errors:
//   - SizingError: if the partition has fewer rows than folds
func GridSearch(spec ModelSpec, X *mat.Dense, y *mat.VecDense, seed int64) (*GridSearchResult, error) {
	n, _ := X.Dims()
	if n < cvFolds {
		return nil, errors.NewSizingError("training.GridSearch", n, cvFolds)
	}

	combos := expandGrid(spec.Grid)
	folds := kfoldIndices(n, cvFolds, seed)
	scores := make([]float64, len(combos))

	// Combinations fan out across goroutines; each writes only its own
	// score slot, and g.Wait joins them all before selection.
	var g errgroup.Group
	for ci, combo := range combos {
		ci, combo := ci, combo
		g.Go(func() error {
			var sum float64
			for f := range folds {
				rmse, err := evaluateFold(spec, combo, X, y, folds, f)
				if err != nil {
					return err
				}
				sum += rmse
			}
			scores[ci] = sum / float64(len(folds))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bestIdx := 0
	for i, s := range scores {
		if s < scores[bestIdx] {
			bestIdx = i
		}
	}

	best := pipeline.New(spec.New(), spec.NeedsScaling)
	if err := best.SetParams(combos[bestIdx]); err != nil {
		return nil, err
	}
	if err := best.Fit(X, y); err != nil {
		return nil, errors.Wrap(err, "failed to refit best configuration")
	}

	return &GridSearchResult{
		Best:       best,
		BestParams: combos[bestIdx],
		CVRMSE:     scores[bestIdx],
	}, nil
}

// evaluateFold trains a fresh pipeline with the given parameters on all
// folds but f and returns its RMSE on fold f.
func evaluateFold(spec ModelSpec, params map[string]interface{}, X *mat.Dense, y *mat.VecDense, folds [][]int, f int) (float64, error) {
	_, c := X.Dims()

	var trainIdx []int
	for i, fold := range folds {
		if i != f {
			trainIdx = append(trainIdx, fold...)
		}
	}
	valIdx := folds[f]

	take := func(rows []int) (*mat.Dense, *mat.VecDense) {
		xs := mat.NewDense(len(rows), c, nil)
		ys := mat.NewVecDense(len(rows), nil)
		for i, r := range rows {
			xs.SetRow(i, X.RawRowView(r))
			ys.SetVec(i, y.AtVec(r))
		}
		return xs, ys
	}
	xTrain, yTrain := take(trainIdx)
	xVal, yVal := take(valIdx)

	p := pipeline.New(spec.New(), spec.NeedsScaling)
	if err := p.SetParams(params); err != nil {
		return 0, err
	}
	if err := p.Fit(xTrain, yTrain); err != nil {
		return 0, errors.Wrapf(err, "failed to fit %s on fold %d", spec.Name, f)
	}

	pred, err := p.Predict(xVal)
	if err != nil {
		return 0, err
	}
	predVec, err := metrics.FromColumn(pred)
	if err != nil {
		return 0, err
	}
	return metrics.RMSE(yVal, predVec)
}

// expandGrid enumerates the cross product of the grid. Parameter names are
// sorted so the expansion order, and therefore tie-breaking, is stable. An
// empty grid yields a single empty combination.
func expandGrid(grid map[string][]interface{}) []map[string]interface{} {
	names := make([]string, 0, len(grid))
	for name := range grid {
		names = append(names, name)
	}
	sort.Strings(names)

	combos := []map[string]interface{}{{}}
	for _, name := range names {
		var expanded []map[string]interface{}
		for _, combo := range combos {
			for _, value := range grid[name] {
				next := make(map[string]interface{}, len(combo)+1)
				for k, v := range combo {
					next[k] = v
				}
				next[name] = value
				expanded = append(expanded, next)
			}
		}
		combos = expanded
	}
	return combos
}

// kfoldIndices shuffles row indices with the given seed and slices them
// into k near-equal folds. With n >= k every fold is non-empty.
func kfoldIndices(n, k int, seed int64) [][]int {
	idx := rand.New(rand.NewSource(seed)).Perm(n)
	folds := make([][]int, k)
	base, rem := n/k, n%k
	lo := 0
	for f := 0; f < k; f++ {
		size := base
		if f < rem {
			size++
		}
		folds[f] = idx[lo : lo+size]
		lo += size
	}
	return folds
}
