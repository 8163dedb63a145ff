// Package ensemble provides the tree-based regressors used by the training
// pipeline: a single regression tree, a bootstrap-aggregated random forest,
// and a gradient boosting machine. All implement core/model.Regressor and
// train deterministically from a fixed seed.
package ensemble

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/pkg/errors"
)

// TreeNode is a node in a regression tree. Fields are public for gob
// encoding of persisted models.
type TreeNode struct {
	IsLeaf    bool
	Feature   int       // Split feature (internal nodes)
	Threshold float64   // Split threshold; values <= go left
	Left      *TreeNode
	Right     *TreeNode
	Value     float64 // Mean target (leaf nodes)
	NSamples  int
}

// RegressionTree is a CART-style decision tree for regression, splitting on
// variance reduction with a midpoint threshold scan.
type RegressionTree struct {
	State     *model.StateManager // Public for gob encoding
	Root      *TreeNode
	NFeatures int

	// MaxDepth limits tree depth; 0 means unlimited.
	MaxDepth int

	// MinSamplesSplit is the minimum number of samples required to split.
	MinSamplesSplit int

	// MinSamplesLeaf is the minimum number of samples in each child.
	MinSamplesLeaf int
}

// RegressionTreeOption is a functional option for NewRegressionTree.
type RegressionTreeOption func(*RegressionTree)

// WithMaxDepth sets the maximum tree depth (0 = unlimited).
func WithMaxDepth(depth int) RegressionTreeOption {
	return func(t *RegressionTree) { t.MaxDepth = depth }
}

// WithMinSamplesSplit sets the minimum samples required to split a node.
func WithMinSamplesSplit(n int) RegressionTreeOption {
	return func(t *RegressionTree) { t.MinSamplesSplit = n }
}

// WithMinSamplesLeaf sets the minimum samples required in a leaf.
func WithMinSamplesLeaf(n int) RegressionTreeOption {
	return func(t *RegressionTree) { t.MinSamplesLeaf = n }
}

// NewRegressionTree creates a new unfitted regression tree.
func NewRegressionTree(opts ...RegressionTreeOption) *RegressionTree {
	t := &RegressionTree{
		State:           model.NewStateManager(),
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Fit builds the tree from X and y.
func (t *RegressionTree) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "RegressionTree.Fit")

	rows, cols, yv, err := regressionData("RegressionTree.Fit", X, y)
	if err != nil {
		return err
	}

	idx := make([]int, len(yv))
	for i := range idx {
		idx[i] = i
	}
	t.NFeatures = cols
	t.Root = t.build(rows, yv, idx, 0)
	t.State.SetFitted()
	t.State.SetDimensions(cols, len(yv))
	return nil
}

// FitIndexed builds the tree from the given sample indices into rows/yv.
// Used by the forest to train on bootstrap samples without copying data.
func (t *RegressionTree) FitIndexed(rows [][]float64, yv []float64, idx []int) error {
	if len(rows) == 0 || len(idx) == 0 {
		return errors.NewModelError("RegressionTree.FitIndexed", "empty data", errors.ErrEmptyData)
	}
	t.NFeatures = len(rows[0])
	t.Root = t.build(rows, yv, idx, 0)
	t.State.SetFitted()
	t.State.SetDimensions(t.NFeatures, len(idx))
	return nil
}

func (t *RegressionTree) build(rows [][]float64, yv []float64, idx []int, depth int) *TreeNode {
	node := &TreeNode{NSamples: len(idx), Value: meanAt(yv, idx)}

	if len(idx) < t.MinSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		node.IsLeaf = true
		return node
	}

	feature, threshold, gain := t.bestSplit(rows, yv, idx)
	if gain <= 0 {
		node.IsLeaf = true
		return node
	}

	var left, right []int
	for _, i := range idx {
		if rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < t.MinSamplesLeaf || len(right) < t.MinSamplesLeaf {
		node.IsLeaf = true
		return node
	}

	node.Feature = feature
	node.Threshold = threshold
	node.Left = t.build(rows, yv, left, depth+1)
	node.Right = t.build(rows, yv, right, depth+1)
	return node
}

// bestSplit scans every feature for the threshold with maximum SSE
// reduction, using prefix sums over the sorted column.
func (t *RegressionTree) bestSplit(rows [][]float64, yv []float64, idx []int) (int, float64, float64) {
	n := len(idx)
	var totalSum, totalSumSq float64
	for _, i := range idx {
		totalSum += yv[i]
		totalSumSq += yv[i] * yv[i]
	}
	parentSSE := totalSumSq - totalSum*totalSum/float64(n)

	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	order := make([]int, n)
	for f := 0; f < len(rows[idx[0]]); f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return rows[order[a]][f] < rows[order[b]][f]
		})

		var leftSum, leftSumSq float64
		for k := 0; k < n-1; k++ {
			i := order[k]
			leftSum += yv[i]
			leftSumSq += yv[i] * yv[i]

			v, next := rows[i][f], rows[order[k+1]][f]
			if v == next {
				continue
			}
			nLeft := k + 1
			nRight := n - nLeft
			if nLeft < t.MinSamplesLeaf || nRight < t.MinSamplesLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSumSq := totalSumSq - leftSumSq
			leftSSE := leftSumSq - leftSum*leftSum/float64(nLeft)
			rightSSE := rightSumSq - rightSum*rightSum/float64(nRight)

			gain := parentSSE - leftSSE - rightSSE
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (v + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, 0
	}
	return bestFeature, bestThreshold, bestGain
}

// Predict returns predictions for X as an (n_samples, 1) matrix.
func (t *RegressionTree) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "RegressionTree.Predict")

	if !t.State.IsFitted() {
		return nil, errors.NewNotFittedError("RegressionTree", "Predict")
	}

	r, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("RegressionTree.Predict", t.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = X.At(i, j)
		}
		predictions.Set(i, 0, t.predictRow(row))
	}
	return predictions, nil
}

func (t *RegressionTree) predictRow(row []float64) float64 {
	node := t.Root
	for !node.IsLeaf {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// GetParams returns the tree's hyperparameters.
func (t *RegressionTree) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"max_depth":         t.MaxDepth,
		"min_samples_split": t.MinSamplesSplit,
		"min_samples_leaf":  t.MinSamplesLeaf,
	}
}

// SetParams sets the tree's hyperparameters.
func (t *RegressionTree) SetParams(params map[string]interface{}) error {
	for k, v := range params {
		i, ok := v.(int)
		if !ok {
			return errors.NewValueError("RegressionTree.SetParams", k+" must be an int")
		}
		switch k {
		case "max_depth":
			t.MaxDepth = i
		case "min_samples_split":
			t.MinSamplesSplit = i
		case "min_samples_leaf":
			t.MinSamplesLeaf = i
		default:
			return errors.NewValueError("RegressionTree.SetParams", "unknown parameter "+k)
		}
	}
	return nil
}

func meanAt(yv []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += yv[i]
	}
	return sum / float64(len(idx))
}

// regressionData validates X/y shapes and copies them into row-major slices.
func regressionData(op string, X, y mat.Matrix) ([][]float64, int, []float64, error) {
	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return nil, 0, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return nil, 0, nil, errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return nil, 0, nil, errors.NewValueError(op, "y must be a column vector")
	}

	rows := make([][]float64, r)
	yv := make([]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = X.At(i, j)
		}
		rows[i] = row
		yv[i] = y.At(i, 0)
	}
	for i := range yv {
		if math.IsNaN(yv[i]) {
			return nil, 0, nil, errors.NewValueError(op, "y contains NaN")
		}
	}
	return rows, c, yv, nil
}
