package dataset

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/pkg/errors"
)

// Splits holds the three feature/target partitions of one run.
type Splits struct {
	XTrain, XVal, XTest *mat.Dense
	YTrain, YVal, YTest *mat.VecDense
}

// Split partitions X and y into train/validation/test sets. The test
// fraction is carved off first; the validation fraction is then taken from
// the remainder as valSize/(1−testSize), so both fractions are relative to
// the full dataset. Shuffling uses the given seed, making partitions
// reproducible across runs on identical input.
//
// Errors:
//   - SizingError: if any partition would be empty
//   - ValueError: if the fractions are outside (0, 1) or X/y disagree
func Split(X *mat.Dense, y *mat.VecDense, testSize, valSize float64, seed int64) (*Splits, error) {
	n, c := X.Dims()
	if y.Len() != n {
		return nil, errors.NewDimensionError("dataset.Split", n, y.Len(), 0)
	}
	if testSize <= 0 || testSize >= 1 || valSize <= 0 || valSize >= 1 || testSize+valSize >= 1 {
		return nil, errors.NewValueError("dataset.Split", "split fractions must lie in (0, 1) and sum below 1")
	}

	nTest := int(math.Ceil(float64(n) * testSize))
	remainder := n - nTest
	valRatio := valSize / (1 - testSize)
	nVal := int(math.Ceil(float64(remainder) * valRatio))
	nTrain := remainder - nVal

	if nTest < 1 || nVal < 1 || nTrain < 1 {
		// Smallest n where all three partitions are non-empty.
		need := int(math.Ceil(1/testSize)) + int(math.Ceil(1/valSize)) + 1
		return nil, errors.NewSizingError("dataset.Split", n, need)
	}

	idx := rand.New(rand.NewSource(seed)).Perm(n)
	testIdx := idx[:nTest]
	valIdx := idx[nTest : nTest+nVal]
	trainIdx := idx[nTest+nVal:]

	take := func(rows []int) (*mat.Dense, *mat.VecDense) {
		xs := mat.NewDense(len(rows), c, nil)
		ys := mat.NewVecDense(len(rows), nil)
		for i, r := range rows {
			xs.SetRow(i, X.RawRowView(r))
			ys.SetVec(i, y.AtVec(r))
		}
		return xs, ys
	}

	s := &Splits{}
	s.XTest, s.YTest = take(testIdx)
	s.XVal, s.YVal = take(valIdx)
	s.XTrain, s.YTrain = take(trainIdx)
	return s, nil
}

// SplitTrainTest partitions X and y into two sets, test fraction last. Used
// by the ROI trainer's 80/20 split.
func SplitTrainTest(X *mat.Dense, y *mat.VecDense, testSize float64, seed int64) (XTrain, XTest *mat.Dense, yTrain, yTest *mat.VecDense, err error) {
	n, c := X.Dims()
	if y.Len() != n {
		return nil, nil, nil, nil, errors.NewDimensionError("dataset.SplitTrainTest", n, y.Len(), 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValueError("dataset.SplitTrainTest", "test fraction must lie in (0, 1)")
	}

	nTest := int(math.Ceil(float64(n) * testSize))
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return nil, nil, nil, nil, errors.NewSizingError("dataset.SplitTrainTest", n, 2)
	}

	idx := rand.New(rand.NewSource(seed)).Perm(n)
	take := func(rows []int) (*mat.Dense, *mat.VecDense) {
		xs := mat.NewDense(len(rows), c, nil)
		ys := mat.NewVecDense(len(rows), nil)
		for i, r := range rows {
			xs.SetRow(i, X.RawRowView(r))
			ys.SetVec(i, y.AtVec(r))
		}
		return xs, ys
	}
	XTest, yTest = take(idx[:nTest])
	XTrain, yTrain = take(idx[nTest:])
	return XTrain, XTest, yTrain, yTest, nil
}
