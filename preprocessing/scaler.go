// Package preprocessing provides feature preprocessing for the training
// pipeline.
//
// StandardScaler standardizes features to zero mean and unit variance. It is
// prepended to the estimator inside a pipeline for every model spec whose
// NeedsScaling flag is set (the linear family); tree ensembles train on raw
// features.
//
// Example usage:
//
//	scaler := preprocessing.NewStandardScaler()
//	if err := scaler.Fit(XTrain); err != nil {
//		log.Fatal(err)
//	}
//	XScaled, err := scaler.Transform(XTest)
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/pkg/errors"
)

// StandardScaler standardizes features by removing the per-column mean and
// dividing by the per-column standard deviation. Fields are public for gob
// encoding of persisted pipelines.
type StandardScaler struct {
	State *model.StateManager

	// Mean holds each feature's training mean.
	Mean []float64

	// Scale holds each feature's training standard deviation. Constant
	// columns get scale 1 so transformation is a no-op rather than a
	// division by zero.
	Scale []float64

	// NFeatures is the number of features seen during Fit.
	NFeatures int
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{State: model.NewStateManager()}
}

// Fit computes the per-feature mean and standard deviation from X.
//
// Errors:
//   - ModelError(ErrEmptyData): if X is empty
func (s *StandardScaler) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "StandardScaler.Fit")

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		s.Mean[j] = sum / float64(r)
	}

	for j := 0; j < c; j++ {
		sumSquares := 0.0
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - s.Mean[j]
			sumSquares += diff * diff
		}
		scale := math.Sqrt(sumSquares / float64(r))
		if scale == 0 {
			scale = 1.0
		}
		s.Scale[j] = scale
	}

	s.State.SetFitted()
	s.State.SetDimensions(c, r)
	return nil
}

// Transform standardizes X using the statistics learned by Fit.
//
// Errors:
//   - NotFittedError: if Fit has not succeeded
//   - DimensionError: if X has a different number of features than Fit saw
func (s *StandardScaler) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "StandardScaler.Transform")

	if !s.State.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler on X and returns the transformed X.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized values back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "StandardScaler.InverseTransform")

	if !s.State.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return out, nil
}
