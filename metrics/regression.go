// Package metrics provides regression evaluation metrics for the training
// pipeline.
//
// Implemented metrics:
//
//   - MSE: Mean Squared Error
//   - RMSE: Root Mean Squared Error (square root of MSE)
//   - MAE: Mean Absolute Error
//   - R²: coefficient of determination
//
// All metrics operate on gonum vectors; FromColumn converts the (n, 1)
// prediction matrices returned by estimators. EvaluateRegression bundles the
// three metrics every model report needs.
//
// Example usage:
//
//	rmse, err := metrics.RMSE(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("RMSE: %.4f\n", rmse)
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/pkg/errors"
)

// MSE calculates the Mean Squared Error between true and predicted values.
//
// MSE measures the average squared difference between predictions and actual
// values. Lower values indicate better performance; the metric is sensitive
// to outliers because differences are squared.
//
// Errors:
//   - ValueError: if the input vectors are empty
//   - DimensionError: if yTrue and yPred have different lengths
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE calculates the Root Mean Squared Error between true and predicted
// values. RMSE is the square root of MSE, reported in the same units as the
// target variable; it is the score the grid search minimizes and the
// selector compares models by.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the Mean Absolute Error between true and predicted values.
// MAE is more robust to outliers than MSE as differences are not squared.
//
// Errors:
//   - ValueError: if the input vectors are empty
//   - DimensionError: if yTrue and yPred have different lengths
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score calculates the coefficient of determination (R²).
//
// R² is the proportion of target variance explained by the model: 1 is a
// perfect fit, 0 matches predicting the mean, negative values are worse than
// the mean. The quality gate compares the selected model's test R² against
// the configured minimum.
//
// Errors:
//   - ValueError: if the input vectors are empty or yTrue has no variance
//   - DimensionError: if yTrue and yPred have different lengths
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2Score", n, yPred.Len(), 0)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)
		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// EvaluateRegression computes the r2/rmse/mae triple reported for every
// model in the run.
func EvaluateRegression(yTrue, yPred *mat.VecDense) (map[string]float64, error) {
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	return map[string]float64{"r2": r2, "rmse": rmse, "mae": mae}, nil
}

// FromColumn converts an (n, 1) matrix, as returned by Regressor.Predict,
// into a dense vector.
func FromColumn(m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if c != 1 {
		return nil, errors.NewValueError("FromColumn", "must be a column vector (n×1 matrix)")
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}
