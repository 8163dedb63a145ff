// Package errors provides typed errors for the campaignml training pipeline.
//
// The package defines structured error types for the common failure modes of
// estimators and the training run (dimension mismatches, unfitted models,
// invalid values, infeasible splits, quality-gate rejections) together with
// sentinel errors for errors.Is checks. All constructors attach stack traces
// via cockroachdb/errors so that %+v formatting yields full context.
//
// Example usage:
//
//	if !lr.State.IsFitted() {
//		return errors.NewNotFittedError("LinearRegression", "Predict")
//	}
//
//	var qg *errors.QualityGateError
//	if errors.As(err, &qg) {
//		fmt.Printf("best R²=%.3f below %.3f\n", qg.R2, qg.Threshold)
//	}
package errors

import (
	"fmt"

	cockroach "github.com/cockroachdb/errors"
)

// prefix is prepended to every typed error message.
const prefix = "campaignml"

// Sentinel errors for errors.Is comparisons.
var (
	// ErrEmptyData indicates that an operation received an empty matrix or vector.
	ErrEmptyData = cockroach.New("empty data")

	// ErrSingularMatrix indicates that a linear solve failed because the
	// design matrix is singular or near-singular.
	ErrSingularMatrix = cockroach.New("singular matrix")

	// ErrNotImplemented indicates a requested capability has no implementation.
	ErrNotImplemented = cockroach.New("not implemented")

	// ErrFileNotFound indicates a required input file is absent.
	ErrFileNotFound = cockroach.New("file not found")
)

// ValueError indicates an invalid parameter or data value.
type ValueError struct {
	Op      string // Operation that rejected the value
	Message string // Description of the violation
}

// NewValueError creates a ValueError for the given operation.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s: %s", prefix, e.Op, e.Message)
}

// DimensionError indicates a shape mismatch between related inputs.
type DimensionError struct {
	Op       string // Operation that detected the mismatch
	Expected int    // Expected dimension
	Got      int    // Observed dimension
	Axis     int    // Axis on which the mismatch occurred (0 = rows, 1 = columns)
}

// NewDimensionError creates a DimensionError for the given operation.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s: dimension mismatch on axis %d: expected %d, got %d",
		prefix, e.Op, e.Axis, e.Expected, e.Got)
}

// NotFittedError indicates that a model was used before Fit succeeded.
type NotFittedError struct {
	ModelName string // Name of the model type
	Method    string // Method that required a fitted model
}

// NewNotFittedError creates a NotFittedError for the given model and method.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: %s.%s: model is not fitted; call Fit first",
		prefix, e.ModelName, e.Method)
}

// ModelError wraps a lower-level failure with model operation context.
type ModelError struct {
	Op      string // Operation that failed
	Message string // Description of the failure
	Err     error  // Underlying cause, may be a sentinel
}

// NewModelError creates a ModelError wrapping err.
func NewModelError(op, message string, err error) *ModelError {
	return &ModelError{Op: op, Message: message, Err: err}
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s: %v", prefix, e.Op, e.Message, e.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As traversal.
func (e *ModelError) Unwrap() error { return e.Err }

// SizingError indicates that a dataset is too small to satisfy the requested
// partitioning. It always aborts the run; there is no degraded split mode.
type SizingError struct {
	Op   string // Operation that attempted the partition
	Rows int    // Rows available
	Need int    // Minimum rows required
}

// NewSizingError creates a SizingError for the given operation.
func NewSizingError(op string, rows, need int) *SizingError {
	return &SizingError{Op: op, Rows: rows, Need: need}
}

func (e *SizingError) Error() string {
	return fmt.Sprintf("%s: %s: %d rows cannot satisfy the requested split (need at least %d)",
		prefix, e.Op, e.Rows, e.Need)
}

// QualityGateError indicates that the best candidate model failed the
// minimum-R² gate. The run must abort without publishing metadata so that a
// poor model is never promoted to the served artifact.
type QualityGateError struct {
	Model     string  // Name of the winning model
	R2        float64 // Observed test R²
	Threshold float64 // Configured minimum R²
}

// NewQualityGateError creates a QualityGateError for the given model.
func NewQualityGateError(model string, r2, threshold float64) *QualityGateError {
	return &QualityGateError{Model: model, R2: r2, Threshold: threshold}
}

func (e *QualityGateError) Error() string {
	return fmt.Sprintf("%s: model quality below threshold: %s test R²=%.3f < %.3f",
		prefix, e.Model, e.R2, e.Threshold)
}

// Wrap annotates err with a message, preserving the chain for errors.Is/As.
func Wrap(err error, message string) error {
	return cockroach.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return cockroach.Wrapf(err, format, args...)
}

// Newf creates a new error with a formatted message and a stack trace.
func Newf(format string, args ...interface{}) error {
	return cockroach.Newf(format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return cockroach.Is(err, target) }

// As finds the first error in err's chain matching target.
func As(err error, target interface{}) bool { return cockroach.As(err, target) }

// Recover converts a panic inside a deferred scope into an error assigned to
// *errp, tagged with the operation name. Use as:
//
//	func (m *Model) Fit(X, y mat.Matrix) (err error) {
//		defer errors.Recover(&err, "Model.Fit")
//		...
//	}
func Recover(errp *error, op string) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*errp = cockroach.Wrapf(e, "%s: panic recovered", op)
			return
		}
		*errp = cockroach.Newf("%s: panic recovered: %v", op, r)
	}
}
