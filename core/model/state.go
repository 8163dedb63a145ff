// Package model provides core abstractions for campaignml estimators.
//
// It defines the Regressor and Transformer interfaces implemented by every
// estimator and preprocessing step in the repository, the StateManager used
// to track fitted state, and gob-based persistence for trained artifacts.
//
// Example usage:
//
//	type MyModel struct {
//		State *model.StateManager
//	}
//
//	func (m *MyModel) Fit(X, y mat.Matrix) error {
//		// training logic
//		m.State.SetFitted()
//		return nil
//	}
package model

// StateManager tracks the learning state of an estimator. Fields are public
// for gob encoding; estimators hold it by composition rather than embedding.
type StateManager struct {
	Fitted    bool
	NFeatures int
	NSamples  int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether the estimator has been trained.
func (s *StateManager) IsFitted() bool {
	return s != nil && s.Fitted
}

// SetFitted marks the estimator as trained. Called by Fit implementations
// after successful training.
func (s *StateManager) SetFitted() {
	s.Fitted = true
}

// SetDimensions records the training data shape for later validation.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.NFeatures = nFeatures
	s.NSamples = nSamples
}

// Reset returns the estimator to its initial untrained state.
func (s *StateManager) Reset() {
	s.Fitted = false
	s.NFeatures = 0
	s.NSamples = 0
}
