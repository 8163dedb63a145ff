package model_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/core/model"
	"github.com/admetric/campaignml/linear"
)

func TestSaveLoadModel(t *testing.T) {
	reg := linear.NewLinearRegression()

	X := mat.NewDense(4, 1, []float64{1.0, 2.0, 3.0, 4.0})
	y := mat.NewDense(4, 1, []float64{2.0, 4.0, 6.0, 8.0})

	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	testX := mat.NewDense(1, 1, []float64{5.0})
	originalPred, err := reg.Predict(testX)
	if err != nil {
		t.Fatalf("Failed to predict with original model: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test_model.gob")
	if err := model.SaveModel(reg, path); err != nil {
		t.Fatalf("Failed to save model: %v", err)
	}

	loadedReg := linear.NewLinearRegression()
	if err := model.LoadModel(loadedReg, path); err != nil {
		t.Fatalf("Failed to load model: %v", err)
	}

	loadedPred, err := loadedReg.Predict(testX)
	if err != nil {
		t.Fatalf("Failed to predict with loaded model: %v", err)
	}

	if originalPred.At(0, 0) != loadedPred.At(0, 0) {
		t.Errorf("Predictions do not match: original=%v, loaded=%v",
			originalPred.At(0, 0), loadedPred.At(0, 0))
	}
	if !loadedReg.IsFitted() {
		t.Error("Loaded model should be fitted")
	}
}

func TestSaveLoadModelToWriter(t *testing.T) {
	reg := linear.NewLinearRegression()

	X := mat.NewDense(4, 2, []float64{
		1.0, 2.0,
		2.0, 1.0,
		3.0, 4.0,
		4.0, 3.0,
	})
	y := mat.NewDense(4, 1, []float64{5.0, 4.0, 11.0, 10.0})

	if err := reg.Fit(X, y); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	var buf bytes.Buffer
	if err := model.SaveModelToWriter(reg, &buf); err != nil {
		t.Fatalf("Failed to save model to writer: %v", err)
	}

	loadedReg := linear.NewLinearRegression()
	if err := model.LoadModelFromReader(loadedReg, &buf); err != nil {
		t.Fatalf("Failed to load model from reader: %v", err)
	}

	testX := mat.NewDense(1, 2, []float64{5.0, 6.0})
	originalPred, err := reg.Predict(testX)
	if err != nil {
		t.Fatalf("Failed to predict with original model: %v", err)
	}
	loadedPred, err := loadedReg.Predict(testX)
	if err != nil {
		t.Fatalf("Failed to predict with loaded model: %v", err)
	}

	if originalPred.At(0, 0) != loadedPred.At(0, 0) {
		t.Errorf("Predictions do not match: original=%v, loaded=%v",
			originalPred.At(0, 0), loadedPred.At(0, 0))
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	reg := linear.NewLinearRegression()
	err := model.LoadModel(reg, filepath.Join(t.TempDir(), "absent.gob"))
	if err == nil {
		t.Fatal("expected error loading a missing artifact")
	}
}
