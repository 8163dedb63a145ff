package training

import (
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/dataset"
	"github.com/admetric/campaignml/ensemble"
	"github.com/admetric/campaignml/linear"
	"github.com/admetric/campaignml/metrics"
	"github.com/admetric/campaignml/pipeline"
)

// roiForestTrees is the fixed tree count of the ROI random forest.
const roiForestTrees = 300

// DeriveROITarget computes the per-row ROI target
//
//	roi = (sales·pricePerUnit − spend) / spend
//
// where spend is the row's total channel spend. Rows with zero spend get
// ROI 0 by policy rather than a division fault.
func DeriveROITarget(spend, sales []float64, pricePerUnit float64) []float64 {
	roi := make([]float64, len(spend))
	for i := range spend {
		if spend[i] == 0 {
			continue
		}
		revenue := sales[i] * pricePerUnit
		roi[i] = (revenue - spend[i]) / spend[i]
	}
	return roi
}

// TrainROIModels fits the two auxiliary ROI regressors — a linear model and
// a 300-tree random forest — on an 80/20 seeded split of the full feature
// set against the derived ROI target, evaluates both on the held-out 20%,
// and persists each as versioned and latest artifacts. The returned metric
// sets carry r2, rmse and mae only; ROI models are not candidates for the
// sales-model selection.
func TrainROIModels(X *mat.Dense, roi *mat.VecDense, store *ArtifactStore, version string) (map[string]MetricSet, error) {
	XTrain, XTest, yTrain, yTest, err := dataset.SplitTrainTest(X, roi, 0.2, RandomState)
	if err != nil {
		return nil, err
	}

	results := make(map[string]MetricSet, 2)
	roiModels := []struct {
		name string
		pipe *pipeline.Pipeline
	}{
		{"linear_roi", pipeline.New(linear.NewLinearRegression(), false)},
		{"random_forest_roi", pipeline.New(ensemble.NewRandomForestRegressor(roiForestTrees, RandomState), false)},
	}

	for _, m := range roiModels {
		if err := m.pipe.Fit(XTrain, yTrain); err != nil {
			return nil, err
		}
		pred, err := m.pipe.Predict(XTest)
		if err != nil {
			return nil, err
		}
		predVec, err := metrics.FromColumn(pred)
		if err != nil {
			return nil, err
		}
		scores, err := metrics.EvaluateRegression(yTest, predVec)
		if err != nil {
			return nil, err
		}
		results[m.name] = MetricSet{
			"r2":   scores["r2"],
			"rmse": scores["rmse"],
			"mae":  scores["mae"],
		}
		if err := store.Save(m.name, version, m.pipe); err != nil {
			return nil, err
		}
	}
	return results, nil
}
