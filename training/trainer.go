package training

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/metrics"
	"github.com/admetric/campaignml/pipeline"
	"github.com/admetric/campaignml/pkg/log"
)

// TrainModel tunes, trains and evaluates a single model spec: grid search
// with 5-fold cross-validation on the training partition, refit of the
// winning configuration, then evaluation on the validation partition.
//
// The returned metric set carries r2, rmse and mae on validation, the
// winning configuration's cross-validation RMSE (cv_rmse), and the winning
// hyperparameters (best_params). Test-set metrics are added by the caller
// once the withheld test partition is scored.
func TrainModel(spec ModelSpec, XTrain *mat.Dense, yTrain *mat.VecDense, XVal *mat.Dense, yVal *mat.VecDense) (*pipeline.Pipeline, MetricSet, error) {
	logger := log.GetLoggerWithName("training").With(
		log.ModelNameKey, spec.Name,
		log.ComponentKey, "trainer",
	)

	startTime := time.Now()
	logger.Info("Training model",
		log.OperationKey, log.OperationSearch,
		log.PhaseKey, log.PhaseTraining,
	)

	result, err := GridSearch(spec, XTrain, yTrain, RandomState)
	if err != nil {
		return nil, nil, err
	}

	valPred, err := result.Best.Predict(XVal)
	if err != nil {
		return nil, nil, err
	}
	predVec, err := metrics.FromColumn(valPred)
	if err != nil {
		return nil, nil, err
	}
	scores, err := metrics.EvaluateRegression(yVal, predVec)
	if err != nil {
		return nil, nil, err
	}

	ms := MetricSet{
		"r2":          scores["r2"],
		"rmse":        scores["rmse"],
		"mae":         scores["mae"],
		"cv_rmse":     result.CVRMSE,
		"best_params": result.BestParams,
	}

	logger.Info("Model trained",
		log.OperationKey, log.OperationSearch,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		"cv_rmse", result.CVRMSE,
		"val_r2", scores["r2"],
	)
	return result.Best, ms, nil
}

// EvaluateOnTest scores a fitted pipeline on the withheld test partition
// and merges test_r2, test_rmse and test_mae into ms.
func EvaluateOnTest(p *pipeline.Pipeline, XTest *mat.Dense, yTest *mat.VecDense, ms MetricSet) error {
	pred, err := p.Predict(XTest)
	if err != nil {
		return err
	}
	predVec, err := metrics.FromColumn(pred)
	if err != nil {
		return err
	}
	scores, err := metrics.EvaluateRegression(yTest, predVec)
	if err != nil {
		return err
	}
	ms["test_r2"] = scores["r2"]
	ms["test_rmse"] = scores["rmse"]
	ms["test_mae"] = scores["mae"]
	return nil
}
