package training

import (
	"github.com/admetric/campaignml/pkg/errors"
)

// SelectBest chooses the model with the minimum test RMSE and enforces the
// quality gate. Candidates are inspected in the given order so ties break
// deterministically; every candidate's metric set must already carry
// test_rmse and test_r2.
//
// Errors:
//   - ValueError: if no candidate carries test metrics
//   - QualityGateError: if the winner's test R² is below minR2; the run
//     must abort without publishing metadata or a report
func SelectBest(order []string, all map[string]MetricSet, minR2 float64) (string, error) {
	bestName := ""
	bestRMSE := 0.0
	for _, name := range order {
		ms, ok := all[name]
		if !ok {
			continue
		}
		rmse, ok := ms.Float("test_rmse")
		if !ok {
			continue
		}
		if bestName == "" || rmse < bestRMSE {
			bestName = name
			bestRMSE = rmse
		}
	}
	if bestName == "" {
		return "", errors.NewValueError("training.SelectBest", "no candidate carries test metrics")
	}

	r2, ok := all[bestName].Float("test_r2")
	if !ok {
		return "", errors.NewValueError("training.SelectBest", "winner lacks test_r2")
	}
	if r2 < minR2 {
		return "", errors.NewQualityGateError(bestName, r2, minR2)
	}
	return bestName, nil
}
