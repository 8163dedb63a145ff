package training

import (
	"fmt"
	"os"
	"strings"

	"github.com/admetric/campaignml/pkg/errors"
)

// WriteReport renders the Markdown model report: one table row per model
// with validation R², test R², test RMSE and test MAE. Metrics are
// formatted to three decimal places; absent metrics (the ROI models carry
// no test_* entries) render as a dash. Rows follow the given order so the
// report is deterministic. Presentation only; no decision logic.
func WriteReport(path, version, bestModel string, order []string, allMetrics map[string]MetricSet) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Model Report (%s)\n\n", version)
	fmt.Fprintf(&b, "Best Model: **%s**\n\n", bestModel)
	b.WriteString("| Model | Val R² | Test R² | Test RMSE | Test MAE |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")

	for _, name := range order {
		ms, ok := allMetrics[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			name,
			fmtMetric(ms, "r2"),
			fmtMetric(ms, "test_r2"),
			fmtMetric(ms, "test_rmse"),
			fmtMetric(ms, "test_mae"),
		)
	}
	b.WriteString("\nPlots saved under `public/plots/`.\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.Wrap(err, "failed to write model report")
	}
	return nil
}

func fmtMetric(ms MetricSet, name string) string {
	v, ok := ms.Float(name)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}
