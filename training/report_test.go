package training

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	all := map[string]MetricSet{
		"linear": {
			"r2":        0.912,
			"test_r2":   0.905,
			"test_rmse": 1.234,
			"test_mae":  0.987,
		},
		"linear_roi": {
			"r2":   0.88,
			"rmse": 0.2,
		},
	}

	path := filepath.Join(t.TempDir(), "model-report.md")
	err := WriteReport(path, "v20240101-000000", "linear", []string{"linear", "linear_roi"}, all)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(raw)

	assert.Contains(t, report, "# Model Report (v20240101-000000)")
	assert.Contains(t, report, "Best Model: **linear**")
	assert.Contains(t, report, "| linear | 0.912 | 0.905 | 1.234 | 0.987 |")
	// ROI models carry no test metrics; those cells render as dashes.
	assert.Contains(t, report, "| linear_roi | 0.880 | - | - | - |")
	assert.Contains(t, report, "Plots saved under `public/plots/`.")
}

func TestWriteReportSkipsUnknownNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model-report.md")
	err := WriteReport(path, "v1", "linear", []string{"linear", "ghost"}, map[string]MetricSet{
		"linear": {"test_rmse": 1.0},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ghost")
}
