package training

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/dataset"
	"github.com/admetric/campaignml/linear"
)

func TestChannelSharesSumToOne(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"TV", "Radio", "Newspaper", "Sales"},
		Rows: [][]float64{
			{100, 50, 50, 20},
			{200, 100, 100, 30},
		},
	}

	shares, err := ChannelShares(table)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	var sum float64
	for _, s := range shares {
		sum += s
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.InDelta(t, 0.5, shares[0], 1e-12)
	assert.InDelta(t, 0.25, shares[1], 1e-12)
}

func TestChannelSharesZeroSpend(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"TV", "Radio", "Newspaper", "Sales"},
		Rows:    [][]float64{{0, 0, 0, 5}},
	}
	_, err := ChannelShares(table)
	assert.Error(t, err)
}

func TestMetadataWriteFile(t *testing.T) {
	reference := linear.NewLinearRegression()
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})
	require.NoError(t, reference.Fit(X, y))

	md := AssembleMetadata(
		"v20240101-000000",
		[]float64{0.5, 0.3, 0.2},
		reference,
		map[string]MetricSet{"linear": {"test_r2": 0.9}},
		map[string]string{"residuals_hist": "plots/residuals_hist.png"},
		10.0,
	)
	md.BestModel = "linear"

	path := filepath.Join(t.TempDir(), "model-coefs.json")
	require.NoError(t, md.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "v20240101-000000", decoded["version"])
	assert.Equal(t, "linear", decoded["best_model"])
	assert.Equal(t, 10.0, decoded["price_per_unit"])
	assert.Contains(t, decoded, "generated_at")
	assert.Contains(t, decoded, "channelShares")
	assert.Contains(t, decoded, "intercept")
	assert.Contains(t, decoded, "betas")
	assert.Contains(t, decoded, "metrics")
	assert.Contains(t, decoded, "plots")

	betas := decoded["betas"].([]interface{})
	require.Len(t, betas, 1)
	assert.InDelta(t, 2.0, betas[0].(float64), 1e-9)
}

func TestMetadataOmitsEmptyBestModel(t *testing.T) {
	md := Metadata{Version: "v1"}
	raw, err := json.Marshal(md)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "best_model")
}
