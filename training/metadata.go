package training

import (
	"encoding/json"
	"os"
	"time"

	"github.com/admetric/campaignml/dataset"
	"github.com/admetric/campaignml/linear"
	"github.com/admetric/campaignml/pkg/errors"
)

// Metadata is the run summary consumed by the serving layer and frontend.
// It is created once per run, written as the final step, and never mutated
// afterward; a new run produces a new record.
type Metadata struct {
	Version       string               `json:"version"`
	GeneratedAt   string               `json:"generated_at"`
	ChannelShares []float64            `json:"channelShares"`
	Intercept     float64              `json:"intercept"`
	Betas         []float64            `json:"betas"`
	Metrics       map[string]MetricSet `json:"metrics"`
	Plots         map[string]string    `json:"plots"`
	PricePerUnit  float64              `json:"price_per_unit"`
	BestModel     string               `json:"best_model,omitempty"`
}

// AssembleMetadata builds the metadata record from the run's version, the
// channel spend shares, the reference (unscaled) linear fit over the full
// cleaned dataset, the full metrics table, the plot path references, and
// the configured unit price. The caller injects the selected best-model
// name afterward.
func AssembleMetadata(version string, channelShares []float64, reference *linear.LinearRegression, allMetrics map[string]MetricSet, plotPaths map[string]string, pricePerUnit float64) Metadata {
	return Metadata{
		Version:       version,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		ChannelShares: channelShares,
		Intercept:     reference.InterceptValue(),
		Betas:         reference.Coefs(),
		Metrics:       allMetrics,
		Plots:         plotPaths,
		PricePerUnit:  pricePerUnit,
	}
}

// WriteFile serializes the record as indented JSON at path.
func (m Metadata) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create metadata file")
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(err, "failed to encode metadata")
	}
	return nil
}

// ChannelShares returns each spend channel's share of the dataset's total
// spend, in feature order. Shares sum to 1 for any non-degenerate totals.
func ChannelShares(t *dataset.Table) ([]float64, error) {
	sums := make([]float64, len(dataset.FeatureColumns))
	var total float64
	for i, name := range dataset.FeatureColumns {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		for _, v := range col {
			sums[i] += v
		}
		total += sums[i]
	}
	if total == 0 {
		return nil, errors.NewValueError("training.ChannelShares", "total spend is zero")
	}
	shares := make([]float64, len(sums))
	for i := range sums {
		shares[i] = sums[i] / total
	}
	return shares, nil
}
