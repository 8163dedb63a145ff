// Package training implements the campaign sales training pipeline: data
// cleaning and partitioning, cross-validated multi-model search, best-model
// selection behind a quality gate, ROI model training, and metadata/report
// generation. Run executes the whole pipeline from a Config.
package training

import "path/filepath"

// RandomState seeds every stochastic component of the pipeline (splits,
// cross-validation shuffles, bootstrap sampling) so that repeated runs on
// identical input are reproducible.
const RandomState int64 = 42

// Default split fractions, both relative to the full dataset.
const (
	DefaultTestSize = 0.2
	DefaultValSize  = 0.2
)

// Config is the immutable configuration of one training run. Construct it
// once, pass it to Run, never mutate it afterwards.
type Config struct {
	// CSVPath locates the advertising dataset.
	CSVPath string

	// PublicDir receives the metadata JSON and plots consumed by the
	// frontend.
	PublicDir string

	// ArtifactsDir receives the persisted model artifacts.
	ArtifactsDir string

	// DocsDir receives the Markdown model report.
	DocsDir string

	// MinR2 is the quality gate: the selected model's test R² must meet
	// it or the run fails.
	MinR2 float64

	// PricePerUnit converts predicted sales to revenue for the ROI
	// target derivation.
	PricePerUnit float64
}

// NewConfig creates a Config with the default quality gate (0.6) and unit
// price (10.0).
func NewConfig(csvPath, publicDir, artifactsDir, docsDir string) Config {
	return Config{
		CSVPath:      csvPath,
		PublicDir:    publicDir,
		ArtifactsDir: artifactsDir,
		DocsDir:      docsDir,
		MinR2:        0.6,
		PricePerUnit: 10.0,
	}
}

// PlotsDir is the directory diagnostic plots are rendered into.
func (c Config) PlotsDir() string {
	return filepath.Join(c.PublicDir, "plots")
}

// MetadataPath is the fixed location of the metadata JSON record.
func (c Config) MetadataPath() string {
	return filepath.Join(c.PublicDir, "model-coefs.json")
}

// ReportPath is the fixed location of the Markdown model report.
func (c Config) ReportPath() string {
	return filepath.Join(c.DocsDir, "model-report.md")
}
