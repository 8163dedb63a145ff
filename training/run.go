package training

import (
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/admetric/campaignml/dataset"
	"github.com/admetric/campaignml/linear"
	"github.com/admetric/campaignml/metrics"
	"github.com/admetric/campaignml/pipeline"
	"github.com/admetric/campaignml/pkg/errors"
	"github.com/admetric/campaignml/pkg/log"
	"github.com/admetric/campaignml/plotting"
)

// Result holds the artifacts emitted by one training run.
type Result struct {
	Version      string
	BestModel    string
	MetadataPath string
	ReportPath   string
	Metrics      map[string]MetricSet
	PlotPaths    map[string]string
}

// Run executes the full training pipeline with the standard model registry:
// clean → split → grid-search each candidate → test-evaluate and persist →
// select best behind the quality gate → reference fit, plots, ROI models →
// metadata and report.
//
// The run is a strict linear sequence. Any stage failure aborts it; a
// QualityGateError aborts after all models are trained but before metadata
// or report are written, so a poor model is never promoted. There is no
// retry or resumption; a failed run is re-invoked from scratch.
func Run(cfg Config) (*Result, error) {
	return RunWithSpecs(cfg, ModelSpecs())
}

// RunWithSpecs is Run with an explicit candidate list. It exists for
// embedders and tests that train a subset of the registry.
func RunWithSpecs(cfg Config, specs []ModelSpec) (*Result, error) {
	logger := log.GetLoggerWithName("training").With(log.ComponentKey, "run")

	for _, dir := range []string{cfg.ArtifactsDir, cfg.PublicDir, cfg.DocsDir, cfg.PlotsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create output directory")
		}
	}

	// Fail fast before any stage runs.
	if _, err := os.Stat(cfg.CSVPath); err != nil {
		return nil, errors.Wrap(errors.ErrFileNotFound, cfg.CSVPath)
	}

	raw, err := dataset.LoadCSV(cfg.CSVPath)
	if err != nil {
		return nil, err
	}
	table := dataset.Clean(raw)

	X, err := table.Features(dataset.FeatureColumns)
	if err != nil {
		return nil, err
	}
	y, err := table.Target(dataset.TargetColumn)
	if err != nil {
		return nil, err
	}

	splits, err := dataset.Split(X, y, DefaultTestSize, DefaultValSize, RandomState)
	if err != nil {
		return nil, err
	}

	store, err := NewArtifactStore(cfg.ArtifactsDir)
	if err != nil {
		return nil, err
	}

	version := newVersion(time.Now())
	logger.Info("Training run started",
		log.VersionKey, version,
		log.SamplesKey, table.NumRows(),
		"candidates", len(specs),
	)

	allMetrics := make(map[string]MetricSet, len(specs))
	trained := make(map[string]*pipeline.Pipeline, len(specs))
	order := make([]string, 0, len(specs))

	for _, spec := range specs {
		pipe, ms, err := TrainModel(spec, splits.XTrain, splits.YTrain, splits.XVal, splits.YVal)
		if err != nil {
			return nil, err
		}
		if err := EvaluateOnTest(pipe, splits.XTest, splits.YTest, ms); err != nil {
			return nil, err
		}
		allMetrics[spec.Name] = ms
		trained[spec.Name] = pipe
		order = append(order, spec.Name)

		if err := store.Save(spec.Name, version, pipe); err != nil {
			return nil, err
		}
	}

	bestModel, err := SelectBest(order, allMetrics, cfg.MinR2)
	if err != nil {
		return nil, err
	}
	logger.Info("Best model selected",
		log.PhaseKey, log.PhaseSelection,
		log.ModelNameKey, bestModel,
	)

	// Reference unscaled linear fit over the full cleaned dataset; its
	// coefficients go into the metadata record.
	reference := linear.NewLinearRegression()
	if err := reference.Fit(X, y); err != nil {
		return nil, err
	}

	shares, err := ChannelShares(table)
	if err != nil {
		return nil, err
	}

	plotPaths, err := renderPlots(cfg, table, trained[bestModel], splits)
	if err != nil {
		return nil, err
	}

	spend, sales, err := spendAndSales(table)
	if err != nil {
		return nil, err
	}
	roi := DeriveROITarget(spend, sales, cfg.PricePerUnit)
	roiMetrics, err := TrainROIModels(X, mat.NewVecDense(len(roi), roi), store, version)
	if err != nil {
		return nil, err
	}
	for name, ms := range roiMetrics {
		allMetrics[name] = ms
	}
	order = append(order, "linear_roi", "random_forest_roi")

	metadata := AssembleMetadata(version, shares, reference, allMetrics, plotPaths, cfg.PricePerUnit)
	metadata.BestModel = bestModel
	if err := metadata.WriteFile(cfg.MetadataPath()); err != nil {
		return nil, err
	}
	if err := WriteReport(cfg.ReportPath(), version, bestModel, order, allMetrics); err != nil {
		return nil, err
	}

	logger.Info("Training run completed",
		log.VersionKey, version,
		log.ModelNameKey, bestModel,
		log.PathKey, cfg.MetadataPath(),
	)

	return &Result{
		Version:      version,
		BestModel:    bestModel,
		MetadataPath: cfg.MetadataPath(),
		ReportPath:   cfg.ReportPath(),
		Metrics:      allMetrics,
		PlotPaths:    plotPaths,
	}, nil
}

// newVersion derives the run's artifact tag from the wall clock.
func newVersion(t time.Time) string {
	return t.UTC().Format("v20060102-150405")
}

// renderPlots draws the three diagnostic plots from the cleaned dataset and
// the best model's validation predictions.
func renderPlots(cfg Config, table *dataset.Table, best *pipeline.Pipeline, splits *dataset.Splits) (map[string]string, error) {
	renderer, err := plotting.NewRenderer(cfg.PlotsDir())
	if err != nil {
		return nil, err
	}

	columns := append(append([]string(nil), dataset.FeatureColumns...), dataset.TargetColumn)
	data := make([][]float64, len(columns))
	for i, name := range columns {
		col, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		data[i] = col
	}

	valPred, err := best.Predict(splits.XVal)
	if err != nil {
		return nil, err
	}
	predVec, err := metrics.FromColumn(valPred)
	if err != nil {
		return nil, err
	}
	actual := make([]float64, splits.YVal.Len())
	predicted := make([]float64, splits.YVal.Len())
	for i := range actual {
		actual[i] = splits.YVal.AtVec(i)
		predicted[i] = predVec.AtVec(i)
	}

	paths := make(map[string]string, 3)
	if paths["correlation_heatmap"], err = renderer.CorrelationHeatmap(columns, data); err != nil {
		return nil, err
	}
	if paths["predicted_vs_actual"], err = renderer.PredictedVsActual(actual, predicted); err != nil {
		return nil, err
	}
	if paths["residuals_hist"], err = renderer.ResidualHistogram(actual, predicted); err != nil {
		return nil, err
	}
	return paths, nil
}

// spendAndSales extracts each row's total channel spend and its sales.
func spendAndSales(table *dataset.Table) (spend, sales []float64, err error) {
	sales, err = table.Column(dataset.TargetColumn)
	if err != nil {
		return nil, nil, err
	}
	spend = make([]float64, table.NumRows())
	for _, name := range dataset.FeatureColumns {
		col, err := table.Column(name)
		if err != nil {
			return nil, nil, err
		}
		for i, v := range col {
			spend[i] += v
		}
	}
	return spend, sales, nil
}
