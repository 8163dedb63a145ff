// Package plotting renders the diagnostic plots referenced by the run
// metadata: a correlation heatmap over the dataset columns, a
// predicted-vs-actual scatter for the selected model, and a residual
// histogram. Each renderer writes a PNG and returns its path relative to
// the public directory, which is what the metadata record stores.
package plotting

import (
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/admetric/campaignml/pkg/errors"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// Renderer writes plots under plotsDir and reports paths relative to its
// parent (the public directory).
type Renderer struct {
	plotsDir string
}

// NewRenderer creates a Renderer rooted at plotsDir, creating the directory
// if needed.
func NewRenderer(plotsDir string) (*Renderer, error) {
	if err := os.MkdirAll(plotsDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create plots directory")
	}
	return &Renderer{plotsDir: plotsDir}, nil
}

func (r *Renderer) relPath(name string) string {
	return filepath.ToSlash(filepath.Join(filepath.Base(r.plotsDir), name))
}

// CorrelationHeatmap renders the Pearson correlation matrix of the named
// columns and returns the plot's public-relative path.
func (r *Renderer) CorrelationHeatmap(columns []string, data [][]float64) (string, error) {
	n := len(columns)
	if n == 0 || len(data) != n {
		return "", errors.NewValueError("plotting.CorrelationHeatmap", "columns and data must align")
	}

	corr := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			corr.Set(i, j, stat.Correlation(data[i], data[j], nil))
		}
	}

	p := plot.New()
	p.Title.Text = "Channel Correlation"
	hm := plotter.NewHeatMap(corrGrid{m: corr}, palette.Heat(12, 1))
	p.Add(hm)

	path := filepath.Join(r.plotsDir, "correlation_heatmap.png")
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return "", errors.Wrap(err, "failed to save correlation heatmap")
	}
	return r.relPath("correlation_heatmap.png"), nil
}

// PredictedVsActual renders a scatter of predictions against actuals with
// the ideal y=x line and returns the plot's public-relative path.
func (r *Renderer) PredictedVsActual(actual, predicted []float64) (string, error) {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return "", errors.NewValueError("plotting.PredictedVsActual", "actual and predicted must align")
	}

	pts := make(plotter.XYs, len(actual))
	ideal := make(plotter.XYs, len(actual))
	for i := range actual {
		pts[i] = plotter.XY{X: actual[i], Y: predicted[i]}
		ideal[i] = plotter.XY{X: actual[i], Y: actual[i]}
	}

	p := plot.New()
	p.Title.Text = "Predicted vs Actual"
	p.X.Label.Text = "Actual Sales"
	p.Y.Label.Text = "Predicted Sales"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return "", errors.Wrap(err, "failed to build scatter")
	}
	line, err := plotter.NewLine(ideal)
	if err != nil {
		return "", errors.Wrap(err, "failed to build ideal line")
	}
	p.Add(scatter, line)
	p.Legend.Add("ideal", line)

	path := filepath.Join(r.plotsDir, "predicted_vs_actual.png")
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return "", errors.Wrap(err, "failed to save predicted-vs-actual plot")
	}
	return r.relPath("predicted_vs_actual.png"), nil
}

// ResidualHistogram renders the distribution of actual − predicted and
// returns the plot's public-relative path.
func (r *Renderer) ResidualHistogram(actual, predicted []float64) (string, error) {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return "", errors.NewValueError("plotting.ResidualHistogram", "actual and predicted must align")
	}

	residuals := make(plotter.Values, len(actual))
	for i := range actual {
		residuals[i] = actual[i] - predicted[i]
	}

	p := plot.New()
	p.Title.Text = "Residual Distribution"
	p.X.Label.Text = "Residual (Actual - Predicted)"

	hist, err := plotter.NewHist(residuals, 16)
	if err != nil {
		return "", errors.Wrap(err, "failed to build histogram")
	}
	p.Add(hist)

	path := filepath.Join(r.plotsDir, "residuals_hist.png")
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return "", errors.Wrap(err, "failed to save residual histogram")
	}
	return r.relPath("residuals_hist.png"), nil
}

// corrGrid adapts a square correlation matrix to plotter.GridXYZ.
type corrGrid struct {
	m *mat.Dense
}

func (g corrGrid) Dims() (int, int) {
	r, c := g.m.Dims()
	return c, r
}

func (g corrGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
