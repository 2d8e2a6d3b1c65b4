// Package diagnostics renders residual diagnostics for regression predictions.
//
// Residuals are yTrue - yPred. The residual plot places predictions on the
// x axis and residuals on the y axis with a dashed zero reference line, so
// bias shows up as an offset and heteroscedasticity as a funnel shape.
package diagnostics

import (
	"image/color"
	"io"

	"github.com/YuminosukeSato/statmetrics/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Residuals returns yTrue[i] - yPred[i] for every i in a new slice.
// A NaN or Inf residual yields a NumericalInstabilityError.
func Residuals(yTrue, yPred []float64) ([]float64, error) {
	if len(yTrue) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Residuals")
	}
	if len(yPred) != len(yTrue) {
		return nil, errors.NewDimensionError("Residuals", len(yTrue), len(yPred), 0)
	}

	res := make([]float64, len(yTrue))
	floats.SubTo(res, yTrue, yPred)
	if err := errors.CheckNumericalStability("Residuals", res); err != nil {
		return nil, err
	}
	return res, nil
}

// ResidualPlot builds a predicted-vs-residual scatter plot.
// Non-finite inputs are rejected by Residuals before any plotting.
func ResidualPlot(yTrue, yPred []float64, title string) (*plot.Plot, error) {
	res, err := Residuals(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, len(res))
	for i := range res {
		pts[i].X = yPred[i]
		pts[i].Y = res[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "predicted"
	p.Y.Label.Text = "residual"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrapf(err, "ResidualPlot: scatter of %d points", len(pts))
	}
	scatter.GlyphStyle.Color = color.RGBA{B: 200, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(2)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	zero.Color = color.Gray{Y: 96}

	p.Add(plotter.NewGrid(), zero, scatter)
	return p, nil
}

// WriteResidualPNG renders the residual plot as a PNG image of the given size.
func WriteResidualPNG(w io.Writer, yTrue, yPred []float64, width, height vg.Length) (err error) {
	defer errors.Recover(&err, "WriteResidualPNG")

	p, err := ResidualPlot(yTrue, yPred, "Residuals")
	if err != nil {
		return err
	}

	img := vgimg.New(width, height)
	p.Draw(draw.New(img))

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(err, "WriteResidualPNG: encode")
	}
	return nil
}
