package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/measim/internal/estimate"
	"github.com/san-kum/measim/internal/sampler"
)

// Frame wraps a plot in a titled panel with its axis ranges.
func Frame(title, xLabel, yLabel string, p *Plot, colour bool) string {
	body := p.String()
	if colour {
		body = p.Render(PlotInks)
	}
	b := p.Bounds
	header := Title.Render(title)
	yAxis := Subtle.Render(fmt.Sprintf("%s ∈ [%.2f, %.2f]", yLabel, b.YMin, b.YMax))
	xAxis := Subtle.Render(fmt.Sprintf("%s ∈ [%.2f, %.2f]", xLabel, b.XMin, b.XMax))
	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, header, yAxis, body, xAxis))
}

// AttenuationPlot draws outcome against observed value with the true
// relation and the OLS fit overlaid.
func AttenuationPlot(s *sampler.Sample, cfg sampler.Config, fit estimate.Fit, cols, rows int, colour bool) string {
	p := AttenuationCanvas(s, cfg, fit, cols, rows)

	legend := lipgloss.JoinHorizontal(lipgloss.Top,
		PlotInks[InkTrue].Render("── true relation"), "  ",
		PlotInks[InkFit].Render(fmt.Sprintf("── OLS β̂ = %.3f", fit.Slope)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, Frame("Y vs X (observed)", "X", "Y", p, colour), legend)
}

// AttenuationCanvas draws the attenuation scatter onto a bare plot.
func AttenuationCanvas(s *sampler.Sample, cfg sampler.Config, fit estimate.Fit, cols, rows int) *Plot {
	p := NewPlot(cols, rows, BoundsOf(s.Observed, s.Outcome))
	p.Scatter(s.Observed, s.Outcome, InkPoint)
	p.Func(func(x float64) float64 { return cfg.Outcome.Mean(x, cfg.Beta) }, InkTrue)
	p.Func(func(x float64) float64 { return fit.Intercept + fit.Slope*x }, InkFit)
	return p
}

// PairPlot draws the two-panel comparison: Y against X, and X against Z.
func PairPlot(s *sampler.Sample, cols, rows int, colour bool) string {
	left := NewPlot(cols, rows, BoundsOf(s.Observed, s.Outcome))
	left.Scatter(s.Observed, s.Outcome, InkPoint)

	right := NewPlot(cols, rows, BoundsOf(s.Auxiliary, s.Observed))
	right.Scatter(s.Auxiliary, s.Observed, InkPoint)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		Frame("Y vs X", "X", "Y", left, colour),
		Frame("X vs Z", "Z", "X", right, colour),
	)
}

// ScatterPanel draws a single titled scatter of ys against xs.
func ScatterPanel(title, xLabel, yLabel string, xs, ys []float64, cols, rows int, colour bool) string {
	p := NewPlot(cols, rows, BoundsOf(xs, ys))
	p.Scatter(xs, ys, InkPoint)
	return Frame(title, xLabel, yLabel, p, colour)
}

// SidePanels draws two scatters side by side on shared bounds.
func SidePanels(leftTitle, rightTitle, xLabel, yLabel string, xs, left, right []float64, cols, rows int, colour bool) string {
	b := BoundsOf(xs, left).Union(BoundsOf(xs, right))
	lp := NewPlot(cols, rows, b)
	lp.Scatter(xs, left, InkPoint)
	lp.Func(func(float64) float64 { return 0 }, InkFit)
	rp := NewPlot(cols, rows, b)
	rp.Scatter(xs, right, InkPoint)
	rp.Func(func(float64) float64 { return 0 }, InkFit)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		Frame(leftTitle, xLabel, yLabel, lp, colour),
		Frame(rightTitle, xLabel, yLabel, rp, colour),
	)
}

// FitSummary renders the headline numbers of a fit.
func FitSummary(fit estimate.Fit) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		Metric("true β", fmt.Sprintf("%.3f", fit.TrueSlope)), "   ",
		Metric("OLS β̂", fmt.Sprintf("%.3f (%+.3f)", fit.Slope, fit.Bias())), "   ",
		Metric("λ", fmt.Sprintf("%.3f", fit.Lambda)), "   ",
		Metric("λβ", fmt.Sprintf("%.3f", fit.PredictedSlope())),
	)
}

// SampleSummary renders descriptive statistics of a sample.
func SampleSummary(sum estimate.Summary) string {
	q := sum.ErrorQuantiles
	lines := []string{
		Metric("n", fmt.Sprintf("%d", sum.N)) + "   " +
			Metric("corrupted", fmt.Sprintf("%d (%.0f%%)", sum.Corrupted, 100*sum.CorruptedShare())),
		Metric("mean X*", fmt.Sprintf("%.3f", sum.MeanTrue)) + "   " +
			Metric("mean X", fmt.Sprintf("%.3f", sum.MeanObserved)) + "   " +
			Metric("mean Y", fmt.Sprintf("%.3f", sum.MeanOutcome)),
		Metric("sd X*", fmt.Sprintf("%.3f", sum.SDTrue)) + "   " +
			Metric("sd X", fmt.Sprintf("%.3f", sum.SDObserved)) + "   " +
			Metric("sd η", fmt.Sprintf("%.3f", sum.SDError)),
		Metric("corr(X,Z)", fmt.Sprintf("%.3f", sum.CorrObservedAux)) + "   " +
			Metric("corr(X*,Z)", fmt.Sprintf("%.3f", sum.CorrTrueAux)),
	}
	if len(q) == len(estimate.ErrorPercentiles) {
		row := MetricLabel.Render("η quantiles")
		for i, p := range estimate.ErrorPercentiles {
			row += " " + Metric(fmt.Sprintf("p%g", p), fmt.Sprintf("%.3f", q[i]))
		}
		lines = append(lines, row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
