package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/measim/internal/estimate"
	"github.com/san-kum/measim/internal/kernel"
	"github.com/san-kum/measim/internal/reference"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.LightSeaGreen,
	asciigraph.Red,
	asciigraph.Gold,
	asciigraph.MediumOrchid,
	asciigraph.DodgerBlue,
}

// SNRCharts plots λ and the relative bias against the signal-to-noise
// ratio.
func SNRCharts(c estimate.SNRCurve, width, height int) string {
	lambda := asciigraph.Plot(c.Lambda,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("attenuation λ = SNR/(1+SNR), SNR %.1f..%.1f", c.SNR[0], c.SNR[len(c.SNR)-1])),
	)
	bias := asciigraph.Plot(c.BiasPct,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption("bias % = (1-λ)·100"),
	)
	return lambda + "\n\n" + bias
}

// PowerChart plots the published power curves against 1-λ.
func PowerChart(p reference.PowerCurves, width, height int) string {
	legend := ""
	for i, m := range p.Models {
		if i > 0 {
			legend += ", "
		}
		legend += "model " + m
	}
	return asciigraph.PlotMany(p.Rates,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(seriesColors[:len(p.Rates)]...),
		asciigraph.Caption(fmt.Sprintf("rejection probability vs 1-λ (%s)", legend)),
	)
}

// KernelChart overlays kernels evaluated on [-2, 2].
func KernelChart(ks []kernel.Kernel, width, height int) string {
	series := make([][]float64, len(ks))
	legend := ""
	for i, k := range ks {
		_, series[i] = k.Grid(-2, 2, 200)
		if i > 0 {
			legend += ", "
		}
		legend += k.Name
	}
	colors := seriesColors
	if len(ks) < len(colors) {
		colors = colors[:len(ks)]
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption("K(u), u ∈ [-2, 2]: "+legend),
	)
}

// SweepChart plots the mean OLS slope and λβ across a noise grid.
func SweepChart(sigmas, meanSlopes, predicted []float64, width, height int) string {
	if len(sigmas) == 0 {
		return ""
	}
	return asciigraph.PlotMany([][]float64{meanSlopes, predicted},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.LightSeaGreen),
		asciigraph.Caption(fmt.Sprintf("mean OLS slope (red) and λβ (green), σ_ME %.2f..%.2f", sigmas[0], sigmas[len(sigmas)-1])),
	)
}
