package experiment

import (
	"github.com/san-kum/measim/internal/sampler"
)

// ModelInfo describes a noise model for menus and listings.
type ModelInfo struct {
	Model       sampler.Model
	Title       string
	Description string
}

var modelInfo = []ModelInfo{
	{sampler.Classical, "I: classical", "homoskedastic error, Z = X* + N(0, 0.3)"},
	{sampler.Heteroskedastic, "II: heteroskedastic", "error scaled by exp(-|X* - 0.5|)"},
	{sampler.DuallyHeteroskedastic, "III: dually heteroskedastic", "X and Z errors both scaled"},
	{sampler.NonlinearAuxiliary, "IV: nonlinear", "Z = -(X* - 1)² + N(0, 0.2)"},
}

// Models lists the noise models in display order.
func Models() []ModelInfo {
	out := make([]ModelInfo, len(modelInfo))
	copy(out, modelInfo)
	return out
}

// Describe returns the display info of m.
func Describe(m sampler.Model) ModelInfo {
	for _, info := range modelInfo {
		if info.Model == m {
			return info
		}
	}
	return ModelInfo{Model: m, Title: m.String()}
}
