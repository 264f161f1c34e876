package estimate

import (
	"gonum.org/v1/gonum/floats"
)

// Attenuation returns λ = varTrue / (varTrue + varNoise). Without noise
// there is no attenuation and λ is 1, including the degenerate case where
// both variances are zero.
func Attenuation(varTrue, varNoise float64) float64 {
	if varNoise <= 0 {
		return 1
	}
	return varTrue / (varTrue + varNoise)
}

// AttenuationFromSNR returns λ = SNR / (1 + SNR).
func AttenuationFromSNR(snr float64) float64 {
	return snr / (1 + snr)
}

// SNRCurve tabulates λ and the relative bias (1-λ)·100 over an evenly
// spaced grid of signal-to-noise ratios.
type SNRCurve struct {
	SNR     []float64
	Lambda  []float64
	BiasPct []float64
}

// NewSNRCurve evaluates the curve at points SNR values from lo to hi.
func NewSNRCurve(lo, hi float64, points int) SNRCurve {
	if points < 2 {
		points = 2
	}
	c := SNRCurve{
		SNR:     floats.Span(make([]float64, points), lo, hi),
		Lambda:  make([]float64, points),
		BiasPct: make([]float64, points),
	}
	for i, snr := range c.SNR {
		c.Lambda[i] = AttenuationFromSNR(snr)
		c.BiasPct[i] = (1 - c.Lambda[i]) * 100
	}
	return c
}
