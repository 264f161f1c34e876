package sampler

import "math"

// Auxiliary noise spreads used by the literature's simulation designs.
const (
	AuxSigma          = 0.3
	NonlinearAuxSigma = 0.2
)

// HeteroskedasticScale is the factor applied to measurement error in the
// heteroskedastic models: exp(-|x - 0.5|).
func HeteroskedasticScale(x float64) float64 {
	return math.Exp(-math.Abs(x - 0.5))
}

// ObservedScale returns the multiplier applied to the measurement error
// of X at true value x.
func (m Model) ObservedScale(x float64) float64 {
	switch m {
	case Heteroskedastic, DuallyHeteroskedastic:
		return HeteroskedasticScale(x)
	}
	return 1
}

// AuxiliaryScale returns the multiplier applied to the noise of Z at true
// value x.
func (m Model) AuxiliaryScale(x float64) float64 {
	if m == DuallyHeteroskedastic {
		return HeteroskedasticScale(x)
	}
	return 1
}

// AuxiliarySigma is the spread of the unscaled noise in Z.
func (m Model) AuxiliarySigma() float64 {
	if m == NonlinearAuxiliary {
		return NonlinearAuxSigma
	}
	return AuxSigma
}

// AuxiliaryCenter is the noiseless value of Z at true value x.
func (m Model) AuxiliaryCenter(x float64) float64 {
	if m == NonlinearAuxiliary {
		d := x - 1
		return -d * d
	}
	return x
}

// Perturb derives the observed and auxiliary values of one observation
// from its true value, corruption indicator and standard normal draws
// eta (for X, already multiplied by sigmaME) and zeta (for Z, already
// multiplied by AuxiliarySigma).
func (m Model) Perturb(x float64, corrupted bool, eta, zeta float64) (observed, auxiliary float64) {
	observed = x
	if corrupted {
		observed += eta * m.ObservedScale(x)
	}
	auxiliary = m.AuxiliaryCenter(x) + zeta*m.AuxiliaryScale(x)
	return observed, auxiliary
}
