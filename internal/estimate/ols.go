package estimate

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/measim/internal/sampler"
)

// ErrDegenerateSample indicates a sample with too few observations or no
// variation in the observed value.
var ErrDegenerateSample = errors.New("estimate: degenerate sample")

// Fit is the regression of outcome on observed value for one sample.
type Fit struct {
	Slope         float64
	Intercept     float64
	TrueSlope     float64
	TrueVariance  float64
	NoiseVariance float64
	Lambda        float64
}

// Bias is the estimated slope minus the true slope.
func (f Fit) Bias() float64 { return f.Slope - f.TrueSlope }

// PredictedSlope is the slope classical measurement error implies: λ·β.
func (f Fit) PredictedSlope() float64 { return f.Lambda * f.TrueSlope }

// Line returns points evenly spaced points of the fitted line over [lo, hi].
func (f Fit) Line(lo, hi float64, points int) (xs, ys []float64) {
	return Grid(lo, hi, points, func(x float64) float64 { return f.Intercept + f.Slope*x })
}

// OLS regresses y on x with an intercept.
func OLS(x, y []float64) (intercept, slope float64, err error) {
	if len(x) != len(y) {
		return 0, 0, errors.Wrapf(ErrDegenerateSample, "length mismatch %d != %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, 0, errors.Wrapf(ErrDegenerateSample, "%d observations", len(x))
	}
	if stat.Variance(x, nil) == 0 {
		return 0, 0, errors.Wrap(ErrDegenerateSample, "regressor has zero variance")
	}
	intercept, slope = stat.LinearRegression(x, y, nil, false)
	return intercept, slope, nil
}

// NoiseVariance is the population variance of the measurement error in X
// for cfg: p·σ²_ME·E[s(X*)²], with the expectation of the squared
// heteroskedastic scale taken over the drawn true values.
func NoiseVariance(s *sampler.Sample, cfg sampler.Config) float64 {
	if cfg.SigmaME == 0 || cfg.P == 0 || s.Len() == 0 {
		return 0
	}
	var m float64
	for _, x := range s.True {
		k := cfg.Model.ObservedScale(x)
		m += k * k
	}
	m /= float64(s.Len())
	return cfg.P * cfg.SigmaME * cfg.SigmaME * m
}

// FitSample regresses the outcome on the observed value and attaches the
// population attenuation factor. When no measurement error can occur the
// slope is the true slope and λ is 1.
func FitSample(s *sampler.Sample, cfg sampler.Config) (Fit, error) {
	f := Fit{
		TrueSlope:     cfg.TrueSlope(),
		TrueVariance:  cfg.TrueVariance(),
		NoiseVariance: NoiseVariance(s, cfg),
	}
	f.Lambda = Attenuation(f.TrueVariance, f.NoiseVariance)

	if cfg.SigmaME == 0 {
		if s.Len() == 0 {
			return Fit{}, errors.Wrap(ErrDegenerateSample, "empty sample")
		}
		f.Slope = f.TrueSlope
		f.Intercept = stat.Mean(s.Outcome, nil) - f.Slope*stat.Mean(s.Observed, nil)
		return f, nil
	}

	intercept, slope, err := OLS(s.Observed, s.Outcome)
	if err != nil {
		return Fit{}, err
	}
	f.Intercept, f.Slope = intercept, slope
	return f, nil
}

// Grid evaluates fn at points evenly spaced values over [lo, hi].
func Grid(lo, hi float64, points int, fn func(float64) float64) (xs, ys []float64) {
	if points < 2 {
		points = 2
	}
	xs = floats.Span(make([]float64, points), lo, hi)
	ys = make([]float64, points)
	for i, x := range xs {
		ys[i] = fn(x)
	}
	return xs, ys
}
