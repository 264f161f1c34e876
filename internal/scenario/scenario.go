// Package scenario holds the small illustrative data sets drawn alongside
// the main generator: observed against true values, classical against
// non-classical error, and administrative against survey earnings.
package scenario

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/measim/internal/sampler"
)

// Default sizes of the illustrative data sets.
const (
	TrueVsObservedN  = 100
	ErrorComparisonN = 200
	EarningsN        = 1000
)

// Earnings parameters of the administrative wage illustration.
const (
	EarningsLogMean  = 8.5
	EarningsLogSigma = 0.7
	EarningsCap      = 16500
	SurveyNoiseSD    = 1000
)

// Pairs is a true sequence with its noisy measurement.
type Pairs struct {
	True     []float64
	Observed []float64
	Errors   []float64
}

// TrueVsObserved draws X* ~ U(0,10) and X = X* + N(0, 1.5).
func TrueVsObserved(n int, seed int64) *Pairs {
	src := sampler.NewSource(seed)
	p := &Pairs{
		True:     make([]float64, n),
		Observed: make([]float64, n),
		Errors:   make([]float64, n),
	}
	u := distuv.Uniform{Min: 0, Max: 10, Src: src}
	for i := range p.True {
		p.True[i] = u.Rand()
	}
	eta := distuv.Normal{Mu: 0, Sigma: 1.5, Src: src}
	for i, x := range p.True {
		p.Errors[i] = eta.Rand()
		p.Observed[i] = x + p.Errors[i]
	}
	return p
}

// Comparison contrasts classical error, independent of the true value,
// with non-classical error whose spread grows as 0.3·X*.
type Comparison struct {
	True         []float64
	Classical    []float64
	NonClassical []float64
}

// ErrorComparison draws X* ~ U(1,10), classical η ~ N(0,1) and
// non-classical η ~ N(0, 0.3·X*).
func ErrorComparison(n int, seed int64) *Comparison {
	src := sampler.NewSource(seed)
	c := &Comparison{
		True:         make([]float64, n),
		Classical:    make([]float64, n),
		NonClassical: make([]float64, n),
	}
	u := distuv.Uniform{Min: 1, Max: 10, Src: src}
	for i := range c.True {
		c.True[i] = u.Rand()
	}
	std := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	for i := range c.Classical {
		c.Classical[i] = std.Rand()
	}
	for i, x := range c.True {
		c.NonClassical[i] = std.Rand() * 0.3 * x
	}
	return c
}

// Earnings mimics two sources of one wage: administrative records and a
// survey answer, plus the prior-year administrative record.
type Earnings struct {
	Admin      []float64
	PriorAdmin []float64
	Survey     []float64
}

// Differences returns Admin - Survey per worker.
func (e *Earnings) Differences() []float64 {
	d := make([]float64, len(e.Admin))
	for i := range d {
		d[i] = e.Admin[i] - e.Survey[i]
	}
	return d
}

// EarningsData draws administrative wages from a lognormal capped at the
// social-security maximum, prior-year wages within ±20% and survey wages
// with additive N(0, 1000) reporting error.
func EarningsData(n int, seed int64) *Earnings {
	src := sampler.NewSource(seed)
	e := &Earnings{
		Admin:      make([]float64, n),
		PriorAdmin: make([]float64, n),
		Survey:     make([]float64, n),
	}
	wage := distuv.LogNormal{Mu: EarningsLogMean, Sigma: EarningsLogSigma, Src: src}
	for i := range e.Admin {
		e.Admin[i] = math.Min(math.Max(wage.Rand(), 0), EarningsCap)
	}
	drift := distuv.Uniform{Min: 0.8, Max: 1.2, Src: src}
	for i, w := range e.Admin {
		e.PriorAdmin[i] = w * drift.Rand()
	}
	report := distuv.Normal{Mu: 0, Sigma: SurveyNoiseSD, Src: src}
	for i, w := range e.Admin {
		e.Survey[i] = w + report.Rand()
	}
	return e
}
