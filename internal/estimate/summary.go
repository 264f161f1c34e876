package estimate

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/san-kum/measim/internal/sampler"
)

// ErrorPercentiles are the percentiles of X - X* reported by Summarize.
var ErrorPercentiles = []float64{5, 25, 50, 75, 95}

// Summary describes one sample.
type Summary struct {
	N               int
	Corrupted       int
	MeanTrue        float64
	MeanObserved    float64
	MeanOutcome     float64
	SDTrue          float64
	SDObserved      float64
	SDError         float64
	CorrObservedAux float64
	CorrTrueAux     float64
	ErrorQuantiles  []float64
}

// CorruptedShare is the fraction of observations carrying measurement error.
func (s Summary) CorruptedShare() float64 {
	if s.N == 0 {
		return 0
	}
	return float64(s.Corrupted) / float64(s.N)
}

// Summarize computes descriptive statistics of s. Correlations of a
// constant sequence are reported as zero.
func Summarize(s *sampler.Sample) (Summary, error) {
	if s.Len() < 2 {
		return Summary{}, errors.Wrapf(ErrDegenerateSample, "%d observations", s.Len())
	}
	errs := s.Errors()
	out := Summary{
		N:              s.Len(),
		Corrupted:      s.CorruptedCount(),
		ErrorQuantiles: make([]float64, len(ErrorPercentiles)),
	}

	var err error
	if out.MeanTrue, err = stats.Mean(s.True); err != nil {
		return Summary{}, errors.Wrap(err, "mean of true values")
	}
	if out.MeanObserved, err = stats.Mean(s.Observed); err != nil {
		return Summary{}, errors.Wrap(err, "mean of observed values")
	}
	if out.MeanOutcome, err = stats.Mean(s.Outcome); err != nil {
		return Summary{}, errors.Wrap(err, "mean of outcomes")
	}
	if out.SDTrue, err = stats.StandardDeviationSample(s.True); err != nil {
		return Summary{}, errors.Wrap(err, "spread of true values")
	}
	if out.SDObserved, err = stats.StandardDeviationSample(s.Observed); err != nil {
		return Summary{}, errors.Wrap(err, "spread of observed values")
	}
	if out.SDError, err = stats.StandardDeviationSample(errs); err != nil {
		return Summary{}, errors.Wrap(err, "spread of measurement error")
	}
	if out.CorrObservedAux, err = correlation(s.Observed, s.Auxiliary); err != nil {
		return Summary{}, errors.Wrap(err, "correlation of observed and auxiliary")
	}
	if out.CorrTrueAux, err = correlation(s.True, s.Auxiliary); err != nil {
		return Summary{}, errors.Wrap(err, "correlation of true and auxiliary")
	}
	for i, p := range ErrorPercentiles {
		if out.ErrorQuantiles[i], err = stats.Percentile(errs, p); err != nil {
			return Summary{}, errors.Wrapf(err, "percentile %g of measurement error", p)
		}
	}
	return out, nil
}

func correlation(a, b []float64) (float64, error) {
	sa, err := stats.StandardDeviationSample(a)
	if err != nil {
		return 0, err
	}
	sb, err := stats.StandardDeviationSample(b)
	if err != nil {
		return 0, err
	}
	if sa == 0 || sb == 0 {
		return 0, nil
	}
	return stats.Correlation(a, b)
}
