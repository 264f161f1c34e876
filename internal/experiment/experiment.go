package experiment

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/measim/internal/estimate"
	"github.com/san-kum/measim/internal/sampler"
)

// Result is everything one interaction produces: the sample and the
// numbers shown beside it. It is owned by the caller that ran it.
type Result struct {
	Config      sampler.Config
	Seed        int64
	Sample      *sampler.Sample
	Fit         estimate.Fit
	Summary     estimate.Summary
	Fingerprint uint64
}

type Experiment struct {
	cfg  sampler.Config
	seed int64
	log  logrus.FieldLogger
}

func New(cfg sampler.Config, seed int64) *Experiment {
	return &Experiment{cfg: cfg, seed: seed, log: logrus.StandardLogger()}
}

// WithLogger replaces the logger used for debug traces.
func (e *Experiment) WithLogger(log logrus.FieldLogger) *Experiment {
	if log != nil {
		e.log = log
	}
	return e
}

// Run generates the sample, fits it and summarises it. Runs are short and
// CPU bound; ctx is only checked before starting.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := sampler.Generate(e.cfg, e.seed)
	if err != nil {
		return nil, errors.Wrap(err, "generate sample")
	}

	fit, err := estimate.FitSample(s, e.cfg)
	if err != nil {
		return nil, errors.Wrap(err, "fit sample")
	}

	var sum estimate.Summary
	if s.Len() >= 2 {
		if sum, err = estimate.Summarize(s); err != nil {
			return nil, errors.Wrap(err, "summarize sample")
		}
	}

	r := &Result{
		Config:      e.cfg,
		Seed:        e.seed,
		Sample:      s,
		Fit:         fit,
		Summary:     sum,
		Fingerprint: s.Fingerprint(),
	}

	e.log.WithFields(logrus.Fields{
		"model":       e.cfg.Model,
		"n":           e.cfg.N,
		"seed":        e.seed,
		"slope":       fit.Slope,
		"lambda":      fit.Lambda,
		"fingerprint": r.Fingerprint,
	}).Debug("sample generated")

	return r, nil
}
