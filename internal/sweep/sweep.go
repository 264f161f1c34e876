// Package sweep runs Monte Carlo replications of the generator over a grid
// of measurement-error levels.
package sweep

import (
	"context"
	"fmt"
	"runtime"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/measim/internal/experiment"
	"github.com/san-kum/measim/internal/reference"
	"github.com/san-kum/measim/internal/sampler"
)

var ErrInvalidSweep = errors.New("sweep: invalid sweep")

// Point aggregates the replications at one noise level.
type Point struct {
	SigmaME      float64
	Replications int
	MeanSlope    float64
	SDSlope      float64
	MeanLambda   float64
	Predicted    float64
	TrueSlope    float64
}

// Bias is the mean slope minus the true slope.
func (p Point) Bias() float64 { return p.MeanSlope - p.TrueSlope }

type Sweep struct {
	base      sampler.Config
	sigmas    []float64
	reps      int
	seedStart int64
	workers   int
	log       logrus.FieldLogger
}

// New sweeps base over sigmas with reps replications each. Replication r
// uses seed seedStart+r at every grid point.
func New(base sampler.Config, sigmas []float64, reps int, seedStart int64) *Sweep {
	return &Sweep{
		base:      base,
		sigmas:    sigmas,
		reps:      reps,
		seedStart: seedStart,
		workers:   runtime.GOMAXPROCS(0),
		log:       logrus.StandardLogger(),
	}
}

func (s *Sweep) WithWorkers(n int) *Sweep {
	if n > 0 {
		s.workers = n
	}
	return s
}

func (s *Sweep) WithLogger(log logrus.FieldLogger) *Sweep {
	if log != nil {
		s.log = log
	}
	return s
}

// Run executes every replication in parallel. Each replication owns its
// random source, so the result does not depend on the worker count.
func (s *Sweep) Run(ctx context.Context) ([]Point, error) {
	if len(s.sigmas) == 0 {
		return nil, errors.Wrap(ErrInvalidSweep, "empty grid")
	}
	if s.reps < 1 {
		return nil, errors.Wrapf(ErrInvalidSweep, "%d replications", s.reps)
	}

	slopes := make([][]float64, len(s.sigmas))
	lambdas := make([][]float64, len(s.sigmas))
	predicted := make([][]float64, len(s.sigmas))
	for i := range s.sigmas {
		slopes[i] = make([]float64, s.reps)
		lambdas[i] = make([]float64, s.reps)
		predicted[i] = make([]float64, s.reps)
	}

	configs := make([]sampler.Config, len(s.sigmas))
	for i, sigma := range s.sigmas {
		configs[i] = s.base
		configs[i].SigmaME = sigma
		if err := configs[i].Validate(); err != nil {
			return nil, errors.Wrapf(err, "grid point σ_ME=%g", sigma)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, cfg := range configs {
		for r := 0; r < s.reps; r++ {
			g.Go(func() error {
				res, err := experiment.New(cfg, s.seedStart+int64(r)).
					WithLogger(s.log).
					Run(gctx)
				if err != nil {
					return errors.Wrapf(err, "σ_ME=%g replication %d", cfg.SigmaME, r)
				}
				slopes[i][r] = res.Fit.Slope
				lambdas[i][r] = res.Fit.Lambda
				predicted[i][r] = res.Fit.PredictedSlope()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := make([]Point, len(s.sigmas))
	for i, sigma := range s.sigmas {
		p := Point{SigmaME: sigma, Replications: s.reps, TrueSlope: configs[i].TrueSlope()}
		p.MeanSlope, _ = stats.Mean(slopes[i])
		p.MeanLambda, _ = stats.Mean(lambdas[i])
		p.Predicted, _ = stats.Mean(predicted[i])
		if s.reps > 1 {
			p.SDSlope, _ = stats.StandardDeviationSample(slopes[i])
		}
		points[i] = p

		s.log.WithFields(logrus.Fields{
			"sigma_me":   sigma,
			"mean_slope": p.MeanSlope,
			"lambda":     p.MeanLambda,
		}).Debug("sweep point done")
	}
	return points, nil
}

// Grid returns points evenly spaced noise levels over [lo, hi].
func Grid(lo, hi float64, points int) []float64 {
	if points < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, points), lo, hi)
}

// Table lays the sweep out like the published reference tables.
func Table(points []Point) reference.Table {
	t := reference.Table{
		Name:    "sweep",
		Title:   "Monte Carlo slope against measurement-error level",
		Headers: []string{"σ_ME", "reps", "mean β̂", "sd β̂", "λ", "λ·β", "bias"},
	}
	for _, p := range points {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%.3f", p.SigmaME),
			fmt.Sprintf("%d", p.Replications),
			fmt.Sprintf("%.4f", p.MeanSlope),
			fmt.Sprintf("%.4f", p.SDSlope),
			fmt.Sprintf("%.4f", p.MeanLambda),
			fmt.Sprintf("%.4f", p.Predicted),
			fmt.Sprintf("%+.4f", p.Bias()),
		})
	}
	return t
}

// Series splits points into the columns the sweep chart plots.
func Series(points []Point) (sigmas, meanSlopes, predicted []float64) {
	for _, p := range points {
		sigmas = append(sigmas, p.SigmaME)
		meanSlopes = append(meanSlopes, p.MeanSlope)
		predicted = append(predicted, p.Predicted)
	}
	return sigmas, meanSlopes, predicted
}
