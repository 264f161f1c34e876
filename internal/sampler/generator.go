package sampler

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// pcgStream is the fixed second PCG seed word; the caller's seed is the first.
const pcgStream = 0x6d65617365727273

// NewSource returns the random source Generate uses for seed.
func NewSource(seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), pcgStream)
}

// Generate draws one sample for cfg. Draws happen in fixed blocks
// (X*, D, ε, η, Z noise) so every sequence is a deterministic function of
// cfg and seed. η and the Z noise are drawn even for uncorrupted
// observations, which keeps runs that differ only in p on common random
// numbers.
func Generate(cfg Config, seed int64) (*Sample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return generate(cfg, NewSource(seed)), nil
}

// GenerateFrom is Generate with a caller-supplied random source.
func GenerateFrom(cfg Config, src rand.Source) (*Sample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return generate(cfg, src), nil
}

func generate(cfg Config, src rand.Source) *Sample {
	n := cfg.N
	s := newSample(n)

	design := trueDistribution(cfg, src)
	for i := range s.True {
		s.True[i] = design.Rand()
	}

	corrupt := distuv.Bernoulli{P: cfg.P, Src: src}
	for i := range s.Corrupted {
		s.Corrupted[i] = corrupt.Rand() == 1
	}

	eps := distuv.Normal{Mu: 0, Sigma: cfg.SigmaEps, Src: src}
	for i, x := range s.True {
		s.Outcome[i] = cfg.Outcome.Mean(x, cfg.Beta) + eps.Rand()
	}

	eta := make([]float64, n)
	me := distuv.Normal{Mu: 0, Sigma: cfg.SigmaME, Src: src}
	for i := range eta {
		eta[i] = me.Rand()
	}

	aux := distuv.Normal{Mu: 0, Sigma: cfg.Model.AuxiliarySigma(), Src: src}
	for i, x := range s.True {
		s.Observed[i], s.Auxiliary[i] = cfg.Model.Perturb(x, s.Corrupted[i], eta[i], aux.Rand())
	}

	return s
}

func trueDistribution(cfg Config, src rand.Source) distuv.Rander {
	if cfg.Design == Uniform {
		return distuv.Uniform{Min: cfg.Lower, Max: cfg.Upper, Src: src}
	}
	return distuv.Normal{Mu: 0, Sigma: cfg.SigmaTrue, Src: src}
}
