package sampler

import (
	"strings"

	"github.com/pkg/errors"
)

// Model selects how the observed value and the auxiliary measurement are
// derived from the true value.
type Model int

const (
	// Classical adds homoskedastic noise to X; Z is X* plus N(0, 0.3).
	Classical Model = iota
	// Heteroskedastic scales the noise in X by exp(-|X* - 0.5|).
	Heteroskedastic
	// DuallyHeteroskedastic scales the noise in both X and Z.
	DuallyHeteroskedastic
	// NonlinearAuxiliary makes Z a quadratic transform of X* plus noise.
	NonlinearAuxiliary
)

// Models lists every noise model in display order.
var Models = []Model{Classical, Heteroskedastic, DuallyHeteroskedastic, NonlinearAuxiliary}

var modelNames = map[Model]string{
	Classical:             "classical",
	Heteroskedastic:       "heteroskedastic",
	DuallyHeteroskedastic: "dual",
	NonlinearAuxiliary:    "nonlinear",
}

var modelNumerals = map[Model]string{
	Classical:             "I",
	Heteroskedastic:       "II",
	DuallyHeteroskedastic: "III",
	NonlinearAuxiliary:    "IV",
}

func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return "unknown"
}

// Numeral returns the roman numeral used for the model in the literature.
func (m Model) Numeral() string { return modelNumerals[m] }

// Valid reports whether m is one of the four defined models.
func (m Model) Valid() bool {
	_, ok := modelNames[m]
	return ok
}

// ParseModel accepts a model name, its roman numeral or its 1-based index.
func ParseModel(s string) (Model, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modelNames {
		if key == name || key == strings.ToLower(modelNumerals[m]) {
			return m, nil
		}
	}
	switch key {
	case "1":
		return Classical, nil
	case "2":
		return Heteroskedastic, nil
	case "3", "dually-heteroskedastic":
		return DuallyHeteroskedastic, nil
	case "4", "nonlinear-auxiliary":
		return NonlinearAuxiliary, nil
	}
	return 0, errors.Wrapf(ErrUnknownModel, "%q", s)
}

// Design is the distribution of the true value X*.
type Design int

const (
	// Normal draws X* ~ N(0, SigmaTrue).
	Normal Design = iota
	// Uniform draws X* ~ U(Lower, Upper).
	Uniform
)

func (d Design) String() string {
	switch d {
	case Normal:
		return "normal"
	case Uniform:
		return "uniform"
	}
	return "unknown"
}

// ParseDesign parses "normal" or "uniform".
func ParseDesign(s string) (Design, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "gaussian":
		return Normal, nil
	case "uniform":
		return Uniform, nil
	}
	return 0, errors.Wrapf(ErrUnknownDesign, "%q", s)
}

// Outcome is the functional form of Y given X*.
type Outcome int

const (
	// Quadratic is Y = X*² + 0.5·X* + ε.
	Quadratic Outcome = iota
	// Linear is Y = β·X* + ε.
	Linear
)

func (o Outcome) String() string {
	switch o {
	case Quadratic:
		return "quadratic"
	case Linear:
		return "linear"
	}
	return "unknown"
}

// ParseOutcome parses "quadratic" or "linear".
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quadratic":
		return Quadratic, nil
	case "linear":
		return Linear, nil
	}
	return 0, errors.Wrapf(ErrUnknownOutcome, "%q", s)
}

// Mean returns E[Y | X* = x] for the outcome form.
func (o Outcome) Mean(x, beta float64) float64 {
	if o == Linear {
		return beta * x
	}
	return x*x + 0.5*x
}

// Config holds the parameters of one generator invocation.
type Config struct {
	N         int
	Beta      float64
	SigmaTrue float64
	SigmaME   float64
	SigmaEps  float64
	P         float64
	Lower     float64
	Upper     float64
	Model     Model
	Design    Design
	Outcome   Outcome
}

// DefaultConfig returns the classical model over U(0,1) with a quadratic
// outcome and measurement error present for half the observations.
func DefaultConfig() Config {
	return Config{
		N:         200,
		Beta:      1.5,
		SigmaTrue: 1.5,
		SigmaME:   0.5,
		SigmaEps:  0.5,
		P:         0.5,
		Lower:     0,
		Upper:     1,
		Model:     Classical,
		Design:    Uniform,
		Outcome:   Quadratic,
	}
}

// Validate rejects configurations that cannot be sampled.
func (c Config) Validate() error {
	switch {
	case c.N <= 0:
		return errors.Wrapf(ErrInvalidConfig, "sample size %d", c.N)
	case c.SigmaTrue < 0 || c.SigmaME < 0 || c.SigmaEps < 0:
		return errors.Wrap(ErrInvalidConfig, "negative standard deviation")
	case c.P < 0 || c.P > 1:
		return errors.Wrapf(ErrInvalidConfig, "corruption probability %g", c.P)
	case !c.Model.Valid():
		return errors.Wrapf(ErrUnknownModel, "%d", int(c.Model))
	case c.Design != Normal && c.Design != Uniform:
		return errors.Wrapf(ErrUnknownDesign, "%d", int(c.Design))
	case c.Outcome != Quadratic && c.Outcome != Linear:
		return errors.Wrapf(ErrUnknownOutcome, "%d", int(c.Outcome))
	case c.Design == Uniform && c.Upper < c.Lower:
		return errors.Wrapf(ErrInvalidConfig, "uniform bounds [%g, %g]", c.Lower, c.Upper)
	}
	return nil
}

// TrueMean is E[X*] under the design.
func (c Config) TrueMean() float64 {
	if c.Design == Uniform {
		return (c.Lower + c.Upper) / 2
	}
	return 0
}

// TrueVariance is Var(X*) under the design.
func (c Config) TrueVariance() float64 {
	if c.Design == Uniform {
		w := c.Upper - c.Lower
		return w * w / 12
	}
	return c.SigmaTrue * c.SigmaTrue
}

// TrueSlope is the population slope of the best linear predictor of Y
// given X*. For the quadratic outcome over a symmetric design it equals
// 2·E[X*] + 0.5.
func (c Config) TrueSlope() float64 {
	if c.Outcome == Linear {
		return c.Beta
	}
	return 2*c.TrueMean() + 0.5
}
