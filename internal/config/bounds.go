package config

import "math"

// Field names a tunable configuration value.
type Field string

const (
	FieldN         Field = "n"
	FieldBeta      Field = "beta"
	FieldSigmaTrue Field = "sigma_true"
	FieldSigmaME   Field = "sigma_me"
	FieldSigmaEps  Field = "sigma_eps"
	FieldP         Field = "p"
)

// Range is the slider range and step of one field.
type Range struct {
	Min, Max, Step float64
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Bounds mirror the slider widgets of the lab.
var Bounds = map[Field]Range{
	FieldN:         {Min: 50, Max: 500, Step: 50},
	FieldBeta:      {Min: 0.5, Max: 3.0, Step: 0.1},
	FieldSigmaTrue: {Min: 0.5, Max: 3.0, Step: 0.1},
	FieldSigmaME:   {Min: 0.0, Max: 2.0, Step: 0.1},
	FieldSigmaEps:  {Min: 0.3, Max: 2.0, Step: 0.1},
	FieldP:         {Min: 0.0, Max: 1.0, Step: 0.1},
}

// Fields lists the tunable fields in slider order.
var Fields = []Field{FieldN, FieldBeta, FieldSigmaTrue, FieldSigmaME, FieldSigmaEps, FieldP}

// Get returns the current value of f.
func (c *Config) Get(f Field) float64 {
	switch f {
	case FieldN:
		return float64(c.Sample.N)
	case FieldBeta:
		return c.Sample.Beta
	case FieldSigmaTrue:
		return c.Sample.SigmaTrue
	case FieldSigmaME:
		return c.Noise.SigmaME
	case FieldSigmaEps:
		return c.Noise.SigmaEps
	case FieldP:
		return c.Noise.P
	}
	return 0
}

// Set assigns v to f after clamping it into range and snapping it to the
// slider step.
func (c *Config) Set(f Field, v float64) {
	r, ok := Bounds[f]
	if !ok {
		return
	}
	v = r.Clamp(r.Min + math.Round((v-r.Min)/r.Step)*r.Step)
	switch f {
	case FieldN:
		c.Sample.N = int(math.Round(v))
	case FieldBeta:
		c.Sample.Beta = v
	case FieldSigmaTrue:
		c.Sample.SigmaTrue = v
	case FieldSigmaME:
		c.Noise.SigmaME = v
	case FieldSigmaEps:
		c.Noise.SigmaEps = v
	case FieldP:
		c.Noise.P = v
	}
}

// Step moves f by dir slider steps.
func (c *Config) Step(f Field, dir int) {
	r, ok := Bounds[f]
	if !ok {
		return
	}
	c.Set(f, c.Get(f)+float64(dir)*r.Step)
}
