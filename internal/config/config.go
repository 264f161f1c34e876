package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/measim/internal/sampler"
)

const (
	DefaultN         = 200
	DefaultBeta      = 1.5
	DefaultSigmaTrue = 1.5
	DefaultSigmaME   = 0.5
	DefaultSigmaEps  = 0.5
	DefaultP         = 0.5
	DefaultSeed      = 42

	MinDisplayWidth  = 20
	MinDisplayHeight = 6
	MaxDisplayWidth  = 400
	MaxDisplayHeight = 200
)

type Config struct {
	Model   string        `yaml:"model"`
	Design  string        `yaml:"design"`
	Outcome string        `yaml:"outcome"`
	Seed    int64         `yaml:"seed"`
	Sample  SampleConfig  `yaml:"sample"`
	Noise   NoiseConfig   `yaml:"noise"`
	Display DisplayConfig `yaml:"display"`
}

type SampleConfig struct {
	N         int     `yaml:"n"`
	Beta      float64 `yaml:"beta"`
	SigmaTrue float64 `yaml:"sigma_true"`
	Lower     float64 `yaml:"lower"`
	Upper     float64 `yaml:"upper"`
}

type NoiseConfig struct {
	SigmaME  float64 `yaml:"sigma_me"`
	SigmaEps float64 `yaml:"sigma_eps"`
	P        float64 `yaml:"p"`
}

type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:   "classical",
		Design:  "uniform",
		Outcome: "quadratic",
		Seed:    DefaultSeed,
		Sample: SampleConfig{
			N:         DefaultN,
			Beta:      DefaultBeta,
			SigmaTrue: DefaultSigmaTrue,
			Lower:     0,
			Upper:     1,
		},
		Noise: NoiseConfig{
			SigmaME:  DefaultSigmaME,
			SigmaEps: DefaultSigmaEps,
			P:        DefaultP,
		},
		Display: DisplayConfig{Width: 60, Height: 16},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes the file over cfg, so fields the file omits keep the
// values cfg already holds.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	return errors.Wrapf(yaml.Unmarshal(data, cfg), "parse config %s", path)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// Clamp pulls every numeric field into its slider range.
func (c *Config) Clamp() {
	c.Sample.N = int(Bounds[FieldN].Clamp(float64(c.Sample.N)))
	c.Sample.Beta = Bounds[FieldBeta].Clamp(c.Sample.Beta)
	c.Sample.SigmaTrue = Bounds[FieldSigmaTrue].Clamp(c.Sample.SigmaTrue)
	c.Noise.SigmaME = Bounds[FieldSigmaME].Clamp(c.Noise.SigmaME)
	c.Noise.SigmaEps = Bounds[FieldSigmaEps].Clamp(c.Noise.SigmaEps)
	c.Noise.P = Bounds[FieldP].Clamp(c.Noise.P)
	c.Display.Width = clampInt(c.Display.Width, MinDisplayWidth, MaxDisplayWidth)
	c.Display.Height = clampInt(c.Display.Height, MinDisplayHeight, MaxDisplayHeight)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Sampler converts the file representation into generator parameters.
func (c *Config) Sampler() (sampler.Config, error) {
	model, err := sampler.ParseModel(c.Model)
	if err != nil {
		return sampler.Config{}, err
	}
	design, err := sampler.ParseDesign(c.Design)
	if err != nil {
		return sampler.Config{}, err
	}
	outcome, err := sampler.ParseOutcome(c.Outcome)
	if err != nil {
		return sampler.Config{}, err
	}
	sc := sampler.Config{
		N:         c.Sample.N,
		Beta:      c.Sample.Beta,
		SigmaTrue: c.Sample.SigmaTrue,
		SigmaME:   c.Noise.SigmaME,
		SigmaEps:  c.Noise.SigmaEps,
		P:         c.Noise.P,
		Lower:     c.Sample.Lower,
		Upper:     c.Sample.Upper,
		Model:     model,
		Design:    design,
		Outcome:   outcome,
	}
	return sc, sc.Validate()
}

// FromSampler is the inverse of Sampler.
func FromSampler(sc sampler.Config, seed int64) *Config {
	cfg := DefaultConfig()
	cfg.Model = sc.Model.String()
	cfg.Design = sc.Design.String()
	cfg.Outcome = sc.Outcome.String()
	cfg.Seed = seed
	cfg.Sample = SampleConfig{N: sc.N, Beta: sc.Beta, SigmaTrue: sc.SigmaTrue, Lower: sc.Lower, Upper: sc.Upper}
	cfg.Noise = NoiseConfig{SigmaME: sc.SigmaME, SigmaEps: sc.SigmaEps, P: sc.P}
	return cfg
}
