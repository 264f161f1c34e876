package config

import "sort"

var Presets = map[string]*Config{
	"attenuation": {
		Model: "classical", Design: "normal", Outcome: "linear", Seed: DefaultSeed,
		Sample: SampleConfig{N: 200, Beta: 1.5, SigmaTrue: 1.5},
		Noise:  NoiseConfig{SigmaME: 0.5, SigmaEps: 0.5, P: 1},
	},
	"no-error": {
		Model: "classical", Design: "normal", Outcome: "linear", Seed: DefaultSeed,
		Sample: SampleConfig{N: 200, Beta: 1.5, SigmaTrue: 1.5},
		Noise:  NoiseConfig{SigmaME: 0, SigmaEps: 0.5, P: 1},
	},
	"model-i": {
		Model: "classical", Design: "uniform", Outcome: "quadratic", Seed: DefaultSeed,
		Sample: SampleConfig{N: 200, Beta: 1.5, SigmaTrue: 1.5, Lower: 0, Upper: 1},
		Noise:  NoiseConfig{SigmaME: 0.5, SigmaEps: 0.5, P: 0.5},
	},
	"model-ii": {
		Model: "heteroskedastic", Design: "uniform", Outcome: "quadratic", Seed: DefaultSeed,
		Sample: SampleConfig{N: 200, Beta: 1.5, SigmaTrue: 1.5, Lower: 0, Upper: 1},
		Noise:  NoiseConfig{SigmaME: 0.5, SigmaEps: 0.5, P: 0.5},
	},
	"model-iii": {
		Model: "dual", Design: "uniform", Outcome: "quadratic", Seed: DefaultSeed,
		Sample: SampleConfig{N: 200, Beta: 1.5, SigmaTrue: 1.5, Lower: 0, Upper: 1},
		Noise:  NoiseConfig{SigmaME: 0.5, SigmaEps: 0.5, P: 0.5},
	},
	"model-iv": {
		Model: "nonlinear", Design: "uniform", Outcome: "quadratic", Seed: DefaultSeed,
		Sample: SampleConfig{N: 200, Beta: 1.5, SigmaTrue: 1.5, Lower: 0, Upper: 1},
		Noise:  NoiseConfig{SigmaME: 0.5, SigmaEps: 0.2, P: 0.5},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Display = DefaultConfig().Display
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetForModel returns the models I-IV preset name for a model string.
func PresetForModel(model string) string {
	for _, name := range []string{"model-i", "model-ii", "model-iii", "model-iv"} {
		if Presets[name].Model == model {
			return name
		}
	}
	return ""
}
