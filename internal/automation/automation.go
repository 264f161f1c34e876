// Package automation runs scripted sequences of simulations described in
// YAML, optionally storing each sample.
package automation

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/measim/internal/config"
	"github.com/san-kum/measim/internal/experiment"
	"github.com/san-kum/measim/internal/store"
)

var ErrInvalidStep = errors.New("automation: invalid step")

// Script is a named list of steps run in order.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step starts from a preset (or the defaults), then applies the model,
// seed and slider overrides. A nil Seed keeps the preset's seed. Overrides are keyed by slider field name and
// are clamped like the dashboard sliders.
type Step struct {
	Name    string             `yaml:"name"`
	Preset  string             `yaml:"preset"`
	Model   string             `yaml:"model"`
	Design  string             `yaml:"design"`
	Outcome string             `yaml:"outcome"`
	Seed    *int64             `yaml:"seed"`
	Set     map[string]float64 `yaml:"set"`
	Save    bool               `yaml:"save"`
}

// StepResult pairs a step with its run. RunID is empty unless the step
// was saved.
type StepResult struct {
	Step   string
	Result *experiment.Result
	RunID  string
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, errors.Wrapf(err, "script %s", path)
	}
	return s, nil
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parse script")
	}
	if len(s.Steps) == 0 {
		return nil, errors.Wrap(ErrInvalidStep, "script has no steps")
	}
	return &s, nil
}

// Config resolves the configuration a step runs with.
func (st Step) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if st.Preset != "" {
		if cfg = config.GetPreset(st.Preset); cfg == nil {
			return nil, errors.Wrapf(ErrInvalidStep, "unknown preset %q", st.Preset)
		}
	}
	if st.Model != "" {
		cfg.Model = st.Model
	}
	if st.Design != "" {
		cfg.Design = st.Design
	}
	if st.Outcome != "" {
		cfg.Outcome = st.Outcome
	}
	if st.Seed != nil {
		cfg.Seed = *st.Seed
	}
	for name, v := range st.Set {
		f := config.Field(name)
		if _, ok := config.Bounds[f]; !ok {
			return nil, errors.Wrapf(ErrInvalidStep, "unknown field %q", name)
		}
		cfg.Set(f, v)
	}
	return cfg, nil
}

// RunScript executes every step in order. st may be nil when no step
// saves. Results of completed steps are returned alongside an error.
func RunScript(ctx context.Context, script *Script, st *store.Store, log logrus.FieldLogger) ([]StepResult, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	results := make([]StepResult, 0, len(script.Steps))

	for i, step := range script.Steps {
		name := step.Name
		if name == "" {
			name = step.Preset
		}
		log.WithFields(logrus.Fields{"step": i + 1, "of": len(script.Steps), "name": name}).Info("running step")

		cfg, err := step.Config()
		if err != nil {
			return results, errors.Wrapf(err, "step %d", i+1)
		}
		sc, err := cfg.Sampler()
		if err != nil {
			return results, errors.Wrapf(err, "step %d", i+1)
		}

		res, err := experiment.New(sc, cfg.Seed).WithLogger(log).Run(ctx)
		if err != nil {
			return results, errors.Wrapf(err, "step %d run", i+1)
		}

		out := StepResult{Step: name, Result: res}
		if step.Save {
			if st == nil {
				return results, errors.Wrapf(ErrInvalidStep, "step %d saves but no store is configured", i+1)
			}
			if out.RunID, err = st.Save(res); err != nil {
				return results, errors.Wrapf(err, "step %d save", i+1)
			}
		}
		results = append(results, out)
	}

	return results, nil
}
