package automation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/measim/internal/config"
	"github.com/san-kum/measim/internal/sampler"
	"github.com/san-kum/measim/internal/store"
)

const script = `
name: attenuation tour
description: classical error with growing noise
steps:
  - name: clean
    preset: no-error
  - name: noisy
    preset: attenuation
    set:
      sigma_me: 1.5
    save: true
  - preset: model-iv
    seed: 7
    set:
      n: 100
`

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(script))
	require.NoError(t, err)
	assert.Equal(t, "attenuation tour", s.Name)
	require.Len(t, s.Steps, 3)
	assert.Equal(t, 1.5, s.Steps[1].Set["sigma_me"])
	assert.True(t, s.Steps[1].Save)
	require.NotNil(t, s.Steps[2].Seed)
	assert.Equal(t, int64(7), *s.Steps[2].Seed)
	assert.Nil(t, s.Steps[0].Seed)

	_, err = ParseScript([]byte("name: empty\n"))
	assert.True(t, errors.Is(err, ErrInvalidStep))
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 3)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStepConfig(t *testing.T) {
	cfg, err := Step{Preset: "attenuation", Model: "dual", Set: map[string]float64{"sigma_me": 9, "n": 120}}.Config()
	require.NoError(t, err)
	assert.Equal(t, "dual", cfg.Model)
	assert.Equal(t, 2.0, cfg.Noise.SigmaME)
	assert.Equal(t, 100, cfg.Sample.N)

	_, err = Step{Preset: "nope"}.Config()
	assert.True(t, errors.Is(err, ErrInvalidStep))

	_, err = Step{Set: map[string]float64{"gamma": 1}}.Config()
	assert.True(t, errors.Is(err, ErrInvalidStep))
}

func TestStepSeedZero(t *testing.T) {
	s, err := ParseScript([]byte("steps:\n  - preset: model-i\n    seed: 0\n  - preset: model-i\n"))
	require.NoError(t, err)

	cfg, err := s.Steps[0].Config()
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.Seed)

	cfg, err = s.Steps[1].Config()
	require.NoError(t, err)
	assert.Equal(t, int64(config.DefaultSeed), cfg.Seed)
}

func TestRunScript(t *testing.T) {
	s, err := ParseScript([]byte(script))
	require.NoError(t, err)

	st := store.New(t.TempDir())
	require.NoError(t, st.Init())

	results, err := RunScript(context.Background(), s, st, quiet())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "clean", results[0].Step)
	assert.Equal(t, 1.0, results[0].Result.Fit.Lambda)
	assert.Empty(t, results[0].RunID)

	assert.InDelta(t, 0.5, results[1].Result.Fit.Lambda, 1e-9)
	assert.NotEmpty(t, results[1].RunID)

	assert.Equal(t, "model-iv", results[2].Step)
	assert.Equal(t, sampler.NonlinearAuxiliary, results[2].Result.Config.Model)
	assert.Equal(t, 100, results[2].Result.Sample.Len())
	assert.Equal(t, int64(7), results[2].Result.Seed)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunScriptWithoutStore(t *testing.T) {
	s := &Script{Steps: []Step{{Preset: "model-i"}, {Preset: "model-ii", Save: true}}}
	results, err := RunScript(context.Background(), s, nil, quiet())
	assert.True(t, errors.Is(err, ErrInvalidStep))
	assert.Len(t, results, 1)
}

func TestRunScriptCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunScript(ctx, &Script{Steps: []Step{{Preset: "model-i"}}}, nil, quiet())
	assert.True(t, errors.Is(err, context.Canceled))
}
