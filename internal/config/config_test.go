package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/measim/internal/sampler"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "classical" {
		t.Errorf("expected model classical, got %s", cfg.Model)
	}
	sc, err := cfg.Sampler()
	if err != nil {
		t.Fatalf("default config should convert: %v", err)
	}
	if sc.N != DefaultN || sc.Design != sampler.Uniform || sc.Outcome != sampler.Quadratic {
		t.Errorf("unexpected sampler config %+v", sc)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measim.yaml")
	cfg := DefaultConfig()
	cfg.Model = "nonlinear"
	cfg.Noise.P = 0.8

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Model != "nonlinear" || loaded.Noise.P != 0.8 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("attenuation")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Noise.P != 1 || cfg.Outcome != "linear" {
		t.Errorf("unexpected attenuation preset %+v", cfg)
	}

	cfg.Noise.P = 0
	if Presets["attenuation"].Noise.P != 1 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsConvert(t *testing.T) {
	for _, name := range ListPresets() {
		if _, err := GetPreset(name).Sampler(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
	if PresetForModel("dual") != "model-iii" {
		t.Error("dual should map to model-iii")
	}
}

func TestSetClampsAndSnaps(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Set(FieldN, 1000)
	if cfg.Sample.N != 500 {
		t.Errorf("n = %d, want 500", cfg.Sample.N)
	}
	cfg.Set(FieldN, 123)
	if cfg.Sample.N != 100 {
		t.Errorf("n = %d, want 100", cfg.Sample.N)
	}
	cfg.Set(FieldP, -0.3)
	if cfg.Noise.P != 0 {
		t.Errorf("p = %v, want 0", cfg.Noise.P)
	}

	cfg.Noise.SigmaME = 0.5
	cfg.Step(FieldSigmaME, -1)
	if math.Abs(cfg.Noise.SigmaME-0.4) > 1e-9 {
		t.Errorf("sigma_me = %v, want 0.4", cfg.Noise.SigmaME)
	}
	for i := 0; i < 10; i++ {
		cfg.Step(FieldSigmaME, -1)
	}
	if cfg.Noise.SigmaME != 0 {
		t.Errorf("sigma_me = %v, want 0", cfg.Noise.SigmaME)
	}
}

func TestClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sample.N = 5
	cfg.Noise.SigmaEps = 10
	cfg.Clamp()
	if cfg.Sample.N != 50 || cfg.Noise.SigmaEps != 2 {
		t.Errorf("clamp failed: n=%d sigma_eps=%v", cfg.Sample.N, cfg.Noise.SigmaEps)
	}
}

func TestClampDisplay(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"zero", 0, 0, MinDisplayWidth, MinDisplayHeight},
		{"one", 1, 1, MinDisplayWidth, MinDisplayHeight},
		{"negative", -5, -3, MinDisplayWidth, MinDisplayHeight},
		{"huge", 10000, 10000, MaxDisplayWidth, MaxDisplayHeight},
		{"default", 60, 16, 60, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Display = DisplayConfig{Width: tt.width, Height: tt.height}
			cfg.Clamp()
			if cfg.Display.Width != tt.wantW || cfg.Display.Height != tt.wantH {
				t.Errorf("display %dx%d, want %dx%d", cfg.Display.Width, cfg.Display.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLoadIntoKeepsOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("noise:\n  sigma_me: 1.2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset("attenuation")
	if err := LoadInto(path, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Noise.SigmaME != 1.2 {
		t.Errorf("sigma_me = %v, want 1.2", cfg.Noise.SigmaME)
	}
	if cfg.Design != "normal" || cfg.Outcome != "linear" || cfg.Noise.P != 1 {
		t.Errorf("preset fields lost: design=%s outcome=%s p=%v", cfg.Design, cfg.Outcome, cfg.Noise.P)
	}
	if Presets["attenuation"].Noise.SigmaME != 0.5 {
		t.Error("preset map was modified")
	}
}

func TestFromSampler(t *testing.T) {
	sc := sampler.DefaultConfig()
	sc.Model = sampler.DuallyHeteroskedastic
	back, err := FromSampler(sc, 9).Sampler()
	if err != nil {
		t.Fatal(err)
	}
	if back != sc {
		t.Errorf("round trip changed config: %+v != %+v", back, sc)
	}
}
