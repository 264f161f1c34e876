package estimate

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/measim/internal/sampler"
)

func attenuationConfig() sampler.Config {
	return sampler.Config{
		N:         200,
		Beta:      1.5,
		SigmaTrue: 1.5,
		SigmaME:   0.5,
		SigmaEps:  0.5,
		P:         1,
		Model:     sampler.Classical,
		Design:    sampler.Normal,
		Outcome:   sampler.Linear,
	}
}

func TestAttenuation(t *testing.T) {
	tests := []struct {
		name              string
		varTrue, varNoise float64
		want              float64
	}{
		{"no noise", 2.25, 0, 1},
		{"both zero", 0, 0, 1},
		{"equal", 1, 1, 0.5},
		{"attenuation scenario", 2.25, 0.25, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Attenuation(tt.varTrue, tt.varNoise); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Attenuation(%v, %v) = %v, want %v", tt.varTrue, tt.varNoise, got, tt.want)
			}
		})
	}
}

func TestSNRCurve(t *testing.T) {
	c := NewSNRCurve(0.1, 10, 100)
	if len(c.SNR) != 100 || len(c.Lambda) != 100 || len(c.BiasPct) != 100 {
		t.Fatalf("unexpected curve lengths %d/%d/%d", len(c.SNR), len(c.Lambda), len(c.BiasPct))
	}
	if c.SNR[0] != 0.1 || c.SNR[99] != 10 {
		t.Errorf("grid endpoints %v..%v", c.SNR[0], c.SNR[99])
	}
	for i := 1; i < len(c.Lambda); i++ {
		if c.Lambda[i] <= c.Lambda[i-1] {
			t.Fatalf("lambda not increasing at %d", i)
		}
		if math.Abs(c.BiasPct[i]-(1-c.Lambda[i])*100) > 1e-9 {
			t.Fatalf("bias mismatch at %d", i)
		}
	}
}

func TestFitSample_AttenuationBias(t *testing.T) {
	cfg := attenuationConfig()
	s, err := sampler.Generate(cfg, 42)
	if err != nil {
		t.Fatal(err)
	}

	fit, err := FitSample(s, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(fit.Slope) >= cfg.Beta {
		t.Errorf("slope %v should be attenuated below %v", fit.Slope, cfg.Beta)
	}
	if fit.Lambda <= 0 || fit.Lambda >= 1 {
		t.Errorf("lambda %v outside (0, 1)", fit.Lambda)
	}
	if math.Abs(fit.Lambda-0.9) > 1e-12 {
		t.Errorf("lambda = %v, want 0.9", fit.Lambda)
	}
	if math.Abs(fit.Slope-fit.PredictedSlope()) > 0.15 {
		t.Errorf("slope %v far from λβ = %v", fit.Slope, fit.PredictedSlope())
	}
	if fit.Bias() >= 0 {
		t.Errorf("bias %v should be negative", fit.Bias())
	}
}

func TestFitSample_NoMeasurementError(t *testing.T) {
	cfg := attenuationConfig()
	cfg.SigmaME = 0
	s, err := sampler.Generate(cfg, 42)
	if err != nil {
		t.Fatal(err)
	}

	fit, err := FitSample(s, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if fit.Lambda != 1 {
		t.Errorf("lambda = %v, want 1", fit.Lambda)
	}
	if math.Abs(fit.Slope-cfg.Beta) > 1e-12 {
		t.Errorf("slope = %v, want %v", fit.Slope, cfg.Beta)
	}
}

func TestFitSample_AllModelsWithoutNoise(t *testing.T) {
	for _, m := range sampler.Models {
		cfg := sampler.DefaultConfig()
		cfg.Model = m
		cfg.SigmaME = 0
		cfg.N = 500
		s, err := sampler.Generate(cfg, 1)
		if err != nil {
			t.Fatal(err)
		}
		fit, err := FitSample(s, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if fit.Lambda != 1 || fit.Slope != cfg.TrueSlope() {
			t.Errorf("%v: lambda %v slope %v", m, fit.Lambda, fit.Slope)
		}
	}
}

func TestFitSample_UncorruptedRecoversSlope(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.P = 0
	cfg.N = 500
	s, err := sampler.Generate(cfg, 8)
	if err != nil {
		t.Fatal(err)
	}
	fit, err := FitSample(s, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if fit.Lambda != 1 {
		t.Errorf("lambda = %v, want 1", fit.Lambda)
	}
	if math.Abs(fit.Slope-1.5) > 0.3 {
		t.Errorf("slope = %v, want about 1.5", fit.Slope)
	}
}

func TestNoiseVariance_Heteroskedastic(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.P = 1
	cfg.N = 100
	s, _ := sampler.Generate(cfg, 4)

	classical := NoiseVariance(s, cfg)
	if math.Abs(classical-cfg.SigmaME*cfg.SigmaME) > 1e-12 {
		t.Errorf("classical noise variance = %v", classical)
	}

	cfg.Model = sampler.Heteroskedastic
	hetero := NoiseVariance(s, cfg)
	if hetero >= classical || hetero <= 0 {
		t.Errorf("heteroskedastic noise variance %v should be in (0, %v)", hetero, classical)
	}

	cfg.P = 0.5
	if got := NoiseVariance(s, cfg); math.Abs(got-hetero/2) > 1e-12 {
		t.Errorf("mixture noise variance = %v, want %v", got, hetero/2)
	}
}

func TestOLS(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{3, 5, 7, 9}
	a, b, err := OLS(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a-1) > 1e-12 || math.Abs(b-2) > 1e-12 {
		t.Errorf("OLS = (%v, %v), want (1, 2)", a, b)
	}

	if _, _, err := OLS([]float64{1}, []float64{1}); !errors.Is(err, ErrDegenerateSample) {
		t.Errorf("single point: %v", err)
	}
	if _, _, err := OLS([]float64{2, 2, 2}, []float64{1, 2, 3}); !errors.Is(err, ErrDegenerateSample) {
		t.Errorf("constant regressor: %v", err)
	}
}

func TestFitLine(t *testing.T) {
	f := Fit{Intercept: 1, Slope: 2}
	xs, ys := f.Line(0, 1, 3)
	if len(xs) != 3 || ys[0] != 1 || ys[2] != 3 {
		t.Errorf("line = %v %v", xs, ys)
	}
}

func TestSummarize(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.P = 0
	s, _ := sampler.Generate(cfg, 2)

	sum, err := Summarize(s)
	if err != nil {
		t.Fatal(err)
	}
	if sum.N != cfg.N || sum.Corrupted != 0 || sum.CorruptedShare() != 0 {
		t.Errorf("counts: %+v", sum)
	}
	if sum.SDError != 0 {
		t.Errorf("error spread = %v, want 0", sum.SDError)
	}
	for i, q := range sum.ErrorQuantiles {
		if q != 0 {
			t.Errorf("quantile %v = %v, want 0", ErrorPercentiles[i], q)
		}
	}
	if sum.CorrTrueAux < 0.5 {
		t.Errorf("auxiliary should track the true value, corr = %v", sum.CorrTrueAux)
	}

	cfg.P = 1
	s, _ = sampler.Generate(cfg, 2)
	sum, err = Summarize(s)
	if err != nil {
		t.Fatal(err)
	}
	if sum.CorruptedShare() != 1 {
		t.Errorf("share = %v, want 1", sum.CorruptedShare())
	}
	if sum.ErrorQuantiles[0] >= sum.ErrorQuantiles[4] {
		t.Errorf("quantiles not ordered: %v", sum.ErrorQuantiles)
	}
}

func TestSummarize_TooSmall(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.N = 1
	s, _ := sampler.Generate(cfg, 1)
	if _, err := Summarize(s); !errors.Is(err, ErrDegenerateSample) {
		t.Errorf("expected degenerate sample error, got %v", err)
	}
}
