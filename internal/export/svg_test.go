package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/measim/internal/estimate"
	"github.com/san-kum/measim/internal/sampler"
	"github.com/san-kum/measim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0, viz.InkPoint)
	c.Set(3, 5, viz.InkFit)

	svg := CanvasToSVG(c, 2)
	if !strings.HasPrefix(svg, "<?xml") {
		t.Error("missing xml header")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, InkColors[viz.InkFit]) {
		t.Error("fit ink colour missing")
	}
}

func TestScatterSVG(t *testing.T) {
	if _, err := ScatterSVG(nil, 100, 100); err == nil {
		t.Error("expected error for no series")
	}

	svg, err := ScatterSVG([]Series{
		{Name: "pts", X: []float64{0, 1, 2}, Y: []float64{0, 1, 4}, Color: "#fff"},
		{Name: "line", X: []float64{0, 2}, Y: []float64{0, 4}, Color: "#f00", Line: true},
	}, 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("expected 3 points, got %d", got)
	}
	if strings.Count(svg, "<path") != 1 {
		t.Error("expected one path")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
}

func TestAttenuationSVG(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.N = 50
	s, err := sampler.Generate(cfg, 42)
	if err != nil {
		t.Fatal(err)
	}
	fit, err := estimate.FitSample(s, cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := AttenuationSVG(&buf, s, cfg, fit, 400, 300); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if got := strings.Count(out, "<circle"); got != cfg.N {
		t.Errorf("expected %d points, got %d", cfg.N, got)
	}
	for _, id := range []string{`id="sample"`, `id="true"`, `id="ols"`} {
		if !strings.Contains(out, id) {
			t.Errorf("missing group %s", id)
		}
	}
}

func TestAttenuationBrailleSVG(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.N = 80
	s, err := sampler.Generate(cfg, 11)
	if err != nil {
		t.Fatal(err)
	}
	fit, err := estimate.FitSample(s, cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := AttenuationBrailleSVG(&buf, s, cfg, fit, 40, 10, 3); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `width="240" height="120"`) {
		t.Error("svg size should be cols*2*scale by rows*4*scale")
	}
	if strings.Count(out, "<circle") == 0 {
		t.Error("no dots rendered")
	}
	for _, ink := range []viz.Ink{viz.InkPoint, viz.InkTrue, viz.InkFit} {
		if !strings.Contains(out, InkColors[ink]) {
			t.Errorf("ink %d colour missing", ink)
		}
	}

	if err := AttenuationBrailleSVG(&buf, s, cfg, fit, 40, 10, 0); err == nil {
		t.Error("expected error for zero scale")
	}
}
