package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/san-kum/measim/internal/estimate"
	"github.com/san-kum/measim/internal/sampler"
	"github.com/san-kum/measim/internal/viz"
)

// InkColors are the SVG fill colours of the canvas inks.
var InkColors = map[viz.Ink]string{
	viz.InkPoint: "#20b2aa",
	viz.InkTrue:  "#00ff88",
	viz.InkFit:   "#ff4444",
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per set dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	writeHeader(&sb, width, height)

	dotRadius := scale * 0.4
	for py := 0; py < canvas.PixelHeight(); py++ {
		for px := 0; px < canvas.PixelWidth(); px++ {
			if !canvas.IsSet(px, py) {
				continue
			}
			fill, ok := InkColors[canvas.Inks[py/4][px/2]]
			if !ok {
				fill = InkColors[viz.InkPoint]
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n",
				float64(px)*scale+scale/2, float64(py)*scale+scale/2, dotRadius, fill)
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// Series is one layer of a scatter chart. Line series are drawn as a
// path, the others as points.
type Series struct {
	Name  string
	X, Y  []float64
	Color string
	Line  bool
}

// ScatterSVG draws every series into a width x height chart sharing one
// set of data bounds.
func ScatterSVG(series []Series, width, height int) (string, error) {
	if len(series) == 0 {
		return "", errors.New("export: no series")
	}

	b := viz.BoundsOf(series[0].X, series[0].Y)
	for _, s := range series[1:] {
		b = b.Union(viz.BoundsOf(s.X, s.Y))
	}

	w, h := float64(width), float64(height)
	project := func(x, y float64) (float64, float64) {
		return (x - b.XMin) / (b.XMax - b.XMin) * w, h - (y-b.YMin)/(b.YMax-b.YMin)*h
	}

	var sb strings.Builder
	writeHeader(&sb, w, h)

	for _, s := range series {
		fmt.Fprintf(&sb, "<g id=%q>\n", s.Name)
		if s.Line {
			sb.WriteString(`<path fill="none" stroke-width="1.5" stroke="` + s.Color + `" d="`)
			first := true
			for i := 0; i < len(s.X) && i < len(s.Y); i++ {
				if math.IsNaN(s.X[i]) || math.IsNaN(s.Y[i]) {
					continue
				}
				x, y := project(s.X[i], s.Y[i])
				if first {
					fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
					first = false
				} else {
					fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
				}
			}
			sb.WriteString("\"/>\n")
		} else {
			for i := 0; i < len(s.X) && i < len(s.Y); i++ {
				if math.IsNaN(s.X[i]) || math.IsNaN(s.Y[i]) {
					continue
				}
				x, y := project(s.X[i], s.Y[i])
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"2\" fill=\"%s\" fill-opacity=\"0.6\"/>\n", x, y, s.Color)
			}
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

// AttenuationSVG renders outcome against observed value with the true
// relation and the OLS line, like the dashboard's attenuation view.
func AttenuationSVG(w io.Writer, s *sampler.Sample, cfg sampler.Config, fit estimate.Fit, width, height int) error {
	if s.Len() == 0 {
		return errors.New("export: empty sample")
	}
	b := viz.BoundsOf(s.Observed, s.Outcome)
	tx, ty := estimate.Grid(b.XMin, b.XMax, 100, func(x float64) float64 { return cfg.Outcome.Mean(x, cfg.Beta) })
	fx, fy := fit.Line(b.XMin, b.XMax, 2)

	out, err := ScatterSVG([]Series{
		{Name: "sample", X: s.Observed, Y: s.Outcome, Color: InkColors[viz.InkPoint]},
		{Name: "true", X: tx, Y: ty, Color: InkColors[viz.InkTrue], Line: true},
		{Name: "ols", X: fx, Y: fy, Color: InkColors[viz.InkFit], Line: true},
	}, width, height)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return errors.Wrap(err, "write svg")
}

// AttenuationBrailleSVG renders the terminal attenuation canvas of
// cols x rows cells as SVG dots, scale pixels per sub-pixel.
func AttenuationBrailleSVG(w io.Writer, s *sampler.Sample, cfg sampler.Config, fit estimate.Fit, cols, rows int, scale float64) error {
	if s.Len() == 0 {
		return errors.New("export: empty sample")
	}
	if scale <= 0 {
		return errors.Errorf("export: scale %g", scale)
	}
	p := viz.AttenuationCanvas(s, cfg, fit, cols, rows)
	_, err := io.WriteString(w, CanvasToSVG(p.Canvas, scale))
	return errors.Wrap(err, "write svg")
}

func writeHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}
