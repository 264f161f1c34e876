package viz

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Bounds is the data rectangle mapped onto a canvas.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// BoundsOf returns the bounding box of the points padded by 5% on each
// side. A zero range is widened to ±1 around the value.
func BoundsOf(xs, ys []float64) Bounds {
	b := Bounds{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	if len(xs) > 0 {
		b.XMin, b.XMax = pad(floats.Min(xs), floats.Max(xs))
	}
	if len(ys) > 0 {
		b.YMin, b.YMax = pad(floats.Min(ys), floats.Max(ys))
	}
	return b
}

// Union returns the smallest bounds covering b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		XMin: math.Min(b.XMin, o.XMin),
		XMax: math.Max(b.XMax, o.XMax),
		YMin: math.Min(b.YMin, o.YMin),
		YMax: math.Max(b.YMax, o.YMax),
	}
}

func pad(lo, hi float64) (float64, float64) {
	if hi-lo == 0 {
		return lo - 1, hi + 1
	}
	m := (hi - lo) * 0.05
	return lo - m, hi + m
}

// Plot maps data coordinates onto a Braille canvas.
type Plot struct {
	*Canvas
	Bounds Bounds
}

// NewPlot allocates a cols x rows canvas; sizes below one cell are raised
// to one.
func NewPlot(cols, rows int, b Bounds) *Plot {
	cols, rows = max(cols, 1), max(rows, 1)
	return &Plot{Canvas: NewCanvas(cols, rows), Bounds: b}
}

// Pixel converts a data point to sub-pixel coordinates. Far off-canvas
// points are pulled to one canvas height or width outside the edge so
// line drawing stays bounded.
func (p *Plot) Pixel(x, y float64) (int, int) {
	w, h := float64(p.PixelWidth()-1), float64(p.PixelHeight()-1)
	px := (x - p.Bounds.XMin) / (p.Bounds.XMax - p.Bounds.XMin) * w
	py := (p.Bounds.YMax - y) / (p.Bounds.YMax - p.Bounds.YMin) * h
	px = math.Max(-w, math.Min(2*w, px))
	py = math.Max(-h, math.Min(2*h, py))
	return int(math.Round(px)), int(math.Round(py))
}

// Scatter marks every (xs[i], ys[i]).
func (p *Plot) Scatter(xs, ys []float64, ink Ink) {
	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px, py := p.Pixel(xs[i], ys[i])
		p.Set(px, py, ink)
	}
}

// Polyline joins consecutive points with straight segments.
func (p *Plot) Polyline(xs, ys []float64, ink Ink) {
	for i := 1; i < len(xs) && i < len(ys); i++ {
		x0, y0 := p.Pixel(xs[i-1], ys[i-1])
		x1, y1 := p.Pixel(xs[i], ys[i])
		p.DrawLine(x0, y0, x1, y1, ink)
	}
}

// Func draws fn across the full x range, one sample per sub-pixel column.
func (p *Plot) Func(fn func(float64) float64, ink Ink) {
	n := p.PixelWidth()
	xs := floats.Span(make([]float64, n), p.Bounds.XMin, p.Bounds.XMax)
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = fn(x)
	}
	p.Polyline(xs, ys, ink)
}
