package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Ink tags what a dot belongs to so cells can be coloured on render.
// Higher inks win when two layers share a cell.
type Ink uint8

const (
	InkNone Ink = iota
	InkPoint
	InkTrue
	InkFit
)

// Canvas is a grid of Braille cells, each holding 2x4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Inks          [][]Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Inks:   make([][]Ink, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Inks[i] = make([]Ink, w)
	}
	c.Clear()
	return c
}

// PixelWidth is the horizontal resolution in sub-pixels.
func (c *Canvas) PixelWidth() int { return c.Width * 2 }

// PixelHeight is the vertical resolution in sub-pixels.
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set turns on the sub-pixel (x, y); y grows downwards. Points off the
// canvas are ignored.
func (c *Canvas) Set(x, y int, ink Ink) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
	if ink > c.Inks[row][col] {
		c.Inks[row][col] = ink
	}
}

// IsSet reports whether sub-pixel (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Inks[i][j] = InkNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink Ink) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render colours every cell by its ink.
func (c *Canvas) Render(inks map[Ink]lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			style, ok := inks[c.Inks[i][j]]
			if !ok || r == brailleBlank {
				b.WriteRune(r)
				continue
			}
			b.WriteString(style.Render(string(r)))
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
