// Package kernel provides the smoothing kernels compared in the
// kernel-choice view of the lab.
package kernel

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/measim/internal/estimate"
)

// ErrUnknownKernel indicates a kernel name that is not registered.
var ErrUnknownKernel = errors.New("kernel: unknown kernel")

// Kernel is a symmetric density K(u).
type Kernel struct {
	Name       string
	Formula    string
	Properties string
	// Bounded kernels vanish outside [-1, 1].
	Bounded bool
	fn      func(u float64) float64
}

// Eval returns K(u).
func (k Kernel) Eval(u float64) float64 {
	if k.Bounded && math.Abs(u) > 1 {
		return 0
	}
	return k.fn(u)
}

// Grid evaluates k at points evenly spaced values over [lo, hi].
func (k Kernel) Grid(lo, hi float64, points int) (us, vs []float64) {
	return estimate.Grid(lo, hi, points, k.Eval)
}

var (
	Epanechnikov = Kernel{
		Name:       "epanechnikov",
		Formula:    "3/4 (1-u²) 1{|u|≤1}",
		Properties: "optimal in mean integrated squared error",
		Bounded:    true,
		fn:         func(u float64) float64 { return 0.75 * (1 - u*u) },
	}
	Gaussian = Kernel{
		Name:       "gaussian",
		Formula:    "exp(-u²/2) / √(2π)",
		Properties: "smooth, unbounded support",
		fn:         distuv.UnitNormal.Prob,
	}
	Uniform = Kernel{
		Name:       "uniform",
		Formula:    "1/2 1{|u|≤1}",
		Properties: "simple, not smooth",
		Bounded:    true,
		fn:         func(float64) float64 { return 0.5 },
	}
	Triangular = Kernel{
		Name:       "triangular",
		Formula:    "(1-|u|) 1{|u|≤1}",
		Properties: "continuous, bounded support",
		Bounded:    true,
		fn:         func(u float64) float64 { return 1 - math.Abs(u) },
	}
	Biweight = Kernel{
		Name:       "biweight",
		Formula:    "15/16 (1-u²)² 1{|u|≤1}",
		Properties: "smoother than epanechnikov",
		Bounded:    true,
		fn: func(u float64) float64 {
			w := 1 - u*u
			return 15.0 / 16.0 * w * w
		},
	}
)

var registry = map[string]Kernel{
	Epanechnikov.Name: Epanechnikov,
	Gaussian.Name:     Gaussian,
	Uniform.Name:      Uniform,
	Triangular.Name:   Triangular,
	Biweight.Name:     Biweight,
}

// All returns every kernel in display order.
func All() []Kernel {
	return []Kernel{Epanechnikov, Gaussian, Uniform, Triangular, Biweight}
}

// Names returns the registered kernel names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a kernel by case-insensitive name.
func Lookup(name string) (Kernel, error) {
	k, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Kernel{}, errors.Wrapf(ErrUnknownKernel, "%q (available: %v)", name, Names())
	}
	return k, nil
}
