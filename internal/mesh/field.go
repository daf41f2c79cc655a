package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Field is a target element size at a point.
type Field interface {
	Size(p r3.Vec) float64
}

// Constant prescribes VIn on the listed surfaces and VOut elsewhere.
// A zero VOut means unconstrained.
type Constant struct {
	Solid    HoledCylinder
	Surfaces []SurfaceID
	VIn      float64
	VOut     float64
}

func (c Constant) Size(p r3.Vec) float64 {
	for _, id := range c.Surfaces {
		if c.Solid.OnSurface(p, id) {
			return c.VIn
		}
	}
	if c.VOut > 0 {
		return c.VOut
	}
	return math.Inf(1)
}

// Min takes the smallest size of its fields.
type Min []Field

func (m Min) Size(p r3.Vec) float64 {
	size := math.Inf(1)
	for _, f := range m {
		size = math.Min(size, f.Size(p))
	}
	return size
}

// Sizes are the constant field values for the three refined patches.
type Sizes struct {
	Bore   float64
	Outer  float64
	Bottom float64
}

func DefaultSizes() Sizes { return Sizes{Bore: 0.2, Outer: 2.0, Bottom: 0.5} }

// Max is the coarsest size, used where no field applies.
func (z Sizes) Max() float64 { return math.Max(z.Bore, math.Max(z.Outer, z.Bottom)) }

// Background combines one constant field per patch with Min.
func Background(s HoledCylinder, z Sizes) Field {
	return Min{
		Constant{Solid: s, Surfaces: []SurfaceID{SurfaceBore}, VIn: z.Bore},
		Constant{Solid: s, Surfaces: []SurfaceID{SurfaceOuter}, VIn: z.Outer},
		Constant{Solid: s, Surfaces: []SurfaceID{SurfaceBottom}, VIn: z.Bottom},
	}
}

// graded places nodes on [a, b] with spacing moving linearly from sa to sb.
func graded(a, b, sa, sb float64) []float64 {
	length := b - a
	n := int(math.Ceil(2*length/(sa+sb) - 1e-9))
	n = max(n, 1)

	steps := make([]float64, n)
	var sum float64
	for i := range steps {
		t := (float64(i) + 0.5) / float64(n)
		steps[i] = sa + (sb-sa)*t
		sum += steps[i]
	}

	out := make([]float64, n+1)
	out[0] = a
	for i := 1; i < n; i++ {
		out[i] = out[i-1] + steps[i-1]*length/sum
	}
	out[n] = b
	return out
}

// resolve picks usable end sizes when a field leaves a point unconstrained.
func resolve(sa, sb, fallback float64) (float64, float64) {
	switch {
	case math.IsInf(sa, 1) && math.IsInf(sb, 1):
		return fallback, fallback
	case math.IsInf(sa, 1):
		return sb, sb
	case math.IsInf(sb, 1):
		return sa, sa
	}
	return sa, sb
}
