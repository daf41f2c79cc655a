// Package mesh generates the tetrahedral mesh of the salt volume used by the
// unstructured mesh tally: a cylinder with the heater bore removed.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/geometry"
)

var (
	ErrCutFailed = errors.New("mesh: boolean subtraction failed")
	ErrInvalid   = errors.New("mesh: invalid parameters")
)

const tol = 1e-9

// SurfaceID labels a boundary patch of the holed cylinder.
type SurfaceID int

const (
	SurfaceBore SurfaceID = iota + 1
	SurfaceOuter
	SurfaceBottom
	SurfaceTop
	SurfaceBoreCap
)

func (s SurfaceID) String() string {
	switch s {
	case SurfaceBore:
		return "bore"
	case SurfaceOuter:
		return "outer"
	case SurfaceBottom:
		return "bottom"
	case SurfaceTop:
		return "top"
	case SurfaceBoreCap:
		return "bore_cap"
	}
	return fmt.Sprintf("surface(%d)", int(s))
}

// HoledCylinder is a z-axis cylinder standing on Base with a coaxial bore
// running down from BoreTop by BoreDepth.
type HoledCylinder struct {
	Base   r3.Vec
	Height float64
	Radius float64

	BoreRadius float64
	BoreTop    float64
	BoreDepth  float64
}

// SaltSolid derives the salt cylinder and heater bore from the BABY layer
// stack about center.
func SaltSolid(center r3.Vec, d geometry.Dimensions) (HoledCylinder, error) {
	stack, err := geometry.NewStack(center.Z, d.Layers...)
	if err != nil {
		return HoledCylinder{}, err
	}
	bottom, err := stack.Bottom(geometry.LayerSalt)
	if err != nil {
		return HoledCylinder{}, err
	}
	top, err := stack.Top(geometry.LayerSalt)
	if err != nil {
		return HoledCylinder{}, err
	}
	heaterZ, err := stack.Above(geometry.LayerInconel, d.HeaterGap)
	if err != nil {
		return HoledCylinder{}, err
	}

	return HoledCylinder{
		Base:       r3.Vec{X: center.X, Y: center.Y, Z: bottom},
		Height:     top - bottom,
		Radius:     d.SaltRadius,
		BoreRadius: d.HeaterRadius,
		BoreTop:    top,
		BoreDepth:  top - heaterZ,
	}, nil
}

func (s HoledCylinder) Top() float64 { return s.Base.Z + s.Height }

func (s HoledCylinder) BoreBottom() float64 { return s.BoreTop - s.BoreDepth }

// boreSpan is the part of the bore inside the cylinder.
func (s HoledCylinder) boreSpan() (lo, hi float64) {
	return math.Max(s.BoreBottom(), s.Base.Z), math.Min(s.BoreTop, s.Top())
}

// ValidateCut reports whether subtracting the bore leaves a proper solid:
// the bore must intersect the cylinder without consuming it.
func (s HoledCylinder) ValidateCut() error {
	if s.Height <= 0 || s.Radius <= 0 {
		return fmt.Errorf("%w: cylinder h=%g r=%g", ErrInvalid, s.Height, s.Radius)
	}
	if s.BoreRadius <= 0 || s.BoreDepth <= 0 {
		return fmt.Errorf("%w: empty bore r=%g depth=%g", ErrCutFailed, s.BoreRadius, s.BoreDepth)
	}
	if s.BoreRadius >= s.Radius {
		return fmt.Errorf("%w: bore r=%g consumes cylinder r=%g", ErrCutFailed, s.BoreRadius, s.Radius)
	}
	if lo, hi := s.boreSpan(); hi-lo <= tol {
		return fmt.Errorf("%w: bore z[%g,%g] misses cylinder z[%g,%g]",
			ErrCutFailed, s.BoreBottom(), s.BoreTop, s.Base.Z, s.Top())
	}
	return nil
}

func (s HoledCylinder) radial(p r3.Vec) float64 {
	return math.Hypot(p.X-s.Base.X, p.Y-s.Base.Y)
}

func (s HoledCylinder) Contains(p r3.Vec) bool {
	r := s.radial(p)
	if r >= s.Radius || p.Z <= s.Base.Z || p.Z >= s.Top() {
		return false
	}
	lo, hi := s.boreSpan()
	return !(r < s.BoreRadius && p.Z > lo && p.Z < hi)
}

// Volume is the exact volume of the cut solid.
func (s HoledCylinder) Volume() float64 {
	lo, hi := s.boreSpan()
	return math.Pi * (s.Radius*s.Radius*s.Height - s.BoreRadius*s.BoreRadius*(hi-lo))
}

// PolygonVolume is the volume of the solid with both circles replaced by
// regular polygons of n sides inscribed in them, which a mesh with n
// sectors fills exactly.
func (s HoledCylinder) PolygonVolume(n int) float64 {
	lo, hi := s.boreSpan()
	k := float64(n) / 2 * math.Sin(2*math.Pi/float64(n))
	return k * (s.Radius*s.Radius*s.Height - s.BoreRadius*s.BoreRadius*(hi-lo))
}

// OnSurface reports whether p lies on boundary patch id.
func (s HoledCylinder) OnSurface(p r3.Vec, id SurfaceID) bool {
	r := s.radial(p)
	lo, hi := s.boreSpan()
	inZ := p.Z >= s.Base.Z-tol && p.Z <= s.Top()+tol
	switch id {
	case SurfaceOuter:
		return math.Abs(r-s.Radius) < tol && inZ
	case SurfaceBottom:
		return math.Abs(p.Z-s.Base.Z) < tol && r <= s.Radius+tol && !(lo <= s.Base.Z+tol && r < s.BoreRadius-tol)
	case SurfaceTop:
		return math.Abs(p.Z-s.Top()) < tol && r <= s.Radius+tol && !(hi >= s.Top()-tol && r < s.BoreRadius-tol)
	case SurfaceBore:
		return math.Abs(r-s.BoreRadius) < tol && p.Z >= lo-tol && p.Z <= hi+tol
	case SurfaceBoreCap:
		onCap := (math.Abs(p.Z-lo) < tol && lo > s.Base.Z+tol) || (math.Abs(p.Z-hi) < tol && hi < s.Top()-tol)
		return onCap && r <= s.BoreRadius+tol
	}
	return false
}
