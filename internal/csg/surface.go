package csg

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Boundary is the transport boundary condition carried by a surface.
type Boundary int

const (
	Transmission Boundary = iota
	Vacuum
	Reflective
)

func (b Boundary) String() string {
	switch b {
	case Vacuum:
		return "vacuum"
	case Reflective:
		return "reflective"
	default:
		return "transmission"
	}
}

// Axis selects one of the coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// ParseAxis converts "x", "y" or "z" to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return AxisZ, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// component returns the coordinate of p along a.
func component(p r3.Vec, a Axis) float64 {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// Surface is an implicit quadric surface f(p) = 0.
type Surface interface {
	// Evaluate returns f(p); negative values lie on the negative side.
	Evaluate(p r3.Vec) float64
	// Type is the transport-engine surface keyword, e.g. "z-plane".
	Type() string
	// Coefficients are the engine coefficients in keyword order.
	Coefficients() []float64
	Boundary() Boundary
	SetBoundary(b Boundary)
}

type boundary struct {
	bc Boundary
}

func (s *boundary) Boundary() Boundary     { return s.bc }
func (s *boundary) SetBoundary(b Boundary) { s.bc = b }

// Plane is an axis-aligned plane at Offset along Axis.
type Plane struct {
	boundary
	Axis   Axis
	Offset float64
}

func NewXPlane(x0 float64) *Plane { return &Plane{Axis: AxisX, Offset: x0} }
func NewYPlane(y0 float64) *Plane { return &Plane{Axis: AxisY, Offset: y0} }
func NewZPlane(z0 float64) *Plane { return &Plane{Axis: AxisZ, Offset: z0} }

func (s *Plane) Evaluate(p r3.Vec) float64 { return component(p, s.Axis) - s.Offset }
func (s *Plane) Type() string              { return s.Axis.String() + "-plane" }
func (s *Plane) Coefficients() []float64   { return []float64{s.Offset} }

// Cylinder is an infinite circular cylinder parallel to Axis. A and B are the
// center coordinates on the two remaining axes in x, y, z order.
type Cylinder struct {
	boundary
	Axis   Axis
	A, B   float64
	Radius float64
}

func NewXCylinder(y0, z0, r float64) *Cylinder {
	return &Cylinder{Axis: AxisX, A: y0, B: z0, Radius: r}
}

func NewYCylinder(x0, z0, r float64) *Cylinder {
	return &Cylinder{Axis: AxisY, A: x0, B: z0, Radius: r}
}

func NewZCylinder(x0, y0, r float64) *Cylinder {
	return &Cylinder{Axis: AxisZ, A: x0, B: y0, Radius: r}
}

func (s *Cylinder) Evaluate(p r3.Vec) float64 {
	var u, v float64
	switch s.Axis {
	case AxisX:
		u, v = p.Y-s.A, p.Z-s.B
	case AxisY:
		u, v = p.X-s.A, p.Z-s.B
	default:
		u, v = p.X-s.A, p.Y-s.B
	}
	return u*u + v*v - s.Radius*s.Radius
}

func (s *Cylinder) Type() string            { return s.Axis.String() + "-cylinder" }
func (s *Cylinder) Coefficients() []float64 { return []float64{s.A, s.B, s.Radius} }

// Sphere is a sphere of Radius about Center.
type Sphere struct {
	boundary
	Center r3.Vec
	Radius float64
}

func NewSphere(center r3.Vec, r float64) *Sphere {
	return &Sphere{Center: center, Radius: r}
}

func (s *Sphere) Evaluate(p r3.Vec) float64 {
	d := r3.Sub(p, s.Center)
	return r3.Dot(d, d) - s.Radius*s.Radius
}

func (s *Sphere) Type() string { return "sphere" }

func (s *Sphere) Coefficients() []float64 {
	return []float64{s.Center.X, s.Center.Y, s.Center.Z, s.Radius}
}
