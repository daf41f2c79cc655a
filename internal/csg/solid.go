package csg

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is a closed volume bounded by several surfaces.
type Solid interface {
	// Interior is the region inside the solid (the "-" side).
	Interior() Region
	// Exterior is the region outside the solid (the "+" side).
	Exterior() Region
	Bounds() AABB
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max r3.Vec
}

func (b AABB) Contains(p r3.Vec) bool {
	return p.X > b.Min.X && p.X < b.Max.X &&
		p.Y > b.Min.Y && p.Y < b.Max.Y &&
		p.Z > b.Min.Z && p.Z < b.Max.Z
}

func (b AABB) Size() r3.Vec { return r3.Sub(b.Max, b.Min) }

func (b AABB) Volume() float64 {
	s := b.Size()
	return s.X * s.Y * s.Z
}

func (b AABB) Center() r3.Vec { return r3.Scale(0.5, r3.Add(b.Min, b.Max)) }

// Lerp maps t in [0,1]^3 onto the box.
func (b AABB) Lerp(t r3.Vec) r3.Vec {
	s := b.Size()
	return r3.Vec{
		X: b.Min.X + t.X*s.X,
		Y: b.Min.Y + t.Y*s.Y,
		Z: b.Min.Z + t.Z*s.Z,
	}
}

// RightCircularCylinder is a capped cylinder starting at Base and extending
// Height along Axis.
type RightCircularCylinder struct {
	Base   r3.Vec
	Height float64
	Radius float64
	Axis   Axis

	Side   *Cylinder
	Bottom *Plane
	Top    *Plane
}

// NewRightCircularCylinder builds the side surface and both caps.
func NewRightCircularCylinder(base r3.Vec, height, radius float64, axis Axis) (*RightCircularCylinder, error) {
	if height <= 0 || radius <= 0 {
		return nil, fmt.Errorf("%w: rcc height=%g radius=%g", ErrInvalidDimension, height, radius)
	}
	c := &RightCircularCylinder{Base: base, Height: height, Radius: radius, Axis: axis}
	switch axis {
	case AxisX:
		c.Side = NewXCylinder(base.Y, base.Z, radius)
		c.Bottom, c.Top = NewXPlane(base.X), NewXPlane(base.X+height)
	case AxisY:
		c.Side = NewYCylinder(base.X, base.Z, radius)
		c.Bottom, c.Top = NewYPlane(base.Y), NewYPlane(base.Y+height)
	case AxisZ:
		c.Side = NewZCylinder(base.X, base.Y, radius)
		c.Bottom, c.Top = NewZPlane(base.Z), NewZPlane(base.Z+height)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAxis, axis)
	}
	return c, nil
}

func (c *RightCircularCylinder) Interior() Region {
	return And(Neg(c.Side), Pos(c.Bottom), Neg(c.Top))
}

func (c *RightCircularCylinder) Exterior() Region {
	return Or(Pos(c.Side), Neg(c.Bottom), Pos(c.Top))
}

func (c *RightCircularCylinder) Bounds() AABB {
	r := c.Radius
	b := AABB{
		Min: r3.Vec{X: c.Base.X - r, Y: c.Base.Y - r, Z: c.Base.Z - r},
		Max: r3.Vec{X: c.Base.X + r, Y: c.Base.Y + r, Z: c.Base.Z + r},
	}
	switch c.Axis {
	case AxisX:
		b.Min.X, b.Max.X = c.Base.X, c.Base.X+c.Height
	case AxisY:
		b.Min.Y, b.Max.Y = c.Base.Y, c.Base.Y+c.Height
	default:
		b.Min.Z, b.Max.Z = c.Base.Z, c.Base.Z+c.Height
	}
	return b
}

// Box is a rectangular parallelepiped bounded by six axial planes.
type Box struct {
	XMin, XMax *Plane
	YMin, YMax *Plane
	ZMin, ZMax *Plane
}

// NewBox builds the six planes of the box [xmin,xmax]x[ymin,ymax]x[zmin,zmax].
func NewBox(xmin, xmax, ymin, ymax, zmin, zmax float64) (*Box, error) {
	if xmin >= xmax || ymin >= ymax || zmin >= zmax {
		return nil, fmt.Errorf("%w: box x[%g,%g] y[%g,%g] z[%g,%g]",
			ErrInvalidDimension, xmin, xmax, ymin, ymax, zmin, zmax)
	}
	return &Box{
		XMin: NewXPlane(xmin), XMax: NewXPlane(xmax),
		YMin: NewYPlane(ymin), YMax: NewYPlane(ymax),
		ZMin: NewZPlane(zmin), ZMax: NewZPlane(zmax),
	}, nil
}

// NewBoxAround centers a box of the given size on c.
func NewBoxAround(c r3.Vec, size r3.Vec) (*Box, error) {
	return NewBox(
		c.X-size.X/2, c.X+size.X/2,
		c.Y-size.Y/2, c.Y+size.Y/2,
		c.Z-size.Z/2, c.Z+size.Z/2,
	)
}

func (b *Box) Interior() Region {
	return And(Pos(b.XMin), Neg(b.XMax), Pos(b.YMin), Neg(b.YMax), Pos(b.ZMin), Neg(b.ZMax))
}

func (b *Box) Exterior() Region {
	return Or(Neg(b.XMin), Pos(b.XMax), Neg(b.YMin), Pos(b.YMax), Neg(b.ZMin), Pos(b.ZMax))
}

func (b *Box) Bounds() AABB {
	return AABB{
		Min: r3.Vec{X: b.XMin.Offset, Y: b.YMin.Offset, Z: b.ZMin.Offset},
		Max: r3.Vec{X: b.XMax.Offset, Y: b.YMax.Offset, Z: b.ZMax.Offset},
	}
}

// SetBoundary applies bc to all six faces.
func (b *Box) SetBoundary(bc Boundary) {
	for _, p := range []*Plane{b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax} {
		p.SetBoundary(bc)
	}
}

// SphereSolid adapts a sphere surface to the Solid interface.
type SphereSolid struct {
	*Sphere
}

func (s SphereSolid) Interior() Region { return Neg(s.Sphere) }
func (s SphereSolid) Exterior() Region { return Pos(s.Sphere) }

func (s SphereSolid) Bounds() AABB {
	r := r3.Vec{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return AABB{Min: r3.Sub(s.Center, r), Max: r3.Add(s.Center, r)}
}
