package geometry

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/material"
)

// Layer names of the BABY axial stack.
const (
	LayerEpoxy             = "epoxy"
	LayerAluminaCompressed = "alumina_compressed"
	LayerBase              = "base"
	LayerAlumina           = "alumina"
	LayerHelium            = "helium"
	LayerInconel           = "inconel"
	LayerSalt              = "salt"
	LayerGap               = "gap"
	LayerCap               = "cap"
)

// Cell names.
const (
	CellSourceWall        = "source_wall"
	CellSourceVoid        = "source_void"
	CellEpoxy             = "epoxy"
	CellAluminaCompressed = "alumina_compressed"
	CellVessel            = "vessel"
	CellAlumina           = "alumina"
	CellCap               = "cap"
	CellSalt              = "cllif"
	CellGap               = "gap"
	CellFirebrick         = "firebrick"
	CellHeater            = "heater"
	CellTable             = "table"
	CellDiamond           = "diamond_detector"
	CellFoilZr            = "foil_zr"
	CellFoilNb            = "foil_nb"
	CellHelium            = "helium"
	CellSphere            = "sphere_air"
	CellExpWall           = "ns_wall"
	CellExpVoid           = "ns_void"
	CellExpLead           = "ns_lead"
	CellExpHDPE           = "ns_hdpe"
	CellLab               = "lab_air"
)

// LeadBlockCell names the i-th (0-based) lead brick under the source.
func LeadBlockCell(i int) string { return fmt.Sprintf("lead_block_%d", i+1) }

// Dimensions holds every length of the BABY model in cm.
type Dimensions struct {
	Layers []Layer

	FirebrickThickness decimal.Decimal // above the alumina layer
	VesselHeight       decimal.Decimal // above the base
	CoverThickness     decimal.Decimal // above the vessel wall
	HeaterGap          decimal.Decimal // above the inconel bottom
	TableDepth         float64         // table top below the center
	TableThickness     float64

	SaltRadius      float64
	InconelRadius   float64
	HeliumRadius    float64
	FirebrickRadius float64
	VesselRadius    float64
	ExternalRadius  float64

	HeaterRadius float64
	HeaterHeight float64

	SourceLength      float64
	SourceOffsetX     float64
	SourceOffsetZ     float64
	SourceOuterRadius float64
	SourceInnerRadius float64
	SourceCapWall     float64

	SphereRadius float64

	LeadHeight   float64
	LeadWidth    float64
	LeadLength   float64
	LeadOffsetsX []float64

	DiamondThickness float64
	DiamondWidth     float64
	DiamondHeight    float64
	DiamondDistance  float64 // below the source axis

	FoilRadius    float64
	FoilThickness float64

	ExpCenter       r3.Vec
	ExpLength       float64
	ExpLeadExtra    float64
	ExpHDPEExtra    float64
	ExpSleeveLength float64
	ExpSleeveX      float64

	Lab csg.AABB
}

// DefaultDimensions returns the as-built BABY dimensions.
func DefaultDimensions() Dimensions {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return Dimensions{
		Layers: []Layer{
			L(LayerEpoxy, "1.905"),
			L(LayerAluminaCompressed, "2.54"),
			L(LayerBase, "0.786"),
			L(LayerAlumina, "0.635"),
			L(LayerHelium, "0.6"),
			L(LayerInconel, "0.3"),
			L(LayerSalt, "6.388", "0.13022"),
			L(LayerGap, "4.605"),
			L(LayerCap, "1.422"),
		},
		FirebrickThickness: d("15.24"),
		VesselHeight:       d("21.093"),
		CoverThickness:     d("2.392"),
		HeaterGap:          d("0.878"),
		TableDepth:         28.00,
		TableThickness:     1.905,

		SaltRadius:      7.00,
		InconelRadius:   7.3,
		HeliumRadius:    9.144,
		FirebrickRadius: 12.002,
		VesselRadius:    12.853,
		ExternalRadius:  13.272,

		HeaterRadius: 0.439,
		HeaterHeight: 25.40,

		SourceLength:      50.00,
		SourceOffsetX:     -13.50,
		SourceOffsetZ:     -5.635,
		SourceOuterRadius: 5.00,
		SourceInnerRadius: 4.75,
		SourceCapWall:     0.25,

		SphereRadius: 50.00,

		LeadHeight:   4.00,
		LeadWidth:    8.00,
		LeadLength:   16.00,
		LeadOffsetsX: []float64{-13.50, -4.50, 36.50, 27.50},

		DiamondThickness: 0.05,
		DiamondWidth:     0.8,
		DiamondHeight:    0.4,
		DiamondDistance:  9.6,

		FoilRadius:    1.8,
		FoilThickness: 0.1,

		ExpCenter:       r3.Vec{X: 500.5, Y: 225.0, Z: 138.0},
		ExpLength:       41.5,
		ExpLeadExtra:    5.1,
		ExpHDPEExtra:    15.0,
		ExpSleeveLength: 11.5,
		ExpSleeveX:      524.5,

		Lab: csg.AABB{
			Min: r3.Vec{X: 100, Y: 10, Z: 20},
			Max: r3.Vec{X: 800, Y: 400, Z: 200},
		},
	}
}

// SourcePosition is the point source location for a given center: on the
// capsule axis below the crucible.
func (d Dimensions) SourcePosition(center r3.Vec) r3.Vec {
	return r3.Vec{X: center.X, Y: center.Y, Z: center.Z + d.SourceOffsetZ}
}

// Geometry is the built BABY model.
type Geometry struct {
	Center     r3.Vec
	Dimensions Dimensions
	Stack      *Stack

	Lab    *csg.Box
	Sphere *csg.Sphere

	Salt    *Cell
	Diamond *Cell
	FoilZr  *Cell
	FoilNb  *Cell

	Cells []*Cell

	// SampleVolumes cover the small features for partition checks.
	SampleVolumes []csg.AABB
}

// Bounds is the region every cell lies in.
func (g *Geometry) Bounds() csg.Region { return g.Lab.Interior() }

// Cell looks a cell up by name.
func (g *Geometry) Cell(name string) (*Cell, bool) {
	for _, c := range g.Cells {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Claims lists every cell containing p.
func (g *Geometry) Claims(p r3.Vec) []*Cell {
	var out []*Cell
	for _, c := range g.Cells {
		if c.Region.Contains(p) {
			out = append(out, c)
		}
	}
	return out
}

// Locate returns the unique cell containing p.
func (g *Geometry) Locate(p r3.Vec) (*Cell, error) {
	claims := g.Claims(p)
	switch len(claims) {
	case 1:
		return claims[0], nil
	case 0:
		return nil, fmt.Errorf("%w: (%.4f, %.4f, %.4f)", ErrGap, p.X, p.Y, p.Z)
	}
	names := make([]string, len(claims))
	for i, c := range claims {
		names[i] = c.Name
	}
	return nil, &OverlapError{Point: p, Cells: names}
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	dims   Dimensions
	logger *zap.Logger
}

func WithDimensions(d Dimensions) Option {
	return func(o *buildOptions) { o.dims = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *buildOptions) { o.logger = l }
}

// Build constructs the BABY geometry about center, with fills taken from cat.
func Build(center r3.Vec, cat *material.Catalog, opts ...Option) (*Geometry, error) {
	o := buildOptions{dims: DefaultDimensions(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	d := o.dims
	xc, yc, zc := center.X, center.Y, center.Z

	fills := make(map[string]*material.Material)
	for _, key := range []string{
		material.SS304, material.Epoxy, material.Alumina, material.Inconel625,
		material.ClLiF, material.Helium, material.Firebrick, material.Heater,
		material.Air, material.Lead, material.Diamond, material.Zirconium,
		material.Niobium, material.HDPE,
	} {
		m, err := cat.Get(key)
		if err != nil {
			return nil, err
		}
		fills[key] = m
	}

	stack, err := NewStack(zc, d.Layers...)
	if err != nil {
		return nil, err
	}

	var errs []error
	top := func(name string) float64 {
		v, err := stack.Top(name)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	above := func(name string, extra decimal.Decimal) float64 {
		v, err := stack.Above(name, extra)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	rcc := func(base r3.Vec, h, r float64, axis csg.Axis) *csg.RightCircularCylinder {
		c, err := csg.NewRightCircularCylinder(base, h, r, axis)
		if err != nil {
			errs = append(errs, err)
		}
		return c
	}
	box := func(xmin, xmax, ymin, ymax, zmin, zmax float64) *csg.Box {
		b, err := csg.NewBox(xmin, xmax, ymin, ymax, zmin, zmax)
		if err != nil {
			errs = append(errs, err)
		}
		return b
	}

	// axial planes
	zPlane1 := csg.NewZPlane(stack.Origin())
	zPlane2 := csg.NewZPlane(top(LayerEpoxy))
	zPlane3 := csg.NewZPlane(top(LayerAluminaCompressed))
	zPlane4 := csg.NewZPlane(top(LayerBase))
	zPlane5 := csg.NewZPlane(top(LayerAlumina))
	zPlane6 := csg.NewZPlane(top(LayerHelium))
	zPlane7 := csg.NewZPlane(top(LayerInconel))
	zPlane8 := csg.NewZPlane(top(LayerSalt))
	zPlane9 := csg.NewZPlane(top(LayerGap))
	zPlane10 := csg.NewZPlane(top(LayerCap))
	zPlane11 := csg.NewZPlane(above(LayerAlumina, d.FirebrickThickness))
	vesselTop := above(LayerBase, d.VesselHeight)
	zPlane12 := csg.NewZPlane(vesselTop)
	zPlane13 := csg.NewZPlane(vesselTop + d.CoverThickness.InexactFloat64())
	tableTop := zc - d.TableDepth
	zPlane14 := csg.NewZPlane(tableTop)
	zPlane15 := csg.NewZPlane(tableTop - d.TableThickness)

	// radial cylinders
	cylSalt := csg.NewZCylinder(xc, yc, d.SaltRadius)
	cylInconel := csg.NewZCylinder(xc, yc, d.InconelRadius)
	cylHelium := csg.NewZCylinder(xc, yc, d.HeliumRadius)
	cylFirebrick := csg.NewZCylinder(xc, yc, d.FirebrickRadius)
	cylVessel := csg.NewZCylinder(xc, yc, d.VesselRadius)
	cylExternal := csg.NewZCylinder(xc, yc, d.ExternalRadius)

	heaterZ := above(LayerInconel, d.HeaterGap)
	heater := rcc(r3.Vec{X: xc, Y: yc, Z: heaterZ}, d.HeaterHeight, d.HeaterRadius, csg.AxisZ)

	source := d.SourcePosition(center)
	sourceX := xc + d.SourceOffsetX
	capsule := rcc(r3.Vec{X: sourceX, Y: yc, Z: source.Z}, d.SourceLength, d.SourceOuterRadius, csg.AxisX)
	capsuleCavity := rcc(r3.Vec{X: sourceX + d.SourceCapWall, Y: yc, Z: source.Z},
		d.SourceLength-2*d.SourceCapWall, d.SourceInnerRadius, csg.AxisX)

	sphere := csg.NewSphere(center, d.SphereRadius)

	leadBlocks := make([]*csg.Box, len(d.LeadOffsetsX))
	for i, dx := range d.LeadOffsetsX {
		x := xc + dx
		leadBlocks[i] = box(
			x-d.LeadWidth/2, x+d.LeadWidth/2,
			yc-d.LeadLength/2, yc+d.LeadLength/2,
			tableTop, tableTop+d.LeadHeight,
		)
	}

	diamondTop := source.Z - d.DiamondDistance
	diamond := box(
		xc-d.DiamondWidth/2, xc+d.DiamondWidth/2,
		yc-d.DiamondHeight/2, yc+d.DiamondHeight/2,
		diamondTop-d.DiamondThickness, diamondTop,
	)

	foilZr := rcc(r3.Vec{X: xc, Y: yc, Z: source.Z + d.SourceOuterRadius}, d.FoilThickness, d.FoilRadius, csg.AxisZ)
	foilNb := rcc(r3.Vec{X: xc, Y: yc, Z: source.Z - d.SourceOuterRadius - d.FoilThickness}, d.FoilThickness, d.FoilRadius, csg.AxisZ)

	// secondary experiment, own frame
	ec := d.ExpCenter
	expCapsule := rcc(ec, d.ExpLength, d.SourceOuterRadius, csg.AxisX)
	expCavity := rcc(r3.Vec{X: ec.X + d.SourceCapWall, Y: ec.Y, Z: ec.Z},
		d.ExpLength-2*d.SourceCapWall, d.SourceInnerRadius, csg.AxisX)
	sleeveBase := r3.Vec{X: d.ExpSleeveX, Y: ec.Y, Z: ec.Z}
	expLead := rcc(sleeveBase, d.ExpSleeveLength, d.SourceOuterRadius+d.ExpLeadExtra, csg.AxisX)
	expHDPE := rcc(sleeveBase, d.ExpSleeveLength, d.SourceOuterRadius+d.ExpHDPEExtra, csg.AxisX)

	lab := box(d.Lab.Min.X, d.Lab.Max.X, d.Lab.Min.Y, d.Lab.Max.Y, d.Lab.Min.Z, d.Lab.Max.Z)

	if len(errs) > 0 {
		return nil, fmt.Errorf("build BABY geometry: %w", errs[0])
	}

	inside := csg.Neg
	outside := csg.Pos

	sourceWall := csg.And(capsule.Interior(), capsuleCavity.Exterior())
	sourceVoid := capsuleCavity.Interior()
	epoxy := csg.And(outside(zPlane1), inside(zPlane2), inside(sphere))
	aluminaCompressed := csg.And(outside(zPlane2), inside(zPlane3), inside(sphere))
	bottomVessel := csg.And(outside(zPlane3), inside(zPlane4), inside(cylExternal))
	topVessel := csg.And(outside(zPlane12), inside(zPlane13), inside(cylExternal), heater.Exterior())
	cylinderVessel := csg.And(outside(zPlane4), inside(zPlane12), outside(cylVessel), inside(cylExternal))
	vessel := csg.Or(bottomVessel, cylinderVessel, topVessel)
	alumina := csg.And(outside(zPlane4), inside(zPlane5), inside(cylVessel))
	bottomCap := csg.And(outside(zPlane6), inside(zPlane7), inside(cylInconel), heater.Exterior())
	cylinderCap := csg.And(outside(zPlane7), inside(zPlane9), outside(cylSalt), inside(cylInconel), heater.Exterior())
	topCap := csg.And(outside(zPlane9), inside(zPlane10), inside(cylInconel), heater.Exterior())
	capRegion := csg.Or(bottomCap, cylinderCap, topCap)
	salt := csg.And(outside(zPlane7), inside(zPlane8), inside(cylSalt), heater.Exterior())
	gap := csg.And(outside(zPlane8), inside(zPlane9), inside(cylSalt), heater.Exterior())
	firebrick := csg.And(outside(zPlane5), inside(zPlane11), outside(cylHelium), inside(cylFirebrick))
	table := csg.And(outside(zPlane15), inside(zPlane14), inside(sphere))

	p := NewPartition()
	p.Add(CellSourceWall, sourceWall, fills[material.SS304])
	p.Add(CellSourceVoid, sourceVoid, nil)
	p.Add(CellEpoxy, epoxy, fills[material.Epoxy])
	p.Add(CellAluminaCompressed, aluminaCompressed, fills[material.Alumina])
	p.Add(CellVessel, vessel, fills[material.Inconel625])
	p.Add(CellAlumina, alumina, fills[material.Alumina])
	p.Add(CellCap, capRegion, fills[material.Inconel625])
	saltCell := p.Add(CellSalt, salt, fills[material.ClLiF])
	p.Add(CellGap, gap, fills[material.Helium])
	p.Add(CellFirebrick, firebrick, fills[material.Firebrick])
	p.Add(CellHeater, heater.Interior(), fills[material.Heater])
	p.Add(CellTable, table, fills[material.Epoxy])
	for i, b := range leadBlocks {
		p.Add(LeadBlockCell(i), b.Interior(), fills[material.Lead])
	}
	diamondCell := p.Add(CellDiamond, diamond.Interior(), fills[material.Diamond])
	zrCell := p.Add(CellFoilZr, foilZr.Interior(), fills[material.Zirconium])
	nbCell := p.Add(CellFoilNb, foilNb.Interior(), fills[material.Niobium])

	p.AddCatchAll(CellHelium, csg.And(outside(zPlane5), inside(zPlane12), inside(cylVessel)), fills[material.Helium])
	p.AddCatchAll(CellSphere, inside(sphere), fills[material.Air])

	p.Add(CellExpWall, csg.And(expCapsule.Interior(), expCavity.Exterior()), fills[material.SS304])
	p.Add(CellExpVoid, expCavity.Interior(), nil)
	p.Add(CellExpLead, csg.And(expLead.Interior(), expCapsule.Exterior()), fills[material.Lead])
	p.Add(CellExpHDPE, csg.And(expHDPE.Interior(), expLead.Exterior()), fills[material.HDPE])

	p.AddCatchAll(CellLab, lab.Interior(), fills[material.Air])

	g := &Geometry{
		Center:     center,
		Dimensions: d,
		Stack:      stack,
		Lab:        lab,
		Sphere:     sphere,
		Salt:       saltCell,
		Diamond:    diamondCell,
		FoilZr:     zrCell,
		FoilNb:     nbCell,
		Cells:      p.Cells(),
		SampleVolumes: []csg.AABB{
			csg.SphereSolid{Sphere: sphere}.Bounds(),
			expHDPE.Bounds(),
			lab.Bounds(),
		},
	}

	o.logger.Debug("built BABY geometry",
		zap.Float64("x_c", xc), zap.Float64("y_c", yc), zap.Float64("z_c", zc),
		zap.Int("cells", len(g.Cells)),
		zap.Float64("salt_top", zPlane8.Offset),
	)
	return g, nil
}
