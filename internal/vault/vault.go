// Package vault wraps a locally built geometry in the concrete room it sits
// in. The added cells keep their regions; the room air is whatever the vault
// interior leaves outside the exclusion region.
package vault

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/geometry"
	"github.com/san-kum/babymc/internal/material"
)

const (
	CellRoom = "vault_air"
	CellWall = "vault_walls"
)

var ErrNoExclusion = errors.New("vault: exclusion region is required")

// Additions is what the caller places inside the vault.
type Additions struct {
	Cells     []*geometry.Cell
	Materials *material.Catalog
	// Exclusion is the volume owned by Cells. It must lie inside Extent.
	Exclusion csg.Region
	Extent    csg.AABB
}

type Vault struct {
	Interior *csg.Box
	Outer    *csg.Box

	Room *geometry.Cell
	Wall *geometry.Cell

	// Cells holds the added cells followed by the room and the walls.
	Cells     []*geometry.Cell
	Materials *material.Catalog
}

type options struct {
	margin float64
	wall   float64
	logger *zap.Logger
}

type Option func(*options)

// WithMargin sets the air gap in cm between the extent and the walls.
func WithMargin(cm float64) Option {
	return func(o *options) { o.margin = cm }
}

func WithWallThickness(cm float64) Option {
	return func(o *options) { o.wall = cm }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Build composes the vault around add. Concrete and air are added to the
// catalog when missing. The outer wall surfaces carry a vacuum boundary.
func Build(add Additions, opts ...Option) (*Vault, error) {
	o := options{margin: 50, wall: 100, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if add.Exclusion == nil {
		return nil, ErrNoExclusion
	}

	mats := add.Materials.With(
		material.Entry{Key: material.Concrete, Material: material.ConcreteMaterial()},
		material.Entry{Key: material.Air, Material: material.AirMaterial()},
	)
	air, err := mats.Get(material.Air)
	if err != nil {
		return nil, err
	}
	concrete, err := mats.Get(material.Concrete)
	if err != nil {
		return nil, err
	}

	interior, err := grow(add.Extent, o.margin)
	if err != nil {
		return nil, fmt.Errorf("vault interior: %w", err)
	}
	outer, err := grow(interior.Bounds(), o.wall)
	if err != nil {
		return nil, fmt.Errorf("vault walls: %w", err)
	}
	outer.SetBoundary(csg.Vacuum)

	next := len(add.Cells) + 1
	room := &geometry.Cell{
		ID:       next,
		Name:     CellRoom,
		Region:   csg.Subtract(interior.Interior(), add.Exclusion),
		Fill:     air,
		CatchAll: true,
	}
	wall := &geometry.Cell{
		ID:     next + 1,
		Name:   CellWall,
		Region: csg.And(outer.Interior(), interior.Exterior()),
		Fill:   concrete,
	}

	cells := make([]*geometry.Cell, 0, len(add.Cells)+2)
	cells = append(cells, add.Cells...)
	cells = append(cells, room, wall)

	o.logger.Debug("built vault",
		zap.Float64("margin", o.margin),
		zap.Float64("wall", o.wall),
		zap.Int("cells", len(cells)),
		zap.Int("materials", mats.Len()),
	)
	return &Vault{
		Interior:  interior,
		Outer:     outer,
		Room:      room,
		Wall:      wall,
		Cells:     cells,
		Materials: mats,
	}, nil
}

// Bounds is the outer extent of the vault.
func (v *Vault) Bounds() csg.AABB { return v.Outer.Bounds() }

func grow(b csg.AABB, d float64) (*csg.Box, error) {
	pad := r3.Vec{X: d, Y: d, Z: d}
	lo, hi := r3.Sub(b.Min, pad), r3.Add(b.Max, pad)
	return csg.NewBox(lo.X, hi.X, lo.Y, hi.Y, lo.Z, hi.Z)
}
