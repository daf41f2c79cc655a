// Package model assembles the BABY geometry, materials, source and tallies
// into one transport-ready model.
package model

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/babymc/internal/config"
	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/geometry"
	"github.com/san-kum/babymc/internal/material"
	"github.com/san-kum/babymc/internal/source"
	"github.com/san-kum/babymc/internal/tally"
	"github.com/san-kum/babymc/internal/vault"
)

const RunModeFixedSource = "fixed source"

// fractionTolerance bounds the deviation of fraction sums from one.
const fractionTolerance = 1e-6

var ErrUnknownCell = errors.New("model: tally references unknown cell")

type Settings struct {
	RunMode         string
	Batches         int
	Inactive        int
	Particles       int
	PhotonTransport bool
	TalliesOutput   bool
	Seed            uint64
	Sources         []source.Source
}

type Model struct {
	Geometry *geometry.Geometry
	// Vault is nil when the model is bounded by the lab itself.
	Vault     *vault.Vault
	Cells     []*geometry.Cell
	Materials *material.Catalog
	Settings  Settings
	Tallies   []*tally.Tally
}

type options struct {
	catalog *material.Catalog
	dims    *geometry.Dimensions
	logger  *zap.Logger
}

type Option func(*options)

// WithCatalog replaces the BABY catalog.
func WithCatalog(c *material.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

func WithDimensions(d geometry.Dimensions) Option {
	return func(o *options) { o.dims = &d }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Assemble builds the complete model described by cfg.
func Assemble(cfg *config.Config, opts ...Option) (*Model, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cat := o.catalog
	if cat == nil {
		cat = material.NewBABYCatalog()
	}
	if err := cat.Validate(fractionTolerance); err != nil {
		return nil, err
	}

	center := cfg.Center.R3()
	gopts := []geometry.Option{geometry.WithLogger(o.logger)}
	if o.dims != nil {
		gopts = append(gopts, geometry.WithDimensions(*o.dims))
	}
	geom, err := geometry.Build(center, cat, gopts...)
	if err != nil {
		return nil, err
	}

	pos := cfg.SourcePosition(geom.Dimensions.SourcePosition(center))
	sources, err := source.A325Generator(pos, cfg.Source.Direction.R3(),
		source.WithDeuteronEnergy(cfg.Source.DeuteronEnergy),
		source.WithBins(cfg.Source.AngularBins),
		source.WithIonTemperature(cfg.Source.IonTemperature),
	)
	if err != nil {
		return nil, err
	}

	var mesh *tally.UnstructuredMesh
	if cfg.Tallies.MeshTally {
		mesh = &tally.UnstructuredMesh{
			Name:     "baby",
			Filename: cfg.Tallies.MeshPath,
			Library:  cfg.Tallies.MeshLibrary,
		}
	}
	tallies := tally.Breeding(geom.Salt.Name, cfg.Tallies.Nuclides, mesh)
	for _, t := range tallies {
		t.Scores = []string{cfg.Tallies.Score}
	}

	m := &Model{
		Geometry:  geom,
		Cells:     geom.Cells,
		Materials: cat,
		Settings: Settings{
			RunMode:         RunModeFixedSource,
			Batches:         cfg.Settings.Batches,
			Inactive:        cfg.Settings.Inactive,
			Particles:       cfg.Settings.Particles,
			PhotonTransport: cfg.Settings.PhotonTransport,
			TalliesOutput:   cfg.Settings.TalliesOutput,
			Seed:            cfg.Settings.Seed,
			Sources:         sources,
		},
		Tallies: tallies,
	}

	if cfg.Vault.Enabled {
		v, err := vault.Build(vault.Additions{
			Cells:     geom.Cells,
			Materials: cat,
			Exclusion: geom.Lab.Interior(),
			Extent:    geom.Lab.Bounds(),
		},
			vault.WithMargin(cfg.Vault.Margin),
			vault.WithWallThickness(cfg.Vault.WallThickness),
			vault.WithLogger(o.logger),
		)
		if err != nil {
			return nil, err
		}
		m.Vault = v
		m.Cells = v.Cells
		m.Materials = v.Materials
	} else {
		geom.Lab.SetBoundary(csg.Vacuum)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	o.logger.Info("assembled model",
		zap.Int("cells", len(m.Cells)),
		zap.Int("materials", m.Materials.Len()),
		zap.Int("sources", len(sources)),
		zap.Int("tallies", len(tallies)),
		zap.Bool("vault", m.Vault != nil),
	)
	return m, nil
}

// Validate checks the tallies and that every cell filter names a model cell.
func (m *Model) Validate() error {
	if err := tally.Validate(m.Tallies); err != nil {
		return err
	}
	for _, t := range m.Tallies {
		for _, f := range t.Filters {
			cf, ok := f.(tally.CellFilter)
			if !ok {
				continue
			}
			for _, name := range cf.Cells {
				if _, ok := m.Cell(name); !ok {
					return fmt.Errorf("%w: %s in %s", ErrUnknownCell, name, t.Name)
				}
			}
		}
	}
	return nil
}

func (m *Model) Cell(name string) (*geometry.Cell, bool) {
	for _, c := range m.Cells {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Bounds is the outermost box of the model.
func (m *Model) Bounds() csg.AABB {
	if m.Vault != nil {
		return m.Vault.Bounds()
	}
	return m.Geometry.Lab.Bounds()
}
