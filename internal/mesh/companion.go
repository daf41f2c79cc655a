package mesh

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/geometry"
)

// Output file names.
const (
	MshFile = "baby.msh"
	VTKFile = "baby.vtk"
)

type Options struct {
	Dir     string
	Sectors int
	Sizes   Sizes
	Logger  *zap.Logger
}

// Result describes one companion run. Mesh is empty when the cut failed.
type Result struct {
	Solid   HoledCylinder
	Mesh    *Mesh
	Skipped bool
	Files   []string
}

// Run builds the salt solid about center, meshes it and writes the msh and
// vtk files into opts.Dir. A failed cut is logged and leaves an empty mesh;
// the files are written either way.
func Run(center r3.Vec, dims geometry.Dimensions, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sectors == 0 {
		opts.Sectors = 24
	}
	if opts.Sizes == (Sizes{}) {
		opts.Sizes = DefaultSizes()
	}
	log := opts.Logger

	solid, err := SaltSolid(center, dims)
	if err != nil {
		return nil, err
	}
	res := &Result{Solid: solid, Mesh: &Mesh{}}

	m, err := Generate(solid, Background(solid, opts.Sizes), opts.Sectors, opts.Sizes.Max())
	switch {
	case errors.Is(err, ErrCutFailed):
		log.Error("boolean subtraction failed", zap.Error(err))
		res.Skipped = true
	case err != nil:
		return nil, err
	default:
		res.Mesh = m
		log.Info("generated mesh",
			zap.Int("nodes", len(m.Nodes)),
			zap.Int("tetrahedra", len(m.Tets)),
			zap.Int("triangles", len(m.Triangles)),
			zap.Float64("volume", m.Volume()),
		)
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, err
	}
	for _, out := range []struct {
		name  string
		write func(*os.File) error
	}{
		{MshFile, func(f *os.File) error { return WriteMsh(f, res.Mesh) }},
		{VTKFile, func(f *os.File) error { return WriteVTK(f, res.Mesh, "baby") }},
	} {
		path := filepath.Join(opts.Dir, out.name)
		if err := writeFile(path, out.write); err != nil {
			return nil, fmt.Errorf("write %s: %w", out.name, err)
		}
		res.Files = append(res.Files, path)
	}

	for _, et := range res.Mesh.ElementTypes() {
		log.Info("element type", zap.Int("type", et.Code), zap.String("name", et.Name), zap.Int("count", et.Count))
	}
	return res, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
