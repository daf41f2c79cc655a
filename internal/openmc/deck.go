// Package openmc writes a model as an OpenMC XML input deck and runs the
// openmc executable on it.
package openmc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/geometry"
	"github.com/san-kum/babymc/internal/material"
	"github.com/san-kum/babymc/internal/model"
	"github.com/san-kum/babymc/internal/tally"
)

// Deck file names.
const (
	MaterialsFile = "materials.xml"
	GeometryFile  = "geometry.xml"
	SettingsFile  = "settings.xml"
	TalliesFile   = "tallies.xml"
)

var (
	ErrUnknownFill   = errors.New("openmc: cell fill is not in the catalog")
	ErrUnknownRegion = errors.New("openmc: unsupported region")
)

// Deck is the encoded form of a model. IDs depend only on model order.
type Deck struct {
	materials materialsXML
	geometry  geometryXML
	settings  settingsXML
	tallies   talliesXML

	MaterialIDs map[string]int
	CellIDs     map[string]int
	SurfaceIDs  map[csg.Surface]int
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func joinFloats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, " ")
}

// Encode assigns IDs and builds the four deck documents.
func Encode(m *model.Model) (*Deck, error) {
	d := &Deck{
		MaterialIDs: make(map[string]int),
		CellIDs:     make(map[string]int),
		SurfaceIDs:  make(map[csg.Surface]int),
	}
	if err := d.encodeMaterials(m.Materials); err != nil {
		return nil, err
	}
	if err := d.encodeGeometry(m.Materials, m.Cells); err != nil {
		return nil, err
	}
	d.encodeSettings(m.Settings)
	if err := d.encodeTallies(m.Tallies); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Deck) encodeMaterials(cat *material.Catalog) error {
	for i, key := range cat.Keys() {
		mat, err := cat.Get(key)
		if err != nil {
			return err
		}
		nucs, kind, err := mat.Expand()
		if err != nil {
			return fmt.Errorf("material %s: %w", key, err)
		}
		x := materialXML{
			ID:      i + 1,
			Name:    mat.Name,
			Density: densityXML{Units: "g/cm3", Value: num(mat.Density)},
		}
		for _, n := range nucs {
			nx := nuclideXML{Name: n.Name}
			if kind == material.WeightFraction {
				nx.WO = num(n.Fraction)
			} else {
				nx.AO = num(n.Fraction)
			}
			x.Nuclides = append(x.Nuclides, nx)
		}
		d.materials.Materials = append(d.materials.Materials, x)
		d.MaterialIDs[key] = i + 1
	}
	return nil
}

func (d *Deck) encodeGeometry(cat *material.Catalog, cells []*geometry.Cell) error {
	byMaterial := make(map[*material.Material]int)
	for key, id := range d.MaterialIDs {
		m, _ := cat.Get(key)
		byMaterial[m] = id
	}

	for _, c := range cells {
		for _, s := range csg.Surfaces(c.Region) {
			if _, ok := d.SurfaceIDs[s]; ok {
				continue
			}
			id := len(d.SurfaceIDs) + 1
			d.SurfaceIDs[s] = id
			sx := surfaceXML{ID: id, Type: s.Type(), Coeffs: joinFloats(s.Coefficients()...)}
			if bc := s.Boundary(); bc != csg.Transmission {
				sx.Boundary = bc.String()
			}
			d.geometry.Surfaces = append(d.geometry.Surfaces, sx)
		}

		fill := "void"
		if !c.Void() {
			id, ok := byMaterial[c.Fill]
			if !ok {
				return fmt.Errorf("%w: %s (%s)", ErrUnknownFill, c.Name, c.Fill.Name)
			}
			fill = strconv.Itoa(id)
		}
		region, err := d.Region(c.Region)
		if err != nil {
			return fmt.Errorf("cell %s: %w", c.Name, err)
		}
		d.geometry.Cells = append(d.geometry.Cells, cellXML{
			ID:       c.ID,
			Name:     c.Name,
			Material: fill,
			Region:   region,
		})
		d.CellIDs[c.Name] = c.ID
	}
	return nil
}

// Region renders r in OpenMC region syntax using the deck's surface ids.
func (d *Deck) Region(r csg.Region) (string, error) {
	switch v := r.(type) {
	case csg.HalfSpace:
		id, ok := d.SurfaceIDs[v.Surface]
		if !ok {
			return "", fmt.Errorf("%w: surface without id", ErrUnknownRegion)
		}
		if v.Sense == csg.Negative {
			return "-" + strconv.Itoa(id), nil
		}
		return strconv.Itoa(id), nil
	case csg.Intersection:
		return d.join(v, " ", true)
	case csg.Union:
		return d.join(v, " | ", false)
	case csg.Complement:
		inner, err := d.Region(v.Region)
		if err != nil {
			return "", err
		}
		return "~(" + inner + ")", nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnknownRegion, r)
}

func (d *Deck) join(rs []csg.Region, sep string, intersect bool) (string, error) {
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		s, err := d.Region(r)
		if err != nil {
			return "", err
		}
		switch r.(type) {
		case csg.Union:
			if intersect && len(rs) > 1 {
				s = "(" + s + ")"
			}
		case csg.Intersection:
			if !intersect && len(rs) > 1 {
				s = "(" + s + ")"
			}
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

func (d *Deck) encodeSettings(s model.Settings) {
	x := settingsXML{
		RunMode:         s.RunMode,
		Particles:       s.Particles,
		Batches:         s.Batches,
		Inactive:        s.Inactive,
		Seed:            s.Seed,
		PhotonTransport: s.PhotonTransport,
		Output:          outputXML{Tallies: s.TalliesOutput},
	}
	for _, src := range s.Sources {
		x.Sources = append(x.Sources, sourceXML{
			Particle: src.Particle,
			Strength: num(src.Strength),
			Space:    distXML{Type: "point", Parameters: joinFloats(src.Position.X, src.Position.Y, src.Position.Z)},
			Angle: angleXML{
				Type:      "mu-phi",
				Reference: joinFloats(src.Reference.X, src.Reference.Y, src.Reference.Z),
				Mu:        distXML{Type: "uniform", Parameters: joinFloats(src.MuMin, src.MuMax)},
				Phi:       distXML{Type: "uniform", Parameters: joinFloats(0, 2*math.Pi)},
			},
			Energy: distXML{Type: "muir", Parameters: joinFloats(src.Energy.E0, src.Energy.MassRatio, src.Energy.KT)},
		})
	}
	d.settings = x
}

func (d *Deck) encodeTallies(ts []*tally.Tally) error {
	meshIDs := make(map[*tally.UnstructuredMesh]int)
	for _, m := range tally.Meshes(ts) {
		id := len(meshIDs) + 1
		meshIDs[m] = id
		d.tallies.Meshes = append(d.tallies.Meshes, meshXML{
			ID:       id,
			Type:     "unstructured",
			Library:  m.Library,
			Filename: m.Filename,
		})
	}

	filterIDs := make(map[string]int)
	for i, t := range ts {
		var ids []string
		for _, flt := range t.Filters {
			var bins string
			switch v := flt.(type) {
			case tally.CellFilter:
				parts := make([]string, len(v.Cells))
				for j, name := range v.Cells {
					id, ok := d.CellIDs[name]
					if !ok {
						return fmt.Errorf("tally %s: %w: %s", t.Name, model.ErrUnknownCell, name)
					}
					parts[j] = strconv.Itoa(id)
				}
				bins = strings.Join(parts, " ")
			case tally.MeshFilter:
				bins = strconv.Itoa(meshIDs[v.Mesh])
			default:
				return fmt.Errorf("tally %s: unsupported filter %s", t.Name, flt.Type())
			}

			key := flt.Type() + ":" + bins
			id, ok := filterIDs[key]
			if !ok {
				id = len(filterIDs) + 1
				filterIDs[key] = id
				d.tallies.Filters = append(d.tallies.Filters, filterXML{ID: id, Type: flt.Type(), Bins: bins})
			}
			ids = append(ids, strconv.Itoa(id))
		}
		d.tallies.Tallies = append(d.tallies.Tallies, tallyXML{
			ID:       i + 1,
			Name:     t.Name,
			Filters:  strings.Join(ids, " "),
			Nuclides: strings.Join(t.Nuclides, " "),
			Scores:   strings.Join(t.Scores, " "),
		})
	}
	return nil
}

// Files returns the encoded documents keyed by file name.
func (d *Deck) Files() (map[string][]byte, error) {
	docs := map[string]any{
		MaterialsFile: d.materials,
		GeometryFile:  d.geometry,
		SettingsFile:  d.settings,
		TalliesFile:   d.tallies,
	}
	out := make(map[string][]byte, len(docs))
	for name, doc := range docs {
		body, err := xml.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		out[name] = append([]byte(xml.Header), append(body, '\n')...)
	}
	return out, nil
}

// WriteDir writes the deck into dir and returns the paths written in a
// fixed order.
func (d *Deck) WriteDir(dir string) ([]string, error) {
	files, err := d.Files()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	var paths []string
	for _, name := range []string{MaterialsFile, GeometryFile, SettingsFile, TalliesFile} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, files[name], 0644); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Write encodes m and writes it into dir.
func Write(dir string, m *model.Model) (*Deck, []string, error) {
	d, err := Encode(m)
	if err != nil {
		return nil, nil, err
	}
	paths, err := d.WriteDir(dir)
	if err != nil {
		return nil, nil, err
	}
	return d, paths, nil
}

// Stats summarises deck sizes.
type Stats struct {
	Materials int
	Cells     int
	Surfaces  int
	Sources   int
	Tallies   int
}

func (d *Deck) Stats() Stats {
	return Stats{
		Materials: len(d.materials.Materials),
		Cells:     len(d.geometry.Cells),
		Surfaces:  len(d.geometry.Surfaces),
		Sources:   len(d.settings.Sources),
		Tallies:   len(d.tallies.Tallies),
	}
}
