// Package material defines isotopic compositions and the immutable catalog
// shared by the geometry and model packages.
package material

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrUnknownMaterial = errors.New("material: unknown material")
	ErrUnknownElement  = errors.New("material: no natural abundance data for element")
	ErrDuplicate       = errors.New("material: duplicate material key")
	ErrMixedFractions  = errors.New("material: mixed atom and weight fractions")
)

// FractionKind says whether a fraction is by atom or by weight.
type FractionKind string

const (
	AtomFraction   FractionKind = "ao"
	WeightFraction FractionKind = "wo"
)

// Component is one entry of a composition. Element entries are expanded to
// nuclides with natural abundances when written for the transport engine.
type Component struct {
	Name     string
	Fraction float64
	Kind     FractionKind
	Element  bool
}

// Material is an isotopic or elemental composition with a density in g/cm3.
// It is not modified after construction.
type Material struct {
	Name       string
	Density    float64
	Components []Component
}

// Builder accumulates components the way materials are written down in
// compendium tables.
type Builder struct {
	m Material
}

func New(name string) *Builder {
	return &Builder{m: Material{Name: name}}
}

func (b *Builder) Element(sym string, frac float64, kind FractionKind) *Builder {
	b.m.Components = append(b.m.Components, Component{Name: sym, Fraction: frac, Kind: kind, Element: true})
	return b
}

func (b *Builder) Nuclide(name string, frac float64, kind FractionKind) *Builder {
	b.m.Components = append(b.m.Components, Component{Name: name, Fraction: frac, Kind: kind})
	return b
}

func (b *Builder) Density(gcm3 float64) *Builder {
	b.m.Density = gcm3
	return b
}

func (b *Builder) Build() *Material {
	m := b.m
	m.Components = append([]Component(nil), b.m.Components...)
	return &m
}

// FractionSums returns the sum of fractions per kind.
func (m *Material) FractionSums() map[FractionKind]float64 {
	sums := make(map[FractionKind]float64)
	for _, c := range m.Components {
		sums[c.Kind] += c.Fraction
	}
	return sums
}

// Kind returns the single fraction kind used by m.
func (m *Material) Kind() (FractionKind, error) {
	if len(m.Components) == 0 {
		return AtomFraction, nil
	}
	kind := m.Components[0].Kind
	for _, c := range m.Components[1:] {
		if c.Kind != kind {
			return "", fmt.Errorf("%w: %s", ErrMixedFractions, m.Name)
		}
	}
	return kind, nil
}

// Validate checks the density and that each fraction kind sums to one.
func (m *Material) Validate(tol float64) error {
	if m.Density <= 0 || math.IsNaN(m.Density) {
		return fmt.Errorf("material %q: density must be positive, got %g", m.Name, m.Density)
	}
	for kind, sum := range m.FractionSums() {
		if math.Abs(sum-1) > tol {
			return fmt.Errorf("material %q: %s fractions sum to %.9f", m.Name, kind, sum)
		}
	}
	return nil
}

// NuclideFraction is an expanded nuclide entry.
type NuclideFraction struct {
	Name     string
	Fraction float64
}

// Expand converts element entries to nuclides using natural abundances.
// Weight fractions are split by isotope mass; the result keeps m's kind.
func (m *Material) Expand() ([]NuclideFraction, FractionKind, error) {
	kind, err := m.Kind()
	if err != nil {
		return nil, "", err
	}

	var out []NuclideFraction
	for _, c := range m.Components {
		if !c.Element {
			out = append(out, NuclideFraction{Name: c.Name, Fraction: c.Fraction})
			continue
		}
		isotopes, ok := naturalAbundance[c.Name]
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrUnknownElement, c.Name)
		}
		if kind == AtomFraction {
			for _, iso := range isotopes {
				out = append(out, NuclideFraction{Name: iso.Name, Fraction: c.Fraction * iso.Abundance})
			}
			continue
		}
		var mass float64
		for _, iso := range isotopes {
			mass += iso.Abundance * iso.Mass
		}
		for _, iso := range isotopes {
			out = append(out, NuclideFraction{Name: iso.Name, Fraction: c.Fraction * iso.Abundance * iso.Mass / mass})
		}
	}
	return out, kind, nil
}

// Catalog is an immutable set of materials keyed by short name.
type Catalog struct {
	keys      []string
	materials map[string]*Material
}

// Entry pairs a catalog key with its material.
type Entry struct {
	Key      string
	Material *Material
}

// NewCatalog builds a catalog; keys keep their given order.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{materials: make(map[string]*Material, len(entries))}
	for _, e := range entries {
		if _, dup := c.materials[e.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, e.Key)
		}
		c.keys = append(c.keys, e.Key)
		c.materials[e.Key] = e.Material
	}
	return c, nil
}

// Get returns the material stored under key.
func (c *Catalog) Get(key string) (*Material, error) {
	m, ok := c.materials[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMaterial, key)
	}
	return m, nil
}

// Keys lists keys in definition order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Materials lists materials in definition order.
func (c *Catalog) Materials() []*Material {
	out := make([]*Material, len(c.keys))
	for i, k := range c.keys {
		out[i] = c.materials[k]
	}
	return out
}

func (c *Catalog) Len() int { return len(c.keys) }

// With returns a new catalog holding c's entries plus extra ones. Keys already
// present are left untouched.
func (c *Catalog) With(extra ...Entry) *Catalog {
	out := &Catalog{materials: make(map[string]*Material, len(c.keys)+len(extra))}
	for _, k := range c.keys {
		out.keys = append(out.keys, k)
		out.materials[k] = c.materials[k]
	}
	for _, e := range extra {
		if _, ok := out.materials[e.Key]; ok {
			continue
		}
		out.keys = append(out.keys, e.Key)
		out.materials[e.Key] = e.Material
	}
	return out
}

// Validate checks every material.
func (c *Catalog) Validate(tol float64) error {
	var errs []error
	for _, k := range c.keys {
		if err := c.materials[k].Validate(tol); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Elements lists the distinct element symbols used by the catalog.
func (c *Catalog) Elements() []string {
	seen := make(map[string]bool)
	for _, m := range c.materials {
		for _, comp := range m.Components {
			if comp.Element {
				seen[comp.Name] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
