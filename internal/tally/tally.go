// Package tally declares the scores requested from the transport engine.
package tally

import (
	"errors"
	"fmt"
)

var (
	ErrNoScore     = errors.New("tally: no score")
	ErrNoFilter    = errors.New("tally: filter has no bins")
	ErrDuplicate   = errors.New("tally: duplicate name")
	ErrMeshLibrary = errors.New("tally: unsupported mesh library")
)

// Filter restricts a tally to a set of bins.
type Filter interface {
	Type() string
	Validate() error
}

// CellFilter bins by cell. Cells are referenced by name and resolved to ids
// when the deck is written.
type CellFilter struct {
	Cells []string
}

func (f CellFilter) Type() string { return "cell" }

func (f CellFilter) Validate() error {
	if len(f.Cells) == 0 {
		return fmt.Errorf("%w: cell", ErrNoFilter)
	}
	return nil
}

// UnstructuredMesh is an external mesh file read by the engine.
type UnstructuredMesh struct {
	Name     string
	Filename string
	Library  string
}

func (m *UnstructuredMesh) Validate() error {
	switch m.Library {
	case "moab", "libmesh":
	default:
		return fmt.Errorf("%w: %q", ErrMeshLibrary, m.Library)
	}
	if m.Filename == "" {
		return fmt.Errorf("tally: mesh %q has no file", m.Name)
	}
	return nil
}

// MeshFilter bins by mesh element.
type MeshFilter struct {
	Mesh *UnstructuredMesh
}

func (f MeshFilter) Type() string { return "mesh" }

func (f MeshFilter) Validate() error {
	if f.Mesh == nil {
		return fmt.Errorf("%w: mesh", ErrNoFilter)
	}
	return f.Mesh.Validate()
}

type Tally struct {
	Name     string
	Scores   []string
	Filters  []Filter
	Nuclides []string
}

func (t *Tally) Validate() error {
	if len(t.Scores) == 0 {
		return fmt.Errorf("%w: %s", ErrNoScore, t.Name)
	}
	for _, f := range t.Filters {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("tally %s: %w", t.Name, err)
		}
	}
	return nil
}

// Meshes lists the distinct meshes referenced by the tallies in order.
func Meshes(ts []*Tally) []*UnstructuredMesh {
	var out []*UnstructuredMesh
	seen := make(map[*UnstructuredMesh]bool)
	for _, t := range ts {
		for _, f := range t.Filters {
			mf, ok := f.(MeshFilter)
			if !ok || seen[mf.Mesh] {
				continue
			}
			seen[mf.Mesh] = true
			out = append(out, mf.Mesh)
		}
	}
	return out
}

// Validate checks every tally and name uniqueness.
func Validate(ts []*Tally) error {
	names := make(map[string]bool)
	for _, t := range ts {
		if names[t.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicate, t.Name)
		}
		names[t.Name] = true
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}
