package tally

import (
	"errors"
	"testing"
)

func TestBreeding(t *testing.T) {
	mesh := &UnstructuredMesh{Name: "baby", Filename: "../unstructured_mesh/baby.vtk", Library: "moab"}
	ts := Breeding("cllif", []string{"Li6", "Li7"}, mesh)

	if len(ts) != 2 {
		t.Fatalf("expected 2 tallies, got %d", len(ts))
	}
	if ts[0].Name != TBR || ts[1].Name != MeshTBR {
		t.Errorf("unexpected names %s, %s", ts[0].Name, ts[1].Name)
	}
	if len(ts[0].Nuclides) != 2 || len(ts[1].Nuclides) != 0 {
		t.Error("only the cell tally should carry nuclides")
	}
	if ts[1].Filters[1].Type() != "mesh" {
		t.Errorf("expected mesh filter, got %s", ts[1].Filters[1].Type())
	}
	if err := Validate(ts); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if got := Meshes(ts); len(got) != 1 || got[0] != mesh {
		t.Errorf("expected the single mesh, got %v", got)
	}
}

func TestBreedingWithoutMesh(t *testing.T) {
	ts := Breeding("cllif", nil, nil)
	if len(ts) != 1 {
		t.Errorf("expected only the cell tally, got %d", len(ts))
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name     string
		tallies  []*Tally
		expected error
	}{
		{"no score", []*Tally{{Name: "a"}}, ErrNoScore},
		{"empty cell filter", []*Tally{{Name: "a", Scores: []string{"flux"}, Filters: []Filter{CellFilter{}}}}, ErrNoFilter},
		{"duplicate", []*Tally{{Name: "a", Scores: []string{"flux"}}, {Name: "a", Scores: []string{"flux"}}}, ErrDuplicate},
		{"bad library", []*Tally{{Name: "a", Scores: []string{"flux"}, Filters: []Filter{
			MeshFilter{Mesh: &UnstructuredMesh{Filename: "m.vtk", Library: "gmsh"}},
		}}}, ErrMeshLibrary},
	}

	for _, tt := range tests {
		if err := Validate(tt.tallies); !errors.Is(err, tt.expected) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, err)
		}
	}
}
