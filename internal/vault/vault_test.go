package vault

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/geometry"
	"github.com/san-kum/babymc/internal/material"
)

func buildBABY(t *testing.T) (*geometry.Geometry, *material.Catalog) {
	t.Helper()
	cat := material.NewBABYCatalog()
	g, err := geometry.Build(r3.Vec{X: 587, Y: 60, Z: 100}, cat)
	if err != nil {
		t.Fatalf("geometry failed: %v", err)
	}
	return g, cat
}

func TestBuildAroundLab(t *testing.T) {
	g, cat := buildBABY(t)
	v, err := Build(Additions{
		Cells:     g.Cells,
		Materials: cat,
		Exclusion: g.Lab.Interior(),
		Extent:    g.Lab.Bounds(),
	}, WithMargin(20), WithWallThickness(50))
	if err != nil {
		t.Fatalf("vault failed: %v", err)
	}

	if len(v.Cells) != len(g.Cells)+2 {
		t.Fatalf("expected %d cells, got %d", len(g.Cells)+2, len(v.Cells))
	}
	if v.Room.ID != len(g.Cells)+1 || v.Wall.ID != len(g.Cells)+2 {
		t.Errorf("unexpected ids %d, %d", v.Room.ID, v.Wall.ID)
	}
	if _, err := v.Materials.Get(material.Concrete); err != nil {
		t.Errorf("expected concrete in catalog: %v", err)
	}
	if v.Materials.Len() != cat.Len()+1 {
		t.Errorf("expected only concrete added, got %d materials", v.Materials.Len())
	}
	if v.Outer.XMin.Boundary() != csg.Vacuum {
		t.Error("expected vacuum outer boundary")
	}

	tests := []struct {
		name string
		p    r3.Vec
		want string
	}{
		{"inside lab", r3.Vec{X: 300, Y: 300, Z: 100}, geometry.CellLab},
		{"room air", r3.Vec{X: 90, Y: 300, Z: 100}, CellRoom},
		{"wall", r3.Vec{X: 50, Y: 300, Z: 100}, CellWall},
		{"salt", r3.Vec{X: 590, Y: 60, Z: 108}, geometry.CellSalt},
	}

	for _, tt := range tests {
		var claims []string
		for _, c := range v.Cells {
			if c.Region.Contains(tt.p) {
				claims = append(claims, c.Name)
			}
		}
		if len(claims) != 1 || claims[0] != tt.want {
			t.Errorf("%s: expected only %s, got %v", tt.name, tt.want, claims)
		}
	}

	outside := r3.Vec{X: 0, Y: 300, Z: 100}
	for _, c := range v.Cells {
		if c.Region.Contains(outside) {
			t.Errorf("point outside the vault claimed by %s", c.Name)
		}
	}
}

func TestBuildRequiresExclusion(t *testing.T) {
	_, cat := buildBABY(t)
	if _, err := Build(Additions{Materials: cat}); !errors.Is(err, ErrNoExclusion) {
		t.Errorf("expected ErrNoExclusion, got %v", err)
	}
}

func TestBuildRejectsNegativeWall(t *testing.T) {
	g, cat := buildBABY(t)
	_, err := Build(Additions{Cells: g.Cells, Materials: cat, Exclusion: g.Lab.Interior(), Extent: g.Lab.Bounds()},
		WithWallThickness(-200))
	if !errors.Is(err, csg.ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
}
