package viz

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/geometry"
	"github.com/san-kum/babymc/internal/material"
)

// twoHalves splits the unit box at x = 0.5.
func twoHalves(t *testing.T) ([]*geometry.Cell, csg.AABB) {
	t.Helper()
	box, err := csg.NewBox(0, 1, 0, 1, 0, 1)
	if err != nil {
		t.Fatalf("box: %v", err)
	}
	mid := csg.NewXPlane(0.5)
	steel := &material.Material{Name: "steel", Density: 8}

	p := geometry.NewPartition()
	p.Add("left", csg.And(box.Interior(), csg.Neg(mid)), steel)
	p.AddCatchAll("right", box.Interior(), nil)
	return p.Cells(), box.Bounds()
}

func TestParsePlane(t *testing.T) {
	for _, name := range []string{"xy", "XZ", "yz"} {
		p, err := ParsePlane(name)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if p.String() != strings.ToLower(name) {
			t.Errorf("round trip %s gave %s", name, p)
		}
	}
	if _, err := ParsePlane("zz"); err == nil {
		t.Error("expected error for unknown plane")
	}
}

func TestSlicePoint(t *testing.T) {
	s := Slice{Plane: PlaneXZ, Origin: r3.Vec{X: 10, Y: 5, Z: 20}, Width: 4, Height: 2, Cols: 4, Rows: 2}

	p := s.Point(0, 0)
	want := r3.Vec{X: 8.5, Y: 5, Z: 20.5}
	if p != want {
		t.Errorf("top-left pixel: expected %v, got %v", want, p)
	}
	if s.Depth() != 5 {
		t.Errorf("expected depth 5, got %f", s.Depth())
	}
	if got := s.Shift(2).Origin.Y; got != 7 {
		t.Errorf("shift should move along y, got %f", got)
	}
	if got := s.Pan(0.5, 0).Origin.X; got != 12 {
		t.Errorf("pan should move half a width, got %f", got)
	}
	if z := s.Zoom(2); z.Width != 2 || z.Height != 1 {
		t.Errorf("unexpected zoom %+v", z)
	}
}

func TestFitCoversBounds(t *testing.T) {
	b := csg.AABB{Max: r3.Vec{X: 100, Y: 10, Z: 50}}
	s := Fit(b, PlaneXZ, 80, 20, 2)
	if s.Width < 100 || s.Height < 50 {
		t.Errorf("slice %vx%v does not cover bounds", s.Width, s.Height)
	}
	// pixels are twice as tall as wide
	if ratio := (s.Width / 80) / (s.Height / 20); ratio < 0.49 || ratio > 0.51 {
		t.Errorf("expected pixel width/height 0.5, got %f", ratio)
	}
}

func TestRasterize(t *testing.T) {
	cells, bounds := twoHalves(t)
	s := Fit(bounds, PlaneXY, 10, 10, 1)

	r, err := Rasterize(context.Background(), cells, s, ByCell)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if len(r.Legend) != 2 || r.Legend[0] != "left" {
		t.Fatalf("unexpected legend %v", r.Legend)
	}
	if r.At(0, 0) != 0 || r.At(9, 9) != 1 {
		t.Errorf("unexpected corner pixels %d %d", r.At(0, 0), r.At(9, 9))
	}
	counts := r.Counts()
	if counts["left"] != 50 || counts["right"] != 50 {
		t.Errorf("expected an even split, got %v", counts)
	}

	m, err := Rasterize(context.Background(), cells, s, ByMaterial)
	if err != nil {
		t.Fatal(err)
	}
	if m.Legend[0] != "steel" || m.Legend[1] != "void" {
		t.Errorf("unexpected material legend %v", m.Legend)
	}
}

func TestRasterizeMarksGapsAndOverlaps(t *testing.T) {
	cells, bounds := twoHalves(t)
	rogue := &geometry.Cell{ID: 3, Name: "rogue", Region: csg.Neg(csg.NewXPlane(0.2))}
	cells = append(cells, rogue)

	s := Fit(csg.AABB{Min: r3.Vec{X: -1, Y: -1}, Max: bounds.Max}, PlaneXY, 20, 20, 1)
	r, err := Rasterize(context.Background(), cells, s, ByCell)
	if err != nil {
		t.Fatal(err)
	}

	var gaps, overlaps int
	for _, v := range r.Index {
		switch v {
		case Empty:
			gaps++
		case Overlap:
			overlaps++
		}
	}
	if overlaps == 0 {
		t.Error("expected overlapping pixels where rogue meets left")
	}
	if gaps == 0 {
		t.Error("expected empty pixels below the box")
	}
	if !strings.Contains(r.ASCII(), "!") {
		t.Error("ascii plot should flag overlaps")
	}
}

func TestRasterizeRejectsEmptySlice(t *testing.T) {
	cells, _ := twoHalves(t)
	if _, err := Rasterize(context.Background(), cells, Slice{}, ByCell); err == nil {
		t.Error("expected error for empty slice")
	}
}

func TestOutline(t *testing.T) {
	cells, bounds := twoHalves(t)
	r, err := Rasterize(context.Background(), cells, Fit(bounds, PlaneXY, 8, 8, 1), ByCell)
	if err != nil {
		t.Fatal(err)
	}

	c := Outline(r)
	if c.Width != 4 || c.Height != 2 {
		t.Fatalf("unexpected canvas %dx%d", c.Width, c.Height)
	}
	for y := 0; y < 8; y++ {
		if !c.IsSet(3, y) {
			t.Errorf("boundary pixel (3,%d) should be set", y)
		}
		if c.IsSet(0, y) || c.IsSet(7, y) {
			t.Errorf("interior pixel in row %d should be clear", y)
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal pixel %d not set", i)
		}
	}
	if c.IsSet(-1, 0) || c.IsSet(100, 0) {
		t.Error("out of range pixels must read clear")
	}
	if lines := strings.Count(c.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 lines, got %d", lines)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("nope").Name != ThemeDefault.Name {
		t.Error("unknown theme should fall back to default")
	}
	th := ThemeDefault
	if th.Color(len(th.Palette)) != th.Palette[0] {
		t.Error("palette should wrap")
	}
	if th.Color(Overlap) != th.Error {
		t.Error("overlaps use the error colour")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}

func TestLegend(t *testing.T) {
	cells, bounds := twoHalves(t)
	r, err := Rasterize(context.Background(), cells, Fit(bounds, PlaneXY, 10, 10, 1), ByCell)
	if err != nil {
		t.Fatal(err)
	}
	out := Legend(r, ThemeDefault)
	if !strings.Contains(out, "left") || !strings.Contains(out, "50.0%") {
		t.Errorf("unexpected legend:\n%s", out)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewerKeys(t *testing.T) {
	cells, bounds := twoHalves(t)
	v := NewViewer(cells, bounds, bounds.Center())
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if v.Slice().Plane != PlaneXZ {
		t.Fatalf("expected default xz plane, got %s", v.Slice().Plane)
	}
	if v.Raster() == nil {
		t.Fatal("expected an initial raster")
	}

	v.Update(runes("z"))
	if v.Slice().Plane != PlaneXY {
		t.Errorf("z should select the xy plane, got %s", v.Slice().Plane)
	}

	w := v.Slice().Width
	v.Update(runes("+"))
	if v.Slice().Width >= w {
		t.Error("+ should zoom in")
	}

	d := v.Slice().Depth()
	v.Update(runes("]"))
	if v.Slice().Depth() <= d {
		t.Error("] should move the slice forward")
	}

	v.Update(runes("m"))
	if v.ColorBy() != ByMaterial || v.Raster().By != ByMaterial {
		t.Error("m should switch to material colouring")
	}

	v.Update(runes("o"))
	if !strings.ContainsRune(v.View(), rune(brailleBlank)) {
		t.Error("outline view should use braille")
	}

	_, cmd := v.Update(runes("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}
