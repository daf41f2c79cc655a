package mesh

import (
	"bytes"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/geometry"
)

var center = r3.Vec{X: 587, Y: 60, Z: 100}

func saltSolid(t *testing.T) HoledCylinder {
	t.Helper()
	s, err := SaltSolid(center, geometry.DefaultDimensions())
	require.NoError(t, err)
	return s
}

func polygonArea(n int, r float64) float64 {
	return float64(n) / 2 * math.Sin(2*math.Pi/float64(n)) * r * r
}

func TestSaltSolid(t *testing.T) {
	s := saltSolid(t)

	assert.InDelta(t, 106.766, s.Base.Z, 1e-9)
	assert.InDelta(t, 6.51822, s.Height, 1e-9)
	assert.InDelta(t, 113.28422, s.Top(), 1e-9)
	assert.InDelta(t, 5.64022, s.BoreDepth, 1e-9)
	assert.InDelta(t, 107.644, s.BoreBottom(), 1e-9)
	assert.Equal(t, 7.0, s.Radius)
	assert.Equal(t, 0.439, s.BoreRadius)
	require.NoError(t, s.ValidateCut())

	assert.True(t, s.Contains(r3.Vec{X: 590, Y: 60, Z: 110}))
	assert.False(t, s.Contains(r3.Vec{X: 587.1, Y: 60, Z: 110}), "inside the bore")
	assert.True(t, s.Contains(r3.Vec{X: 587.1, Y: 60, Z: 107}), "below the bore")
	assert.False(t, s.Contains(r3.Vec{X: 595, Y: 60, Z: 110}), "outside the radius")
}

func TestGenerateFillsPolygonVolume(t *testing.T) {
	s := saltSolid(t)
	sizes := DefaultSizes()
	m, err := Generate(s, Background(s, sizes), 24, sizes.Max())
	require.NoError(t, err)

	assert.Len(t, m.Tets, 28728)
	assert.InEpsilon(t, s.PolygonVolume(24), m.Volume(), 1e-9)
	assert.InEpsilon(t, s.Volume(), m.Volume(), 0.02)

	for i := range m.Tets {
		require.Positive(t, m.TetVolume(i), "tet %d", i)
	}
	for _, p := range m.Nodes {
		require.LessOrEqual(t, math.Hypot(p.X-center.X, p.Y-center.Y), s.Radius+1e-9)
	}
}

func TestGenerateBoundaryPatches(t *testing.T) {
	s := saltSolid(t)
	sizes := DefaultSizes()
	m, err := Generate(s, Background(s, sizes), 24, sizes.Max())
	require.NoError(t, err)

	n := 24
	side := func(r float64) float64 { return float64(n) * 2 * r * math.Sin(math.Pi/float64(n)) }

	assert.InEpsilon(t, polygonArea(n, s.Radius), m.SurfaceArea(SurfaceBottom), 1e-9)
	assert.InEpsilon(t, polygonArea(n, s.Radius)-polygonArea(n, s.BoreRadius), m.SurfaceArea(SurfaceTop), 1e-9)
	assert.InEpsilon(t, side(s.Radius)*s.Height, m.SurfaceArea(SurfaceOuter), 1e-9)
	assert.InEpsilon(t, side(s.BoreRadius)*s.BoreDepth, m.SurfaceArea(SurfaceBore), 1e-9)
	assert.InEpsilon(t, polygonArea(n, s.BoreRadius), m.SurfaceArea(SurfaceBoreCap), 1e-9)

	types := m.ElementTypes()
	require.Len(t, types, 2)
	assert.Equal(t, GmshTriangle, types[0].Code)
	assert.Equal(t, "Tetrahedron 4", types[1].Name)
}

func TestGenerateDeterministic(t *testing.T) {
	s := saltSolid(t)
	sizes := DefaultSizes()
	a, err := Generate(s, Background(s, sizes), 24, sizes.Max())
	require.NoError(t, err)
	b, err := Generate(s, Background(s, sizes), 24, sizes.Max())
	require.NoError(t, err)

	assert.Equal(t, len(a.Tets), len(b.Tets))
	assert.Equal(t, a.Volume(), b.Volume())
	assert.Equal(t, a.Nodes, b.Nodes)
}

func TestGenerateThroughBore(t *testing.T) {
	s := HoledCylinder{Base: r3.Vec{}, Height: 2, Radius: 3, BoreRadius: 1, BoreTop: 5, BoreDepth: 10}
	sizes := Sizes{Bore: 0.5, Outer: 1, Bottom: 0.5}
	m, err := Generate(s, Background(s, sizes), 12, sizes.Max())
	require.NoError(t, err)

	assert.InEpsilon(t, s.PolygonVolume(12), m.Volume(), 1e-9)
	assert.InEpsilon(t, polygonArea(12, 3)-polygonArea(12, 1), m.SurfaceArea(SurfaceBottom), 1e-9)
	assert.Zero(t, m.SurfaceArea(SurfaceBoreCap))
}

func TestGenerateInternalCavity(t *testing.T) {
	s := HoledCylinder{Base: r3.Vec{}, Height: 4, Radius: 3, BoreRadius: 1, BoreTop: 3, BoreDepth: 2}
	sizes := Sizes{Bore: 0.5, Outer: 1, Bottom: 0.5}
	m, err := Generate(s, Background(s, sizes), 12, sizes.Max())
	require.NoError(t, err)

	assert.InEpsilon(t, s.PolygonVolume(12), m.Volume(), 1e-9)
	assert.InEpsilon(t, 2*polygonArea(12, 1), m.SurfaceArea(SurfaceBoreCap), 1e-9)
}

func TestValidateCut(t *testing.T) {
	base := HoledCylinder{Height: 2, Radius: 3, BoreRadius: 1, BoreTop: 2, BoreDepth: 1}
	tests := []struct {
		name   string
		modify func(*HoledCylinder)
	}{
		{"bore consumes solid", func(s *HoledCylinder) { s.BoreRadius = 3 }},
		{"bore above solid", func(s *HoledCylinder) { s.BoreTop = 10 }},
		{"bore below solid", func(s *HoledCylinder) { s.BoreTop = -1 }},
		{"empty bore", func(s *HoledCylinder) { s.BoreDepth = 0 }},
	}

	require.NoError(t, base.ValidateCut())
	for _, tt := range tests {
		s := base
		tt.modify(&s)
		assert.ErrorIs(t, s.ValidateCut(), ErrCutFailed, tt.name)
	}

	bad := base
	bad.Height = 0
	assert.ErrorIs(t, bad.ValidateCut(), ErrInvalid)
}

func TestGenerateRejectsFewSectors(t *testing.T) {
	s := saltSolid(t)
	_, err := Generate(s, Background(s, DefaultSizes()), 2, 2)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestGraded(t *testing.T) {
	pts := graded(0, 1, 0.1, 0.3)
	require.Len(t, pts, 6)
	assert.Equal(t, 0.0, pts[0])
	assert.Equal(t, 1.0, pts[len(pts)-1])
	for i := 2; i < len(pts); i++ {
		assert.Greater(t, pts[i]-pts[i-1], pts[i-1]-pts[i-2], "spacing should grow")
	}

	assert.Len(t, graded(0, 0.01, 1, 1), 2)
}

func TestVTKRoundTrip(t *testing.T) {
	s := saltSolid(t)
	m, err := Generate(s, Background(s, DefaultSizes()), 12, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteVTK(&buf, m, "baby"))
	back, err := ReadVTK(&buf)
	require.NoError(t, err)

	assert.Len(t, back.Nodes, len(m.Nodes))
	assert.Equal(t, m.Tets, back.Tets)
	assert.InEpsilon(t, m.Volume(), back.Volume(), 1e-12)
}

func TestReadVTKErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no header", "hello\n"},
		{"binary", "# vtk DataFile Version 2.0\nt\nBINARY\n"},
		{"polydata", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET POLYDATA\n"},
		{"truncated points", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 2 double\n0 0 0\n"},
		{"hexahedron", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 1 double\n0 0 0\nCELLS 1 2\n1 0\nCELL_TYPES 1\n12\n"},
		{"bad node", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 1 double\n0 0 0\nCELLS 1 2\n1 4\n"},
		{"negative points", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS -1 double\n"},
		{"negative cells", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 1 double\n0 0 0\nCELLS -1 2\n"},
		{"negative node count", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 1 double\n0 0 0\nCELLS 1 2\n-3 0\n"},
		{"cells larger than size", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 1 double\n0 0 0\nCELLS 1000000000 5\n4 0 0 0 0\n"},
		{"node count past size", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 1 double\n0 0 0\nCELLS 1 5\n2000000000 0\n"},
		{"huge truncated points", "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 2000000000 double\n0 0 0\n"},
	}

	for _, tt := range tests {
		var err error
		require.NotPanics(t, func() { _, err = ReadVTK(strings.NewReader(tt.input)) }, tt.name)
		assert.ErrorIs(t, err, ErrFormat, tt.name)
	}
}

func TestWriteMsh(t *testing.T) {
	s := HoledCylinder{Base: r3.Vec{}, Height: 1, Radius: 2, BoreRadius: 0.5, BoreTop: 1, BoreDepth: 0.5}
	m, err := Generate(s, Background(s, Sizes{Bore: 0.5, Outer: 1, Bottom: 0.5}), 6, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMsh(&buf, m))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Equal(t, []string{"$MeshFormat", "2.2 0 8", "$EndMeshFormat", "$Nodes"}, lines[:4])
	assert.Equal(t, "$EndElements", lines[len(lines)-1])
	assert.Contains(t, buf.String(), "\n$Elements\n")
	assert.Equal(t, len(m.Nodes)+len(m.Tets)+len(m.Triangles)+9, len(lines))
}

func TestRunWritesFiles(t *testing.T) {
	dir := t.TempDir()
	res, err := Run(center, geometry.DefaultDimensions(), Options{Dir: dir})
	require.NoError(t, err)

	assert.False(t, res.Skipped)
	require.Len(t, res.Files, 2)
	for _, f := range res.Files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	f, err := os.Open(res.Files[1])
	require.NoError(t, err)
	defer f.Close()
	back, err := ReadVTK(f)
	require.NoError(t, err)
	assert.Len(t, back.Tets, len(res.Mesh.Tets))
}

func TestRunLogsFailedCut(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	d := geometry.DefaultDimensions()
	d.HeaterRadius = 7.5

	res, err := Run(center, d, Options{Dir: t.TempDir(), Logger: zap.New(core)})
	require.NoError(t, err)

	assert.True(t, res.Skipped)
	assert.Empty(t, res.Mesh.Tets)
	assert.Len(t, res.Files, 2)
	assert.Equal(t, 1, logs.FilterMessage("boolean subtraction failed").Len())
}
