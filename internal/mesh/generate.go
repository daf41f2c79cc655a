package mesh

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Element type codes shared by the Gmsh and VTK writers.
const (
	GmshTriangle    = 2
	GmshTetrahedron = 4
	VTKTriangle     = 5
	VTKTetrahedron  = 10
)

// Triangle is a boundary face tagged with its patch.
type Triangle struct {
	Nodes   [3]int
	Surface SurfaceID
}

// Mesh is a linear tetrahedral mesh with its boundary triangles. Node
// indices are 0-based.
type Mesh struct {
	Nodes     []r3.Vec
	Tets      [][4]int
	Triangles []Triangle
}

func tetVolume(a, b, c, d r3.Vec) float64 {
	return r3.Dot(r3.Sub(b, a), r3.Cross(r3.Sub(c, a), r3.Sub(d, a))) / 6
}

// TetVolume is the signed volume of tet i.
func (m *Mesh) TetVolume(i int) float64 {
	t := m.Tets[i]
	return tetVolume(m.Nodes[t[0]], m.Nodes[t[1]], m.Nodes[t[2]], m.Nodes[t[3]])
}

// Volume sums the tet volumes.
func (m *Mesh) Volume() float64 {
	var v float64
	for i := range m.Tets {
		v += m.TetVolume(i)
	}
	return v
}

// ElementType counts elements of one kind.
type ElementType struct {
	Code  int
	Name  string
	Count int
}

// ElementTypes lists the element kinds present, by Gmsh code.
func (m *Mesh) ElementTypes() []ElementType {
	var out []ElementType
	if len(m.Triangles) > 0 {
		out = append(out, ElementType{Code: GmshTriangle, Name: "Triangle 3", Count: len(m.Triangles)})
	}
	if len(m.Tets) > 0 {
		out = append(out, ElementType{Code: GmshTetrahedron, Name: "Tetrahedron 4", Count: len(m.Tets)})
	}
	return out
}

// SurfaceArea sums the triangle areas of one patch.
func (m *Mesh) SurfaceArea(id SurfaceID) float64 {
	var a float64
	for _, tr := range m.Triangles {
		if tr.Surface != id {
			continue
		}
		p, q, r := m.Nodes[tr.Nodes[0]], m.Nodes[tr.Nodes[1]], m.Nodes[tr.Nodes[2]]
		a += r3.Norm(r3.Cross(r3.Sub(q, p), r3.Sub(r, p))) / 2
	}
	return a
}

// kuhn lists the six cube-vertex paths of the Freudenthal split. Offsets
// are (radial, sector, axial).
var kuhn = func() [6][4][3]int {
	perms := [6][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	var out [6][4][3]int
	for i, p := range perms {
		var v [3]int
		out[i][0] = v
		for s, axis := range p {
			v[axis] = 1
			out[i][s+1] = v
		}
	}
	return out
}()

type grid struct {
	radii          []float64
	levels         []float64
	sectors        int
	boreRing       int
	boreLo, boreHi int
}

// Generate meshes s with n sectors around the axis. Node spacing follows
// field along the bore line radially and axially; fallback sizes points
// no field constrains.
func Generate(s HoledCylinder, field Field, sectors int, fallback float64) (*Mesh, error) {
	if err := s.ValidateCut(); err != nil {
		return nil, err
	}
	if sectors < 3 {
		return nil, fmt.Errorf("%w: %d sectors", ErrInvalid, sectors)
	}
	if fallback <= 0 {
		return nil, fmt.Errorf("%w: fallback size %g", ErrInvalid, fallback)
	}
	g := s.layout(field, sectors, fallback)
	return g.build(s), nil
}

func (s HoledCylinder) layout(field Field, sectors int, fallback float64) grid {
	lo, hi := s.boreSpan()
	at := func(r, z float64) float64 {
		return field.Size(r3.Vec{X: s.Base.X + r, Y: s.Base.Y, Z: z})
	}
	zMid := (lo + hi) / 2

	var radii []float64
	sa, sb := resolve(at(0, zMid), at(s.BoreRadius, zMid), fallback)
	radii = append(radii, graded(0, s.BoreRadius, sa, sb)...)
	sa, sb = resolve(at(s.BoreRadius, zMid), at(s.Radius, zMid), fallback)
	radii = append(radii, graded(s.BoreRadius, s.Radius, sa, sb)[1:]...)

	breaks := []float64{s.Base.Z, lo, hi, s.Top()}
	sort.Float64s(breaks)
	breaks = slices.CompactFunc(breaks, func(a, b float64) bool { return math.Abs(a-b) < tol })

	levels := []float64{breaks[0]}
	for i := 1; i < len(breaks); i++ {
		sa, sb := resolve(at(s.BoreRadius, breaks[i-1]), at(s.BoreRadius, breaks[i]), fallback)
		levels = append(levels, graded(breaks[i-1], breaks[i], sa, sb)[1:]...)
	}

	g := grid{radii: radii, levels: levels, sectors: sectors}
	for i, r := range radii {
		if math.Abs(r-s.BoreRadius) < tol {
			g.boreRing = i
		}
	}
	for k, z := range levels {
		if math.Abs(z-lo) < tol {
			g.boreLo = k
		}
		if math.Abs(z-hi) < tol {
			g.boreHi = k
		}
	}
	return g
}

// node returns the provisional id of ring i, sector j, level k. The axis
// ring has one node per level.
func (g grid) node(i, j, k int) int {
	nz := len(g.levels)
	if i == 0 {
		return k
	}
	return nz + ((i-1)*g.sectors+j)*nz + k
}

func (g grid) position(s HoledCylinder, id int) r3.Vec {
	nz := len(g.levels)
	if id < nz {
		return r3.Vec{X: s.Base.X, Y: s.Base.Y, Z: g.levels[id]}
	}
	rest := id - nz
	k := rest % nz
	rest /= nz
	j := rest % g.sectors
	i := rest/g.sectors + 1
	theta := 2 * math.Pi * float64(j) / float64(g.sectors)
	return r3.Vec{
		X: s.Base.X + g.radii[i]*math.Cos(theta),
		Y: s.Base.Y + g.radii[i]*math.Sin(theta),
		Z: g.levels[k],
	}
}

// ring and level recover the grid indices of a provisional id.
func (g grid) ring(id int) int {
	nz := len(g.levels)
	if id < nz {
		return 0
	}
	return (id-nz)/nz/g.sectors + 1
}

func (g grid) level(id int) int {
	nz := len(g.levels)
	if id < nz {
		return id
	}
	return (id - nz) % nz
}

func (g grid) hollow(i, k int) bool {
	return i < g.boreRing && k >= g.boreLo && k < g.boreHi
}

func (g grid) build(s HoledCylinder) *Mesh {
	var tets [][4]int
	for i := 0; i < len(g.radii)-1; i++ {
		for j := 0; j < g.sectors; j++ {
			for k := 0; k < len(g.levels)-1; k++ {
				if g.hollow(i, k) {
					continue
				}
				for _, path := range kuhn {
					var t [4]int
					for v, off := range path {
						t[v] = g.node(i+off[0], (j+off[1])%g.sectors, k+off[2])
					}
					if degenerate(t) {
						continue
					}
					tets = append(tets, t)
				}
			}
		}
	}

	used := make(map[int]bool)
	for _, t := range tets {
		for _, id := range t {
			used[id] = true
		}
	}
	ids := make([]int, 0, len(used))
	for id := range used {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	index := make(map[int]int, len(ids))
	m := &Mesh{Nodes: make([]r3.Vec, len(ids))}
	for n, id := range ids {
		index[id] = n
		m.Nodes[n] = g.position(s, id)
	}

	m.Tets = make([][4]int, len(tets))
	for n, t := range tets {
		for v := range t {
			m.Tets[n][v] = index[t[v]]
		}
		if m.TetVolume(n) < 0 {
			m.Tets[n][2], m.Tets[n][3] = m.Tets[n][3], m.Tets[n][2]
		}
	}

	for _, f := range boundaryFaces(tets) {
		m.Triangles = append(m.Triangles, Triangle{
			Nodes:   [3]int{index[f[0]], index[f[1]], index[f[2]]},
			Surface: g.classify(f),
		})
	}
	return m
}

func degenerate(t [4]int) bool {
	for a := 0; a < 4; a++ {
		for b := a + 1; b < 4; b++ {
			if t[a] == t[b] {
				return true
			}
		}
	}
	return false
}

// boundaryFaces returns faces owned by a single tet, in tet order.
func boundaryFaces(tets [][4]int) [][3]int {
	key := func(f [3]int) [3]int {
		s := f
		sort.Ints(s[:])
		return s
	}
	count := make(map[[3]int]int)
	faces := func(t [4]int) [4][3]int {
		return [4][3]int{{t[1], t[2], t[3]}, {t[0], t[2], t[3]}, {t[0], t[1], t[3]}, {t[0], t[1], t[2]}}
	}
	for _, t := range tets {
		for _, f := range faces(t) {
			count[key(f)]++
		}
	}
	var out [][3]int
	for _, t := range tets {
		for _, f := range faces(t) {
			if count[key(f)] == 1 {
				out = append(out, f)
			}
		}
	}
	return out
}

func (g grid) classify(f [3]int) SurfaceID {
	all := func(pred func(id int) bool) bool {
		return pred(f[0]) && pred(f[1]) && pred(f[2])
	}
	last := len(g.levels) - 1
	switch {
	case all(func(id int) bool { return g.level(id) == 0 }):
		return SurfaceBottom
	case all(func(id int) bool { return g.level(id) == last }):
		return SurfaceTop
	case all(func(id int) bool { return g.ring(id) == len(g.radii)-1 }):
		return SurfaceOuter
	case all(func(id int) bool { return g.level(id) == g.boreLo }),
		all(func(id int) bool { return g.level(id) == g.boreHi }):
		return SurfaceBoreCap
	}
	return SurfaceBore
}
