package viz

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/geometry"
)

// Plane is the orientation of a slice.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	}
	return fmt.Sprintf("plane(%d)", int(p))
}

func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(s) {
	case "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "yz":
		return PlaneYZ, nil
	}
	return 0, fmt.Errorf("viz: unknown plane %q (want xy, xz or yz)", s)
}

// axes returns the horizontal, vertical and normal components of v.
func (p Plane) axes(v r3.Vec) (u, w, n float64) {
	switch p {
	case PlaneXZ:
		return v.X, v.Z, v.Y
	case PlaneYZ:
		return v.Y, v.Z, v.X
	}
	return v.X, v.Y, v.Z
}

func (p Plane) point(u, w, n float64) r3.Vec {
	switch p {
	case PlaneXZ:
		return r3.Vec{X: u, Y: n, Z: w}
	case PlaneYZ:
		return r3.Vec{X: n, Y: u, Z: w}
	}
	return r3.Vec{X: u, Y: w, Z: n}
}

type ColorBy int

const (
	ByCell ColorBy = iota
	ByMaterial
)

func (c ColorBy) String() string {
	if c == ByMaterial {
		return "material"
	}
	return "cell"
}

// Slice is a rectangular window of Cols x Rows pixels centred on Origin.
type Slice struct {
	Plane  Plane
	Origin r3.Vec
	Width  float64
	Height float64
	Cols   int
	Rows   int
}

// Point is the centre of pixel (col, row). Row 0 is the top edge.
func (s Slice) Point(col, row int) r3.Vec {
	u, w, n := s.Plane.axes(s.Origin)
	u += -s.Width/2 + (float64(col)+0.5)*s.Width/float64(s.Cols)
	w += s.Height/2 - (float64(row)+0.5)*s.Height/float64(s.Rows)
	return s.Plane.point(u, w, n)
}

// Pan moves the window by fractions of its size.
func (s Slice) Pan(du, dw float64) Slice {
	u, w, n := s.Plane.axes(s.Origin)
	s.Origin = s.Plane.point(u+du*s.Width, w+dw*s.Height, n)
	return s
}

// Shift moves the slice along its normal by d cm.
func (s Slice) Shift(d float64) Slice {
	u, w, n := s.Plane.axes(s.Origin)
	s.Origin = s.Plane.point(u, w, n+d)
	return s
}

// Zoom scales the window about its centre; f > 1 zooms in.
func (s Slice) Zoom(f float64) Slice {
	s.Width /= f
	s.Height /= f
	return s
}

// Depth is the coordinate of the slice along its normal.
func (s Slice) Depth() float64 {
	_, _, n := s.Plane.axes(s.Origin)
	return n
}

// Fit returns a slice through the centre of b that shows all of b.
// pixelAspect is the displayed height of a pixel over its width.
func Fit(b csg.AABB, plane Plane, cols, rows int, pixelAspect float64) Slice {
	size := b.Size()
	w, h, _ := plane.axes(size)
	if pixelAspect <= 0 {
		pixelAspect = 1
	}
	// displayed width over height of the pixel grid
	screen := float64(cols) / (float64(rows) * pixelAspect)
	if w/h > screen {
		h = w / screen
	} else {
		w = h * screen
	}
	return Slice{Plane: plane, Origin: b.Center(), Width: w, Height: h, Cols: cols, Rows: rows}
}

const (
	// Empty marks a pixel claimed by no cell.
	Empty = -1
	// Overlap marks a pixel claimed by several cells.
	Overlap = -2
)

// Raster is a slice sampled into legend indices, row-major.
type Raster struct {
	Slice  Slice
	By     ColorBy
	Index  []int
	Legend []string
}

func (r *Raster) At(col, row int) int {
	return r.Index[row*r.Slice.Cols+col]
}

// Counts returns the number of pixels per legend entry.
func (r *Raster) Counts() map[string]int {
	out := make(map[string]int)
	for _, i := range r.Index {
		if i >= 0 {
			out[r.Legend[i]]++
		}
	}
	return out
}

func label(c *geometry.Cell, by ColorBy) string {
	if by == ByCell {
		return c.Name
	}
	if c.Void() {
		return "void"
	}
	return c.Fill.Name
}

// Rasterize samples the cell at every pixel centre of s.
func Rasterize(ctx context.Context, cells []*geometry.Cell, s Slice, by ColorBy) (*Raster, error) {
	if s.Cols <= 0 || s.Rows <= 0 || s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("viz: empty slice %dx%d", s.Cols, s.Rows)
	}

	r := &Raster{Slice: s, By: by, Index: make([]int, s.Cols*s.Rows)}
	lookup := make([]int, len(cells))
	seen := make(map[string]int)
	for i, c := range cells {
		name := label(c, by)
		idx, ok := seen[name]
		if !ok {
			idx = len(r.Legend)
			seen[name] = idx
			r.Legend = append(r.Legend, name)
		}
		lookup[i] = idx
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for row := 0; row < s.Rows; row++ {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			for col := 0; col < s.Cols; col++ {
				p := s.Point(col, row)
				v := Empty
				for i, c := range cells {
					if !c.Region.Contains(p) {
						continue
					}
					if v != Empty {
						v = Overlap
						break
					}
					v = lookup[i]
				}
				r.Index[row*s.Cols+col] = v
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

var glyphs = []rune("#@%*+=o:x~^&$ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Glyph is the character drawn for legend index i.
func Glyph(i int) rune {
	switch i {
	case Empty:
		return ' '
	case Overlap:
		return '!'
	}
	return glyphs[i%len(glyphs)]
}

// ASCII draws one glyph per pixel.
func (r *Raster) ASCII() string {
	var b strings.Builder
	for row := 0; row < r.Slice.Rows; row++ {
		for col := 0; col < r.Slice.Cols; col++ {
			b.WriteRune(Glyph(r.At(col, row)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
