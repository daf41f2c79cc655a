package viz

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Outline lights every raster pixel whose right or lower neighbour belongs to
// a different legend entry. The raster should be 2x4 pixels per canvas cell.
func Outline(r *Raster) *Canvas {
	s := r.Slice
	c := NewCanvas((s.Cols+1)/2, (s.Rows+3)/4)
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols; col++ {
			v := r.At(col, row)
			if (col+1 < s.Cols && r.At(col+1, row) != v) || (row+1 < s.Rows && r.At(col, row+1) != v) {
				c.Set(col, row)
			}
		}
	}
	return c
}

// Marker draws a small cross at the pixel nearest p.
func (c *Canvas) Marker(s Slice, p r3.Vec) {
	u, w, _ := s.Plane.axes(p)
	ou, ow, _ := s.Plane.axes(s.Origin)
	x := int((u - ou + s.Width/2) / s.Width * float64(s.Cols))
	y := int((ow + s.Height/2 - w) / s.Height * float64(s.Rows))
	c.DrawLine(x-2, y, x+2, y)
	c.DrawLine(x, y-2, x, y+2)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
