package geometry

import (
	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/material"
)

// Cell pairs a region with a fill. A nil Fill is void.
type Cell struct {
	ID       int
	Name     string
	Region   csg.Region
	Fill     *material.Material
	CatchAll bool
}

// Void reports whether the cell has no material.
func (c *Cell) Void() bool { return c.Fill == nil }

// Partition is an ordered list of cells. Catch-all cells claim whatever their
// bound leaves after every cell added before them, so insertion order decides
// which leftover volume a catch-all receives.
type Partition struct {
	cells []*Cell
	index map[string]*Cell
}

func NewPartition() *Partition {
	return &Partition{index: make(map[string]*Cell)}
}

// Add appends an explicitly bounded cell.
func (p *Partition) Add(name string, region csg.Region, fill *material.Material) *Cell {
	c := &Cell{ID: len(p.cells) + 1, Name: name, Region: region, Fill: fill}
	p.cells = append(p.cells, c)
	p.index[name] = c
	return c
}

// AddCatchAll appends a cell equal to bound minus every region defined so far.
func (p *Partition) AddCatchAll(name string, bound csg.Region, fill *material.Material) *Cell {
	prior := make([]csg.Region, len(p.cells))
	for i, c := range p.cells {
		prior[i] = c.Region
	}
	c := p.Add(name, csg.Subtract(bound, prior...), fill)
	c.CatchAll = true
	return c
}

// Cells returns the cells in insertion order.
func (p *Partition) Cells() []*Cell {
	return append([]*Cell(nil), p.cells...)
}

// Cell looks a cell up by name.
func (p *Partition) Cell(name string) (*Cell, bool) {
	c, ok := p.index[name]
	return c, ok
}

func (p *Partition) Len() int { return len(p.cells) }
