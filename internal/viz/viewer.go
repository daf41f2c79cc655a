package viz

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/geometry"
)

const legendWidth = 42

type keyMap struct {
	Plane    key.Binding
	Pan      key.Binding
	Zoom     key.Binding
	Depth    key.Binding
	Material key.Binding
	Outline  key.Binding
	Theme    key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Plane, k.Zoom, k.Material, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Plane, k.Pan, k.Zoom, k.Depth},
		{k.Material, k.Outline, k.Theme, k.Reset},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Plane:    key.NewBinding(key.WithKeys("x", "y", "z"), key.WithHelp("x/y/z", "plane normal")),
	Pan:      key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"), key.WithHelp("←↑↓→", "pan")),
	Zoom:     key.NewBinding(key.WithKeys("+", "=", "-"), key.WithHelp("+/-", "zoom")),
	Depth:    key.NewBinding(key.WithKeys("[", "]", "{", "}"), key.WithHelp("[ ]", "move slice")),
	Material: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cells/materials")),
	Outline:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "outline")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Viewer is an interactive slice plot of a cell list.
type Viewer struct {
	cells  []*geometry.Cell
	bounds csg.AABB
	marker *r3.Vec

	slice   Slice
	by      ColorBy
	theme   int
	outline bool

	raster *Raster
	err    error

	help   help.Model
	legend viewport.Model

	width, height int
}

func NewViewer(cells []*geometry.Cell, bounds csg.AABB, origin r3.Vec) *Viewer {
	v := &Viewer{
		cells:  cells,
		bounds: bounds,
		help:   help.New(),
		legend: viewport.New(legendWidth, 20),
		width:  120,
		height: 40,
	}
	v.reset(PlaneXZ)
	v.slice.Origin = origin
	v.redraw()
	return v
}

// WithMarker draws a cross at p when it lies in the slice window.
func (v *Viewer) WithMarker(p r3.Vec) *Viewer {
	v.marker = &p
	v.redraw()
	return v
}

func (v *Viewer) Slice() Slice     { return v.slice }
func (v *Viewer) Raster() *Raster  { return v.raster }
func (v *Viewer) ColorBy() ColorBy { return v.by }

func (v *Viewer) plotSize() (int, int) {
	cols := max(v.width-legendWidth-4, 10)
	rows := max(v.height-4, 5)
	return cols, rows
}

func (v *Viewer) reset(p Plane) {
	origin := v.slice.Origin
	cols, rows := v.plotSize()
	if v.outline {
		cols, rows = 2*cols, 4*rows
	}
	aspect := 2.0
	if v.outline {
		aspect = 1
	}
	v.slice = Fit(v.bounds, p, cols, rows, aspect)
	if origin != (r3.Vec{}) {
		v.slice.Origin = origin
	}
}

func (v *Viewer) resize() {
	cols, rows := v.plotSize()
	if v.outline {
		cols, rows = 2*cols, 4*rows
	}
	// keep the horizontal extent and the pixel aspect
	aspect := 2.0
	if v.outline {
		aspect = 1
	}
	v.slice.Height = v.slice.Width * float64(rows) * aspect / float64(cols)
	v.slice.Cols, v.slice.Rows = cols, rows
}

func (v *Viewer) redraw() {
	v.raster, v.err = Rasterize(context.Background(), v.cells, v.slice, v.by)
	if v.err == nil {
		v.legend.SetContent(Legend(v.raster, Themes[v.theme]))
	}
}

func (v *Viewer) Init() tea.Cmd { return nil }

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.help.Width = msg.Width
		v.legend.Height = max(msg.Height-6, 3)
		v.resize()
		v.redraw()
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := v.slice.Width / 50
	switch {
	case key.Matches(msg, keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, keys.Help):
		v.help.ShowAll = !v.help.ShowAll
		return v, nil
	case key.Matches(msg, keys.Plane):
		// the key names the slice normal
		planes := map[string]Plane{"z": PlaneXY, "y": PlaneXZ, "x": PlaneYZ}
		v.reset(planes[msg.String()])
	case key.Matches(msg, keys.Pan):
		switch msg.String() {
		case "left", "h":
			v.slice = v.slice.Pan(-0.1, 0)
		case "right", "l":
			v.slice = v.slice.Pan(0.1, 0)
		case "up", "k":
			v.slice = v.slice.Pan(0, 0.1)
		case "down", "j":
			v.slice = v.slice.Pan(0, -0.1)
		}
	case key.Matches(msg, keys.Zoom):
		if msg.String() == "-" {
			v.slice = v.slice.Zoom(1 / 1.5)
		} else {
			v.slice = v.slice.Zoom(1.5)
		}
	case key.Matches(msg, keys.Depth):
		switch msg.String() {
		case "[":
			v.slice = v.slice.Shift(-step)
		case "]":
			v.slice = v.slice.Shift(step)
		case "{":
			v.slice = v.slice.Shift(-10 * step)
		case "}":
			v.slice = v.slice.Shift(10 * step)
		}
	case key.Matches(msg, keys.Material):
		v.by = 1 - v.by
	case key.Matches(msg, keys.Outline):
		v.outline = !v.outline
		v.resize()
	case key.Matches(msg, keys.Theme):
		v.theme = (v.theme + 1) % len(Themes)
	case key.Matches(msg, keys.Reset):
		v.slice.Origin = v.bounds.Center()
		v.reset(v.slice.Plane)
	default:
		return v, nil
	}
	v.redraw()
	return v, nil
}

func (v *Viewer) plot() string {
	if v.err != nil {
		return StatusFail.Render(v.err.Error())
	}
	if !v.outline {
		return Render(v.raster, Themes[v.theme])
	}
	c := Outline(v.raster)
	if v.marker != nil {
		c.Marker(v.slice, *v.marker)
	}
	return c.String()
}

func (v *Viewer) View() string {
	u, w, n := v.slice.Plane.axes(v.slice.Origin)
	header := HeaderStyle.Render(fmt.Sprintf("babymc  %s slice at %.2f cm", v.slice.Plane, n))
	info := strings.Join([]string{
		Metric("centre", fmt.Sprintf("(%.1f, %.1f)", u, w)),
		Metric("window", fmt.Sprintf("%.1f x %.1f cm", v.slice.Width, v.slice.Height)),
		Metric("colour", v.by.String()),
		Metric("theme", Themes[v.theme].Name),
	}, "\n")

	side := lipgloss.JoinVertical(lipgloss.Left, info, "", v.legend.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, v.plot(), "  ", side)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, v.help.View(keys))
}
