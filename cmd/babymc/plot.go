package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/babymc/internal/export"
	"github.com/san-kum/babymc/internal/logging"
	"github.com/san-kum/babymc/internal/model"
	"github.com/san-kum/babymc/internal/viz"
)

var (
	plane    string
	cols     int
	rows     int
	byMat    bool
	outline  bool
	svgPath  string
	window   float64
	theme    string
	fullView bool
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "plot a slice through the model",
		RunE:  plotSlice,
	}
	addSliceFlags(cmd)
	cmd.Flags().IntVar(&cols, "cols", 100, "plot width in characters")
	cmd.Flags().IntVar(&rows, "rows", 40, "plot height in characters")
	cmd.Flags().BoolVar(&outline, "outline", false, "draw cell boundaries in braille")
	cmd.Flags().StringVar(&svgPath, "svg", "", "also write the slice as svg ('-' for stdout)")
	return cmd
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "interactive slice viewer",
		RunE:  viewSlices,
	}
	cmd.Flags().BoolVar(&fullView, "full", false, "frame the whole model instead of the lab")
	return cmd
}

func addSliceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&plane, "plane", "xz", "slice plane (xy, xz or yz)")
	cmd.Flags().BoolVar(&byMat, "materials", false, "colour by material instead of cell")
	cmd.Flags().Float64Var(&window, "window", 0, "window width in cm (0 frames the lab)")
	cmd.Flags().StringVar(&theme, "theme", "default", "colour theme")
	cmd.Flags().BoolVar(&fullView, "full", false, "frame the whole model instead of the lab")
}

// frame returns the slice the plot commands start from: through the model
// centre, framing the lab or the whole model.
func frame(m *model.Model, p viz.Plane, cols, rows int, pixelAspect float64) viz.Slice {
	bounds := m.Geometry.Lab.Bounds()
	if fullView {
		bounds = m.Bounds()
	}
	s := viz.Fit(bounds, p, cols, rows, pixelAspect)
	s.Origin = cfg.Center.R3()
	if window > 0 {
		s = s.Zoom(s.Width / window)
	}
	return s
}

func plotSlice(cmd *cobra.Command, args []string) error {
	p, err := viz.ParsePlane(plane)
	if err != nil {
		return err
	}
	m, err := assemble(cfg)
	if err != nil {
		return err
	}
	by := viz.ByCell
	if byMat {
		by = viz.ByMaterial
	}
	th := viz.GetTheme(theme)

	pixCols, pixRows, aspect := cols, rows, 2.0
	if outline {
		pixCols, pixRows, aspect = 2*cols, 4*rows, 1
	}
	s := frame(m, p, pixCols, pixRows, aspect)

	r, err := viz.Rasterize(cmd.Context(), m.Cells, s, by)
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("%s slice at %.2f cm, %.1f x %.1f cm", p, s.Depth(), s.Width, s.Height)))
	if outline {
		c := viz.Outline(r)
		c.Marker(s, cfg.SourcePosition(m.Geometry.Dimensions.SourcePosition(cfg.Center.R3())))
		fmt.Print(c.String())
	} else {
		fmt.Print(viz.Render(r, th))
	}
	fmt.Print(viz.Legend(r, th))

	if svgPath == "" {
		return nil
	}
	svg := export.SliceToSVG(r, th, 4, aspect)
	if outline {
		svg = export.CanvasToSVG(viz.Outline(r), 2, string(th.Palette[0]))
	}
	if err := export.WriteFile(svgPath, svg, cmd.OutOrStdout()); err != nil {
		return err
	}
	logging.Logger.Info("wrote svg", zap.String("path", svgPath))
	return nil
}

func viewSlices(cmd *cobra.Command, args []string) error {
	m, err := assemble(cfg)
	if err != nil {
		return err
	}
	bounds := m.Geometry.Lab.Bounds()
	if fullView {
		bounds = m.Bounds()
	}
	center := cfg.Center.R3()
	src := cfg.SourcePosition(m.Geometry.Dimensions.SourcePosition(center))

	v := viz.NewViewer(m.Cells, bounds, center).WithMarker(src)
	_, err = tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}
