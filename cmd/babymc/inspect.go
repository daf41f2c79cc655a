package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/babymc/internal/geometry"
	"github.com/san-kum/babymc/internal/viz"
)

var (
	samples    int
	expand     bool
	axis       string
	points     int
	profileLen float64
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "sample the geometry for overlaps and gaps",
		RunE:  checkGeometry,
	}
	cmd.Flags().IntVar(&samples, "samples", 0, "points per sampling volume (0 uses the config)")
	return cmd
}

func newLayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "print the axial layer stack",
		RunE:  printLayers,
	}
}

func newMaterialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "print the material catalog",
		RunE:  printMaterials,
	}
	cmd.Flags().BoolVar(&expand, "expand", false, "expand elements into natural isotopes")
	return cmd
}

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "print the neutron generator angular bins",
		RunE:  printSources,
	}
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "plot material density along a line through the centre",
		RunE:  plotProfile,
	}
	cmd.Flags().StringVar(&axis, "axis", "z", "line direction (x, y or z)")
	cmd.Flags().IntVar(&points, "points", 200, "sample points")
	cmd.Flags().Float64Var(&profileLen, "length", 60, "line length in cm")
	return cmd
}

func checkGeometry(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	m, err := assemble(cfg)
	if err != nil {
		return err
	}
	opts := checkOptions(cfg)
	if samples > 0 {
		opts.Samples = samples
	}
	report, err := geometry.Check(ctx, m.Geometry, opts)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(report.Hits))
	for name := range report.Hits {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return report.Hits[names[i]] > report.Hits[names[j]] })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CELL\tHITS\tSHARE\t")
	for _, name := range names {
		share := float64(report.Hits[name]) / float64(report.Samples)
		fmt.Fprintf(w, "%s\t%d\t%s\t%.2f%%\n", name, report.Hits[name], viz.Bar(share, 30), 100*share)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nsamples %d, inside %d, overlaps %d, gaps %d, escapes %d: %s\n",
		report.Samples, report.Inside, report.OverlapCount, report.GapCount, report.EscapeCount,
		viz.Status(report.OK(), "failed"))
	for _, d := range report.Overlaps {
		fmt.Printf("  overlap at (%.3f, %.3f, %.3f): %s\n", d.Point.X, d.Point.Y, d.Point.Z, strings.Join(d.Cells, ", "))
	}
	return report.Err()
}

func printLayers(cmd *cobra.Command, args []string) error {
	m, err := assemble(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAYER\tBOTTOM\tTOP\tTHICKNESS")
	for _, s := range m.Geometry.Stack.Spans() {
		fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%.5f\n", s.Name, s.Bottom, s.Top, s.Thickness)
	}
	return w.Flush()
}

func printMaterials(cmd *cobra.Command, args []string) error {
	m, err := assemble(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tDENSITY\tBASIS\tCOMPONENTS")
	for _, key := range m.Materials.Keys() {
		mat, err := m.Materials.Get(key)
		if err != nil {
			return err
		}
		kind, err := mat.Kind()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%.6g\t%s\t%d\n", key, mat.Name, mat.Density, kind, len(mat.Components))

		if !expand {
			continue
		}
		nuclides, _, err := mat.Expand()
		if err != nil {
			return err
		}
		for _, n := range nuclides {
			fmt.Fprintf(w, "\t  %s\t%.6e\t\t\n", n.Name, n.Fraction)
		}
	}
	return w.Flush()
}

func printSources(cmd *cobra.Command, args []string) error {
	m, err := assemble(cfg)
	if err != nil {
		return err
	}
	srcs := m.Settings.Sources

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BIN\tMU MIN\tMU MAX\tE0 (MeV)\tSTRENGTH")
	energies := make([]float64, len(srcs))
	for i, s := range srcs {
		energies[i] = s.Energy.E0 / 1e6
		fmt.Fprintf(w, "%d\t%+.4f\t%+.4f\t%.4f\t%.4f\n", i+1, s.MuMin, s.MuMax, energies[i], s.Strength)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(srcs) == 0 {
		return nil
	}

	p := srcs[0].Position
	fmt.Printf("\nposition (%.3f, %.3f, %.3f), kT %.0f eV\n\n", p.X, p.Y, p.Z, srcs[0].Energy.KT)
	fmt.Println(asciigraph.Plot(energies,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Precision(2),
		asciigraph.Caption("neutron energy (MeV) by polar bin, forward to backward"),
	))
	return nil
}

func plotProfile(cmd *cobra.Command, args []string) error {
	if points < 2 {
		return fmt.Errorf("need at least 2 points, got %d", points)
	}
	m, err := assemble(cfg)
	if err != nil {
		return err
	}

	center := cfg.Center.R3()
	density := make([]float64, points)
	var crossed []string
	last := ""
	for i := range density {
		t := -profileLen/2 + profileLen*float64(i)/float64(points-1)
		p := center
		switch axis {
		case "x":
			p.X += t
		case "y":
			p.Y += t
		case "z":
			p.Z += t
		default:
			return fmt.Errorf("unknown axis %q", axis)
		}

		name := "outside"
		for _, c := range m.Cells {
			if c.Region.Contains(p) {
				name = c.Name
				if !c.Void() {
					density[i] = c.Fill.Density
				}
				break
			}
		}
		if name != last {
			crossed = append(crossed, name)
			last = name
		}
	}

	lo := math.Inf(1)
	for _, d := range density {
		lo = math.Min(lo, d)
	}
	fmt.Println(asciigraph.Plot(density,
		asciigraph.Height(12),
		asciigraph.Width(min(points, 100)),
		asciigraph.LowerBound(math.Min(lo, 0)),
		asciigraph.Caption(fmt.Sprintf("density (g/cm3) along %s through the centre, %.0f cm", axis, profileLen)),
	))
	fmt.Println()
	fmt.Println(viz.Subtle.Render(strings.Join(crossed, " > ")))
	return nil
}
