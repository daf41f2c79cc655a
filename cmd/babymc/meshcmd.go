package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/babymc/internal/config"
	"github.com/san-kum/babymc/internal/geometry"
	"github.com/san-kum/babymc/internal/logging"
	"github.com/san-kum/babymc/internal/mesh"
	"github.com/san-kum/babymc/internal/viz"
)

var meshDir string

func newMeshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mesh",
		Short: "mesh the salt volume for the unstructured mesh tally",
		RunE:  runMesh,
	}
	cmd.Flags().StringVar(&meshDir, "out", "", "output directory (default from config)")
	return cmd
}

func meshOptions(c *config.Config, dir string) mesh.Options {
	return mesh.Options{
		Dir:     dir,
		Sectors: c.Mesh.Sectors,
		Sizes: mesh.Sizes{
			Bore:   c.Mesh.BoreSize,
			Outer:  c.Mesh.OuterSize,
			Bottom: c.Mesh.BottomSize,
		},
		Logger: logging.Named("mesh"),
	}
}

func runMesh(cmd *cobra.Command, args []string) error {
	dir := meshDir
	if dir == "" {
		dir = cfg.Mesh.Dir
	}

	res, err := mesh.Run(cfg.Center.R3(), geometry.DefaultDimensions(), meshOptions(cfg, dir))
	if err != nil {
		return err
	}
	if res.Skipped {
		fmt.Println(viz.StatusFail.Render("boolean subtraction failed: wrote empty mesh files"))
	}

	for _, et := range res.Mesh.ElementTypes() {
		fmt.Printf("%s\n", viz.Metric(fmt.Sprintf("type %d", et.Code), fmt.Sprintf("%s x %d", et.Name, et.Count)))
	}
	if !res.Skipped {
		fmt.Println(viz.Metric("volume", fmt.Sprintf("%.4f cm3 (solid %.4f)", res.Mesh.Volume(), res.Solid.Volume())))
	}

	// read the tally mesh back to confirm the engine can consume it
	for _, f := range res.Files {
		fmt.Println("wrote", f)
	}
	vtk, err := os.Open(res.Files[len(res.Files)-1])
	if err != nil {
		return err
	}
	defer vtk.Close()
	back, err := mesh.ReadVTK(vtk)
	if err != nil {
		return err
	}
	fmt.Println(viz.Metric("vtk", fmt.Sprintf("%d points, %d tetrahedra", len(back.Nodes), len(back.Tets))))
	return nil
}
