package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/babymc/internal/config"
	"github.com/san-kum/babymc/internal/geometry"
	"github.com/san-kum/babymc/internal/logging"
	"github.com/san-kum/babymc/internal/mesh"
	"github.com/san-kum/babymc/internal/model"
	"github.com/san-kum/babymc/internal/openmc"
	"github.com/san-kum/babymc/internal/storage"
	"github.com/san-kum/babymc/internal/viz"
)

var (
	skipCheck     bool
	watch         bool
	geometryDebug bool
	threads       int
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "write the engine input deck and record the build",
		RunE:  buildDeck,
	}
	cmd.Flags().BoolVar(&skipCheck, "no-check", false, "skip the partition check")
	cmd.Flags().BoolVar(&watch, "watch", false, "rebuild whenever the config file changes")
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "build the deck and launch the transport engine",
		RunE:  runEngine,
	}
	cmd.Flags().BoolVar(&skipCheck, "no-check", false, "skip the partition check")
	cmd.Flags().BoolVar(&geometryDebug, "geometry-debug", false, "run the engine with geometry debugging")
	cmd.Flags().IntVar(&threads, "threads", 0, "engine threads (0 uses the engine default)")
	return cmd
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// built is one recorded build.
type built struct {
	meta  *storage.BuildMetadata
	deck  string
	model *model.Model
}

func assemble(c *config.Config) (*model.Model, error) {
	return model.Assemble(c, model.WithLogger(logging.Named("model")))
}

func record(ctx context.Context, c *config.Config, check bool) (*built, error) {
	m, err := assemble(c)
	if err != nil {
		return nil, err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	id, deckDir, err := st.Create()
	if err != nil {
		return nil, err
	}

	deck, files, err := openmc.Write(deckDir, m)
	if err != nil {
		return nil, err
	}
	if c.Tallies.MeshTally {
		if err := ensureMesh(c, m, filepath.Join(deckDir, c.Tallies.MeshPath)); err != nil {
			return nil, err
		}
	}
	stats := deck.Stats()

	meta := &storage.BuildMetadata{
		ID:        id,
		Preset:    preset,
		Timestamp: time.Now(),
		Center:    [3]float64{c.Center.X, c.Center.Y, c.Center.Z},
		Cells:     stats.Cells,
		Materials: stats.Materials,
		Surfaces:  stats.Surfaces,
		Sources:   stats.Sources,
		Vault:     m.Vault != nil,
	}
	for _, t := range m.Tallies {
		meta.Tallies = append(meta.Tallies, t.Name)
	}

	if check {
		report, err := geometry.Check(ctx, m.Geometry, checkOptions(c))
		if err != nil {
			return nil, err
		}
		meta.Check = &storage.CheckSummary{
			Samples:  report.Samples,
			Overlaps: report.OverlapCount,
			Gaps:     report.GapCount,
			Escapes:  report.EscapeCount,
		}
		if !report.OK() {
			logging.Logger.Warn("partition check failed", zap.String("build", id), zap.Error(report.Err()))
		}
	}

	if err := st.Save(meta, cellRows(m)); err != nil {
		return nil, err
	}
	logging.Logger.Info("recorded build", zap.String("id", id), zap.Strings("files", files))
	return &built{meta: meta, deck: deckDir, model: m}, nil
}

// ensureMesh runs the mesh companion when the mesh tally file is missing.
func ensureMesh(c *config.Config, m *model.Model, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if filepath.Base(path) != mesh.VTKFile {
		logging.Logger.Warn("mesh tally file missing", zap.String("path", path))
		return nil
	}
	_, err := mesh.Run(c.Center.R3(), m.Geometry.Dimensions, meshOptions(c, filepath.Dir(path)))
	return err
}

func cellRows(m *model.Model) []storage.CellRow {
	rows := make([]storage.CellRow, len(m.Cells))
	for i, c := range m.Cells {
		fill := "void"
		if !c.Void() {
			fill = c.Fill.Name
		}
		rows[i] = storage.CellRow{ID: c.ID, Name: c.Name, Material: fill, CatchAll: c.CatchAll}
	}
	return rows
}

func checkOptions(c *config.Config) geometry.CheckOptions {
	return geometry.CheckOptions{
		Samples: c.Check.Samples,
		Seed:    c.Check.Seed,
		Workers: c.Check.Workers,
		Logger:  logging.Named("check"),
	}
}

func printBuild(b *built) {
	m := b.meta
	fmt.Printf("build: %s\n", m.ID)
	fmt.Printf("deck: %s\n", b.deck)
	fmt.Printf("%s  %s  %s  %s\n",
		viz.Metric("cells", fmt.Sprint(m.Cells)),
		viz.Metric("surfaces", fmt.Sprint(m.Surfaces)),
		viz.Metric("materials", fmt.Sprint(m.Materials)),
		viz.Metric("sources", fmt.Sprint(m.Sources)),
	)
	if m.Check != nil {
		ok := m.Check.Overlaps == 0 && m.Check.Gaps == 0 && m.Check.Escapes == 0
		fmt.Printf("check: %s (%d samples, %d overlaps, %d gaps)\n",
			viz.Status(ok, "failed"), m.Check.Samples, m.Check.Overlaps, m.Check.Gaps)
	}
}

func buildDeck(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	b, err := record(ctx, cfg, !skipCheck)
	if err != nil {
		return err
	}
	printBuild(b)

	if !watch {
		return nil
	}
	if configFile == "" {
		return fmt.Errorf("--watch needs --config")
	}
	path, _ := filepath.Abs(configFile)
	fmt.Printf("watching %s (ctrl+c to stop)\n", path)

	err = config.Watch(ctx, configFile, config.DefaultDebounce, logging.Named("watch"), func(c *config.Config, err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			return
		}
		if apply, ok := config.Presets[preset]; ok {
			apply(c)
		}
		b, err := record(ctx, c, !skipCheck)
		if err != nil {
			fmt.Fprintln(os.Stderr, "build:", err)
			return
		}
		printBuild(b)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// engineOptions takes the run flags when given and the config otherwise.
func engineOptions(cmd *cobra.Command, c *config.Config) openmc.RunOptions {
	opts := openmc.RunOptions{GeometryDebug: geometryDebug, Threads: threads}
	if !cmd.Flags().Changed("geometry-debug") {
		opts.GeometryDebug = c.Engine.GeometryDebug
	}
	if threads == 0 {
		opts.Threads = c.Engine.Threads
	}
	return opts
}

func runEngine(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	b, err := record(ctx, cfg, !skipCheck)
	if err != nil {
		return err
	}
	printBuild(b)

	runner := openmc.NewRunner(cfg.Engine.Binary, logging.Named("engine"))
	if err := runner.Run(ctx, b.deck, engineOptions(cmd, cfg)); err != nil {
		return err
	}

	b.meta.Ran = true
	return storage.New(dataDir).Save(b.meta, cellRows(b.model))
}
