package openmc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
)

var (
	ErrEngineNotFound = errors.New("openmc: engine binary not found")
	ErrMissingDeck    = errors.New("openmc: deck file missing")
)

// Runner launches the transport engine.
type Runner struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

type RunOptions struct {
	GeometryDebug bool
	Threads       int
}

func NewRunner(binary string, logger *zap.Logger) *Runner {
	if binary == "" {
		binary = "openmc"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Binary: binary, Stdout: os.Stdout, Stderr: os.Stderr, Logger: logger}
}

// Args returns the command line for opts.
func (r *Runner) Args(opts RunOptions) []string {
	var args []string
	if opts.GeometryDebug {
		args = append(args, "--geometry-debug")
	}
	if opts.Threads > 0 {
		args = append(args, "--threads", strconv.Itoa(opts.Threads))
	}
	return args
}

// Run executes the engine inside dir, which must hold a complete deck.
// Cancelling ctx kills the process.
func (r *Runner) Run(ctx context.Context, dir string, opts RunOptions) error {
	for _, name := range []string{MaterialsFile, GeometryFile, SettingsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingDeck, name)
		}
	}
	bin, err := exec.LookPath(r.Binary)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEngineNotFound, r.Binary)
	}

	args := r.Args(opts)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	r.Logger.Info("starting engine", zap.String("binary", bin), zap.Strings("args", args), zap.String("dir", dir))
	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("openmc run: %w", err)
	}
	r.Logger.Info("engine finished", zap.Duration("elapsed", time.Since(start)))
	return nil
}
