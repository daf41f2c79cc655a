package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/babymc/internal/config"
	"github.com/san-kum/babymc/internal/openmc"
	"github.com/san-kum/babymc/internal/storage"
)

func resetFlags(t *testing.T) {
	t.Helper()
	configFile, preset, logLevel = "", "", ""
	t.Cleanup(func() { configFile, preset, logLevel = "", "", "" })
}

func TestResolveConfigDefaults(t *testing.T) {
	resetFlags(t)
	c, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if c.Settings.Batches != config.DefaultBatches {
		t.Errorf("expected default batches, got %d", c.Settings.Batches)
	}
}

func TestResolveConfigPresetOverFile(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "babymc.yaml")
	base := config.DefaultConfig()
	base.Settings.Inactive = 5
	if err := config.Save(path, base); err != nil {
		t.Fatal(err)
	}

	configFile, preset, logLevel = path, "quick", "debug"
	c, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if c.Settings.Batches != 10 || c.Settings.Inactive != 5 {
		t.Errorf("expected quick batches over file inactive, got %+v", c.Settings)
	}
	if c.Logging.Level != "debug" {
		t.Errorf("expected log level override, got %s", c.Logging.Level)
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	resetFlags(t)
	preset = "nope"
	_, err := resolveConfig()
	if err == nil || !strings.Contains(err.Error(), "quick") {
		t.Errorf("expected error listing presets, got %v", err)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	meta := &storage.BuildMetadata{
		ID:        "20240101-000000-abcd1234",
		Timestamp: time.Now(),
		Cells:     28,
		Tallies:   []string{"TBR", "UM_TBR"},
		Check:     &storage.CheckSummary{Samples: 100000},
	}
	cells := []storage.CellRow{{ID: 1, Name: "cllif", Material: "ClLiF natural"}, {ID: 2, Name: "lab_air", Material: "Air", CatchAll: true}}

	md := summaryMarkdown(meta, cells)
	for _, want := range []string{"# Build 20240101-000000-abcd1234", "TBR, UM_TBR", "100,000 samples", "| 2 | lab_air | Air | yes |", "preset `-`"} {
		if !strings.Contains(md, want) {
			t.Errorf("summary missing %q:\n%s", want, md)
		}
	}
}

func TestEngineOptionsDebugOffByDefault(t *testing.T) {
	resetFlags(t)
	t.Cleanup(func() { geometryDebug, threads = false, 0 })
	c, err := resolveConfig()
	if err != nil {
		t.Fatal(err)
	}

	cmd := newRunCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}
	args := openmc.NewRunner("", nil).Args(engineOptions(cmd, c))
	for _, a := range args {
		if a == "--geometry-debug" {
			t.Errorf("default run should not debug geometry, got args %v", args)
		}
	}

	cmd = newRunCmd()
	if err := cmd.ParseFlags([]string{"--geometry-debug", "--threads", "4"}); err != nil {
		t.Fatal(err)
	}
	got := strings.Join(openmc.NewRunner("", nil).Args(engineOptions(cmd, c)), " ")
	if got != "--geometry-debug --threads 4" {
		t.Errorf("expected explicit debug and threads, got %q", got)
	}
}

func TestOrDash(t *testing.T) {
	if orDash("") != "-" || orDash("baby") != "baby" {
		t.Error("unexpected orDash")
	}
}
