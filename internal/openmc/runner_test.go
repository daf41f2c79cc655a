package openmc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func fakeEngine(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openmc")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func deckDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, _, err := Write(dir, assemble(t, "quick")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return dir
}

func TestRunnerArgs(t *testing.T) {
	r := NewRunner("", nil)
	if r.Binary != "openmc" {
		t.Errorf("expected default binary, got %s", r.Binary)
	}
	got := strings.Join(r.Args(RunOptions{GeometryDebug: true, Threads: 4}), " ")
	if got != "--geometry-debug --threads 4" {
		t.Errorf("unexpected args %q", got)
	}
	if len(r.Args(RunOptions{})) != 0 {
		t.Error("expected no args by default")
	}
}

func TestRunnerRunsInDeckDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := deckDir(t)
	r := NewRunner(fakeEngine(t, `echo "$@" > args.txt`), nil)
	if err := r.Run(context.Background(), dir, RunOptions{GeometryDebug: true}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	if err != nil {
		t.Fatalf("engine did not run in the deck dir: %v", err)
	}
	if strings.TrimSpace(string(data)) != "--geometry-debug" {
		t.Errorf("unexpected args %q", data)
	}
}

func TestRunnerErrors(t *testing.T) {
	r := NewRunner("definitely-not-openmc", nil)
	if err := r.Run(context.Background(), t.TempDir(), RunOptions{}); !errors.Is(err, ErrMissingDeck) {
		t.Errorf("expected ErrMissingDeck, got %v", err)
	}
	if err := r.Run(context.Background(), deckDir(t), RunOptions{}); !errors.Is(err, ErrEngineNotFound) {
		t.Errorf("expected ErrEngineNotFound, got %v", err)
	}

	failing := NewRunner(fakeEngine(t, "exit 3"), nil)
	if err := failing.Run(context.Background(), deckDir(t), RunOptions{}); err == nil {
		t.Error("expected error from failing engine")
	}
}

func TestRunnerCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(fakeEngine(t, "sleep 5"), nil)
	if err := r.Run(ctx, deckDir(t), RunOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
