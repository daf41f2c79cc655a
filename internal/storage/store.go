package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	metadataFile = "metadata.json"
	cellsFile    = "cells.csv"
	deckDir      = "deck"
)

var ErrNotFound = errors.New("storage: build not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// CheckSummary records the partition check run with a build.
type CheckSummary struct {
	Samples  int `json:"samples"`
	Overlaps int `json:"overlaps"`
	Gaps     int `json:"gaps"`
	Escapes  int `json:"escapes"`
}

type BuildMetadata struct {
	ID        string        `json:"id"`
	Preset    string        `json:"preset"`
	Timestamp time.Time     `json:"timestamp"`
	Center    [3]float64    `json:"center"`
	Cells     int           `json:"cells"`
	Materials int           `json:"materials"`
	Surfaces  int           `json:"surfaces"`
	Sources   int           `json:"sources"`
	Tallies   []string      `json:"tallies"`
	Vault     bool          `json:"vault"`
	Ran       bool          `json:"ran"`
	Check     *CheckSummary `json:"check,omitempty"`
}

// CellRow is one line of the cell table.
type CellRow struct {
	ID       int
	Name     string
	Material string
	CatchAll bool
}

// NewID returns a sortable, unique build id.
func NewID(now time.Time) string {
	return now.UTC().Format("20060102-150405") + "-" + uuid.NewString()[:8]
}

// Create reserves a directory for a new build and returns its id and deck
// directory.
func (s *Store) Create() (string, string, error) {
	id := NewID(time.Now())
	dir := filepath.Join(s.baseDir, id, deckDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}
	return id, dir, nil
}

// DeckDir is where the input deck of build id lives.
func (s *Store) DeckDir(id string) string {
	return filepath.Join(s.baseDir, id, deckDir)
}

// Save writes the metadata and cell table of a build created by Create.
func (s *Store) Save(meta *BuildMetadata, cells []CellRow) error {
	if meta.ID == "" {
		return fmt.Errorf("storage: metadata has no id")
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), data, 0644); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(runDir, cellsFile))
	if err != nil {
		return err
	}
	if err := writeCells(f, cells); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCells(out io.Writer, cells []CellRow) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "name", "material", "catch_all"}); err != nil {
		return err
	}
	for _, c := range cells {
		row := []string{strconv.Itoa(c.ID), c.Name, c.Material, strconv.FormatBool(c.CatchAll)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable build, oldest first.
func (s *Store) List() ([]BuildMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BuildMetadata{}, nil
		}
		return nil, err
	}

	builds := make([]BuildMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		builds = append(builds, *meta)
	}
	sort.Slice(builds, func(i, j int) bool { return builds[i].Timestamp.Before(builds[j].Timestamp) })
	return builds, nil
}

func (s *Store) Load(id string) (*BuildMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta BuildMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadCells(id string) ([]CellRow, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, cellsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []CellRow{}, nil
	}

	cells := make([]CellRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 4 {
			return nil, fmt.Errorf("storage: malformed cell row %v", rec)
		}
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, err
		}
		catchAll, err := strconv.ParseBool(rec[3])
		if err != nil {
			return nil, err
		}
		cells = append(cells, CellRow{ID: id, Name: rec[1], Material: rec[2], CatchAll: catchAll})
	}
	return cells, nil
}
