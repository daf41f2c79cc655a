package storage

import (
	"io"
	"os"

	"github.com/goccy/go-json"
)

// ExportData is a build record in one JSON document.
type ExportData struct {
	Build BuildMetadata `json:"build"`
	Cells []CellRow     `json:"cells"`
}

// Export writes build id as JSON to w.
func (s *Store) Export(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	cells, err := s.LoadCells(id)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Build: *meta, Cells: cells})
}

// ExportFile writes build id as JSON to path.
func (s *Store) ExportFile(path, id string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Export(f, id)
}
