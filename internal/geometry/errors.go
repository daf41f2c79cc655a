package geometry

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrInvalidLayer = errors.New("geometry: invalid layer")
	ErrUnknownLayer = errors.New("geometry: unknown layer")

	// ErrOverlap indicates a point claimed by more than one cell.
	ErrOverlap = errors.New("geometry: overlapping cells")

	// ErrGap indicates a point inside the bounding volume claimed by no cell.
	ErrGap = errors.New("geometry: point not covered by any cell")

	// ErrOutsideBounds indicates a cell claiming a point outside the bounding volume.
	ErrOutsideBounds = errors.New("geometry: cell extends outside the bounding volume")
)

// OverlapError reports the first point found in several cells.
type OverlapError struct {
	Point r3.Vec
	Cells []string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%v at (%.4f, %.4f, %.4f): %s",
		ErrOverlap, e.Point.X, e.Point.Y, e.Point.Z, strings.Join(e.Cells, ", "))
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlap
}
