package csg

import "errors"

var (
	// ErrInvalidDimension indicates a solid with a non-positive size.
	ErrInvalidDimension = errors.New("csg: solid dimension must be positive")

	// ErrUnknownAxis indicates an axis name other than x, y or z.
	ErrUnknownAxis = errors.New("csg: unknown axis")
)
