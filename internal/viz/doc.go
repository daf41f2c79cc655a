// Package viz draws planar slices of a cell list in the terminal.
//
// A [Slice] is sampled into a [Raster] of legend indices, coloured by cell or
// by material. Rasters render as coloured blocks, plain glyphs, or a braille
// [Canvas] outline of cell boundaries. [Viewer] wraps this in a Bubble Tea
// program.
//
// # Key Bindings
//
//	x/y/z - Slice normal
//	←↑↓→  - Pan
//	+/-   - Zoom
//	[ ]   - Move the slice along its normal ({ } for larger steps)
//	M     - Toggle cell/material colouring
//	O     - Toggle braille outline
//	T     - Cycle color themes
//	?     - Show help
package viz
