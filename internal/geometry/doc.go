// Package geometry builds the cell partition of the BABY experiment.
//
// The axial structure comes from a [Stack]: an ordered list of named layer
// thicknesses folded into cumulative plane offsets above the center. Radial
// structure uses concentric cylinders about the same center. Cells are kept
// in a [Partition]; catch-all cells (helium fill, air sphere, lab air) are
// their bound minus every cell added before them.
//
// [Check] samples points in parallel to verify that no two cells overlap and
// that the cells cover the bounding lab box.
package geometry
