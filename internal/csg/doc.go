// Package csg provides constructive solid geometry primitives.
//
// Space is partitioned with half-spaces of quadric surfaces combined by
// boolean set operations:
//
//   - [Surface]: implicit function f(p); the negative side is f(p) < 0
//   - [HalfSpace]: one side of a surface, built with [Neg] and [Pos]
//   - [Intersection], [Union], [Complement]: region algebra
//   - [RightCircularCylinder], [Box]: composite solids made of several surfaces
//
// Points lying exactly on a surface (f(p) == 0) belong to neither side.
//
// # Example
//
//	floor := csg.NewZPlane(100)
//	wall := csg.NewZCylinder(587, 60, 7.0)
//	salt := csg.And(csg.Pos(floor), csg.Neg(wall))
//	salt.Contains(r3.Vec{X: 587, Y: 60, Z: 101})
package csg
