// Package layout places cabinet modules along a single wall and derives
// dimension annotations for walls and modules.
//
// # Overview
//
// The package is the geometric core of CabineXt. It performs no I/O and keeps
// no state: every function is a deterministic mapping from its arguments to
// freshly allocated values, so callers may memoize results freely.
//
// Two calculators share one orientation table (see [Orientation]):
//
//   - [PlaceWall] computes the wall rectangle and one rectangle per module,
//     accumulating along the wall's long axis with zero gaps.
//   - [Measure] computes a dimension line, two leader segments and a label
//     for any rectangle, offset outward by a distance chosen from the
//     [ReferenceClass].
//
// # Coordinates
//
// All output is in pixels with the origin at the top-left inside corner of
// the room: x grows to the right, y grows downward. The top wall runs along
// y = 0, the left wall along x = 0 and the right wall along
// x = CornerOffsetUnits * scale.
//
// # Orientation rules
//
//	Top:   modules run left → right in catalog order, starting after a
//	       lead-in that clears the corner cabinet of the adjoining wall.
//	Left:  modules run top → bottom in reverse catalog order, hanging to
//	       the right of the wall line.
//	Right: as Left, but hanging to the left of the wall line.
//
// # Configuration
//
// Lead-ins, measurement offsets, wall thickness and label metrics live in
// [Config]. [DefaultConfig] reproduces the planner's defaults (inches, 36/24
// unit lead-ins, 10/20/200 px offsets).
package layout
