// Package neighborsets builds the family of neighbor subsets reachable by
// sweeping a distance-cutoff factor and an angle-cutoff factor over a 2-D
// parameter grid.
//
// For each grid point (df, af) the subset holds every candidate with
//
//	distance <= df * d_min   AND   solid angle >= af * max solid angle
//
// i.e. NormalizedDistance <= df and NormalizedAngle >= af. Identical subsets
// arising at different grid points are deduplicated into one logical
// NeighborSet carrying the full region of grid cells that yield it, its
// area share of the parameter rectangle, and the area of its largest
// connected sub-region (the "stability" of the subset: how large a
// contiguous parameter patch sustains it).
//
// The empty subset and the full-candidate subset are ordinary subsets and
// are retained; strategies decide what to do with them.
//
// Increasing the distance factor at a fixed angle factor can only add
// members (subset monotonicity), which downstream strategies rely on.
package neighborsets
