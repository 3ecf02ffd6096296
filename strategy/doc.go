// Package strategy collapses a site's aggregated grid of symmetry results
// into its final environment assignment.
//
// Two policies exist, dispatched over a closed tagged variant:
//
//   - FixedCutoff: snap the requested (distance, angle) cutoffs to the
//     nearest grid cell and report that cell's single best geometry with
//     fraction 1.
//   - MultiCriteriaWeighted: a deterministic weighted vote across every grid
//     cell, producing a fractional mixture of geometries for sites whose
//     environment is genuinely intermediate.
//
// Both policies are pure functions of the aggregated input: identical
// environments and parameters always produce identical output.
package strategy
