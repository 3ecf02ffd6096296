// Package environments aggregates per-site analysis output: the deduplicated
// neighbor sets for one site, the sorted symmetry-measure results of each
// set, and the grid lookup answering "which set (and best geometry) holds at
// grid point (d, a)?" in O(1).
//
// The aggregator performs no recomputation. Upstream stages (voronoi,
// neighborsets, csm) produce the raw material; this package only indexes it
// and defines the light per-site output record the resolver strategies emit.
package environments
