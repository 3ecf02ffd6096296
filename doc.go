// Package chemenv identifies coordination environments in crystal
// structures: given atomic positions on a periodic lattice it determines,
// per site, which idealized coordination polyhedron (tetrahedron,
// octahedron, ...) best matches the local neighbor arrangement.
//
// 🚀 What is chemenv?
//
//	A deterministic, concurrency-friendly analysis engine built from small
//	leaf packages:
//		• Periodic geometry: lattices, images, facet solid angles
//		• True 3-D Voronoi neighbor enumeration with facet weights
//		• Parameter grids of deduplicated candidate neighbor sets
//		• Continuous symmetry measures (CSM) against a reference catalog,
//		  exact permutation search with branch-and-bound pruning
//		• Strategy-based resolution: a single best environment or a
//		  weighted mixture for genuinely intermediate sites
//
// ✨ Why this layout?
//
//   - Every stage is a pure function of immutable input — sites analyze in
//     parallel with no shared mutable state
//   - Deterministic orderings and stabilized measures — identical input
//     yields identical output across platforms
//   - Explicit failure scoping — a site that cannot resolve never aborts
//     the rest of the structure
//
// Under the hood, everything is organized into leaf-first subpackages:
//
//	geom/         — lattices, periodic images, polygonal solid angles
//	crystal/      — immutable structure model + site filters
//	refgeom/      — reference polyhedron catalog (T:4, O:6, PB:7, ...)
//	voronoi/      — periodic Voronoi neighbor enumeration
//	neighborsets/ — (distance, angle) parameter grid of neighbor subsets
//	csm/          — continuous symmetry measure solver
//	environments/ — per-site aggregation and the light output record
//	strategy/     — fixed-cutoff and multi-criteria resolution policies
//	analysis/     — parallel whole-structure driver + yaml options
//
// Quick sketch of the pipeline:
//
//	Structure ──► voronoi ──► neighborsets ──► csm ──► environments ──► strategy
//
// Start with analysis.Analyze for whole structures, or wire the stages
// yourself when you need a single site.
//
//	go get github.com/katalvlaran/chemenv
package chemenv
