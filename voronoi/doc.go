// SPDX-License-Identifier: MIT
// Package: chemenv/voronoi
//
// Package voronoi enumerates candidate neighbors of a site in a periodic
// structure and weighs each one by the solid angle of its Voronoi facet.
//
// For a central site the package:
//
//  1. finds the nearest periodic neighbor distance d_min (growing the scan
//     radius geometrically until a neighbor appears);
//  2. collects every atom — through periodic images — within
//     MaxDistanceFactor*d_min;
//  3. builds the Voronoi cell of the central site by clipping a bounding box
//     with the perpendicular-bisector half-space of each candidate;
//  4. reports, per surviving facet, the solid angle it subtends at the
//     central site (Van Oosterom–Strackee accumulation over the facet
//     polygon).
//
// Candidates whose bisector contributes no facet (occluded by closer
// neighbors) are not Voronoi neighbors and are dropped. The facet solid
// angle is the chemically meaningful neighbor weight consumed by the
// distance/angle parameter grids downstream.
//
// Determinism: candidates are ordered by (distance, lexicographic image
// offset, site index), and bisectors are applied in that order, so results
// are reproducible across platforms.
package voronoi
