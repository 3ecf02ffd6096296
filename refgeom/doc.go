// SPDX-License-Identifier: MIT
// Package: chemenv/refgeom
//
// Package refgeom is the catalog of ideal coordination geometries used as
// references by the continuous-symmetry-measure solver.
//
// Each Geometry carries a symbol ("T:4", "O:6", ...), a human-readable name,
// its coordination number, and canonical vertex directions: unit vectors
// from the central atom toward the ideal vertex positions. Datasets are
// constructed deterministically at init() and are immutable afterwards; the
// whole catalog is safe for concurrent read-only use.
//
// Symbols follow the "<shape>:<coordination number>" convention. Query by
// exact symbol (BySymbol) or by coordination number (WithCoordination); both
// return copies so callers can never corrupt the registry.
package refgeom
