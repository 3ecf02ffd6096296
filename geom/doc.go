// Package geom provides the geometric primitives shared by the
// coordination-environment pipeline: a periodic lattice (3x3 Cartesian
// basis) with fractional<->Cartesian transforms and periodic-image
// enumeration bounds, and solid-angle computation for planar polygonal
// facets seen from the origin.
//
// All types are immutable after construction and safe for concurrent
// read-only use. Vectors are github.com/golang/geo/r3 values.
//
// The only fatal condition at this level is a singular lattice basis
// (zero cell volume), reported as ErrSingularLattice: no periodic
// geometry is computable on top of it.
package geom
