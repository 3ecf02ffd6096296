// SPDX-License-Identifier: MIT
// Package: chemenv/refgeom
//
// datasets.go — canonical vertex directions for the coordination geometries.
//
// Design:
//   - Single source of truth for all reference polyhedra; one entry per
//     symbol, constructed at init() and normalized to unit vectors.
//   - Where a geometry family admits a free parameter (pyramid base polar
//     angle, prism height, antiprism height) the canonical member is the one
//     with all edges equal, or the stated polar angle when no equal-edge
//     member exists on the unit sphere.
//
// Determinism:
//   - Vertex order within each geometry is fixed and part of the contract
//     (permutations reported by the CSM solver index into these lists).
//   - The registry is sorted by (CN, Symbol) for stable iteration.
package refgeom

import (
	"math"

	"github.com/golang/geo/r3"
)

// phi is the golden ratio, used by the icosahedron dataset.
var phi = (1 + math.Sqrt(5)) / 2

// rawGeometries builds the catalog datasets. Called exactly once from init().
func rawGeometries() []Geometry {
	var (
		s60 = math.Sqrt(3) / 2 // sin 60
		// Umbrella polar ring of the tetrahedral family: z = -1/3, radius 2*sqrt(2)/3.
		uz = -1.0 / 3.0
		ur = 2 * math.Sqrt2 / 3
	)

	return []Geometry{
		{
			Symbol: "S:1", Name: "Single neighbor", CN: 1,
			Points: []r3.Vector{{Z: 1}},
		},
		{
			Symbol: "L:2", Name: "Linear", CN: 2,
			Points: []r3.Vector{{Z: 1}, {Z: -1}},
		},
		{
			// Angular (bent) with a canonical 120 degree aperture.
			Symbol: "A:2", Name: "Angular", CN: 2,
			Points: []r3.Vector{
				{Y: s60, Z: 0.5},
				{Y: -s60, Z: 0.5},
			},
		},
		{
			Symbol: "TL:3", Name: "Trigonal planar", CN: 3,
			Points: ringPoints(3, 1, 0, 0),
		},
		{
			// Trigonal pyramid: the three base vertices of a tetrahedron
			// (apex removed), base ring at z = -1/3.
			Symbol: "TY:3", Name: "Trigonal non-coplanar", CN: 3,
			Points: ringPoints(3, ur, uz, 0),
		},
		{
			Symbol: "T:4", Name: "Tetrahedron", CN: 4,
			Points: []r3.Vector{
				{X: 1, Y: 1, Z: 1},
				{X: 1, Y: -1, Z: -1},
				{X: -1, Y: 1, Z: -1},
				{X: -1, Y: -1, Z: 1},
			},
		},
		{
			Symbol: "S:4", Name: "Square planar", CN: 4,
			Points: ringPoints(4, 1, 0, 0),
		},
		{
			// Square non-coplanar: square ring pressed 10 degrees below the
			// equator (no equal-edge member exists on the unit sphere).
			Symbol: "SY:4", Name: "Square non-coplanar", CN: 4,
			Points: ringPoints(4, math.Cos(10*math.Pi/180), -math.Sin(10*math.Pi/180), 0),
		},
		{
			// See-saw: trigonal bipyramid with one equatorial vertex removed.
			Symbol: "SS:4", Name: "See-saw", CN: 4,
			Points: append([]r3.Vector{{Z: 1}, {Z: -1}}, ringPoints(2, 1, 0, 0)...),
		},
		{
			Symbol: "PP:5", Name: "Pentagonal planar", CN: 5,
			Points: ringPoints(5, 1, 0, 0),
		},
		{
			// Square pyramid: apex plus base ring at polar angle 100 degrees
			// (base slightly below the equator, the common molecular shape).
			Symbol: "S:5", Name: "Square pyramid", CN: 5,
			Points: append([]r3.Vector{{Z: 1}},
				ringPoints(4, math.Sin(100*math.Pi/180), math.Cos(100*math.Pi/180), 0)...),
		},
		{
			Symbol: "T:5", Name: "Trigonal bipyramid", CN: 5,
			Points: append([]r3.Vector{{Z: 1}, {Z: -1}}, ringPoints(3, 1, 0, 0)...),
		},
		{
			Symbol: "O:6", Name: "Octahedron", CN: 6,
			Points: []r3.Vector{
				{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
			},
		},
		{
			// Trigonal prism with equilateral side faces: 4h^2 = 3r^2 on the
			// unit sphere gives h^2 = 3/7.
			Symbol: "T:6", Name: "Trigonal prism", CN: 6,
			Points: prismPoints(3, math.Sqrt(4.0/7.0), math.Sqrt(3.0/7.0), 0),
		},
		{
			Symbol: "PB:7", Name: "Pentagonal bipyramid", CN: 7,
			Points: append([]r3.Vector{{Z: 1}, {Z: -1}}, ringPoints(5, 1, 0, 0)...),
		},
		{
			Symbol: "C:8", Name: "Cube", CN: 8,
			Points: []r3.Vector{
				{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1},
				{X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1},
				{X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1},
				{X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1},
			},
		},
		{
			// Square antiprism with all edges equal: r^2 = 4/(4+sqrt 2).
			Symbol: "SA:8", Name: "Square antiprism", CN: 8,
			Points: antiprismPoints(4,
				math.Sqrt(4/(4+math.Sqrt2)),
				math.Sqrt(1-4/(4+math.Sqrt2))),
		},
		{
			// Tricapped trigonal prism: the T:6 prism plus three equatorial
			// caps staggered against the prism triangles.
			Symbol: "TT:9", Name: "Tricapped trigonal prism", CN: 9,
			Points: append(
				prismPoints(3, math.Sqrt(4.0/7.0), math.Sqrt(3.0/7.0), 0),
				ringPoints(3, 1, 0, math.Pi/3)...),
		},
		{
			Symbol: "C:12", Name: "Cuboctahedron", CN: 12,
			Points: []r3.Vector{
				{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
				{X: 1, Z: 1}, {X: 1, Z: -1}, {X: -1, Z: 1}, {X: -1, Z: -1},
				{Y: 1, Z: 1}, {Y: 1, Z: -1}, {Y: -1, Z: 1}, {Y: -1, Z: -1},
			},
		},
		{
			Symbol: "I:12", Name: "Icosahedron", CN: 12,
			Points: []r3.Vector{
				{Y: 1, Z: phi}, {Y: 1, Z: -phi}, {Y: -1, Z: phi}, {Y: -1, Z: -phi},
				{X: 1, Y: phi}, {X: 1, Y: -phi}, {X: -1, Y: phi}, {X: -1, Y: -phi},
				{X: phi, Z: 1}, {X: -phi, Z: 1}, {X: phi, Z: -1}, {X: -phi, Z: -1},
			},
		},
	}
}

// ringPoints returns n points evenly spaced on a horizontal circle of radius
// r at height z, starting at azimuth phase.
func ringPoints(n int, r, z, phase float64) []r3.Vector {
	pts := make([]r3.Vector, n)
	for k := 0; k < n; k++ {
		a := phase + 2*math.Pi*float64(k)/float64(n)
		pts[k] = r3.Vector{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z}
	}

	return pts
}

// prismPoints returns an n-gonal prism: the top ring at +h followed by the
// eclipsed bottom ring at -h, both of radius r, starting at azimuth phase.
func prismPoints(n int, r, h, phase float64) []r3.Vector {
	return append(ringPoints(n, r, h, phase), ringPoints(n, r, -h, phase)...)
}

// antiprismPoints returns an n-gonal antiprism: the top ring at +h and the
// bottom ring at -h rotated by half a step.
func antiprismPoints(n int, r, h float64) []r3.Vector {
	return append(ringPoints(n, r, h, 0), ringPoints(n, r, -h, math.Pi/float64(n))...)
}
