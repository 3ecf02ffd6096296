package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// PolygonSolidAngle returns the solid angle (in steradians) subtended at the
// origin by a planar convex polygon whose vertices are given in order around
// the facet (either winding).
//
// The polygon is fanned into triangles from its first vertex and each
// triangle contributes its Van Oosterom–Strackee solid angle:
//
//	tan(omega/2) = a.(b x c) / (|a||b||c| + (a.b)|c| + (a.c)|b| + (b.c)|a|)
//
// Signed contributions are accumulated and the absolute total is returned,
// so the result does not depend on the winding direction.
//
// Degenerate input (fewer than 3 vertices, or a vertex at the origin)
// yields 0.
//
// Complexity: O(k) for k vertices.
func PolygonSolidAngle(verts []r3.Vector) float64 {
	if len(verts) < 3 {
		return 0
	}
	var total float64
	a := verts[0]
	for k := 1; k+1 < len(verts); k++ {
		total += triangleSolidAngle(a, verts[k], verts[k+1])
	}

	return math.Abs(total)
}

// triangleSolidAngle returns the signed solid angle of triangle (a, b, c)
// seen from the origin. atan2 keeps the half-angle formula valid when the
// triangle spans more than a quarter sphere (denominator <= 0).
func triangleSolidAngle(a, b, c r3.Vector) float64 {
	la, lb, lc := a.Norm(), b.Norm(), c.Norm()
	if la == 0 || lb == 0 || lc == 0 {
		return 0
	}
	num := a.Dot(b.Cross(c))
	den := la*lb*lc + a.Dot(b)*lc + a.Dot(c)*lb + b.Dot(c)*la

	return 2 * math.Atan2(num, den)
}
