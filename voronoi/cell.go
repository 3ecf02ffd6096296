package voronoi

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// clipEps is the relative half-space tolerance: vertices within clipEps of a
// bisector plane count as inside, which keeps tangent planes from shaving
// zero-area slivers off the cell.
const clipEps = 1e-9

// mergeEps is the relative tolerance under which two cut points on the same
// plane are considered the same vertex.
const mergeEps = 1e-7

// facet is one planar face of the (convex) Voronoi cell under construction.
// owner is the candidate index whose bisector carries the facet, or -1 for a
// face of the initial bounding box.
type facet struct {
	owner int
	verts []r3.Vector
}

// cell is a convex polyhedron containing the origin, built by successive
// half-space clips. It starts as an axis-aligned bounding cube.
type cell struct {
	facets []facet
	scale  float64 // length scale used for tolerances
}

// newBoundingCell returns a cube of half-width w centered on the origin.
func newBoundingCell(w float64) *cell {
	v := func(x, y, z float64) r3.Vector { return r3.Vector{X: x * w, Y: y * w, Z: z * w} }
	quad := func(a, b, c, d r3.Vector) facet {
		return facet{owner: -1, verts: []r3.Vector{a, b, c, d}}
	}

	return &cell{
		scale: w,
		facets: []facet{
			quad(v(1, -1, -1), v(1, 1, -1), v(1, 1, 1), v(1, -1, 1)),     // +x
			quad(v(-1, -1, -1), v(-1, 1, -1), v(-1, 1, 1), v(-1, -1, 1)), // -x
			quad(v(-1, 1, -1), v(1, 1, -1), v(1, 1, 1), v(-1, 1, 1)),     // +y
			quad(v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1), v(-1, -1, 1)), // -y
			quad(v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1)),     // +z
			quad(v(-1, -1, -1), v(1, -1, -1), v(1, 1, -1), v(-1, 1, -1)), // -z
		},
	}
}

// clip intersects the cell with the half-space n.x <= off (n unit, off > 0,
// so the origin stays inside) and labels the newly cut face with owner.
func (c *cell) clip(n r3.Vector, off float64, owner int) {
	eps := clipEps * c.scale
	kept := c.facets[:0:0]
	var cut []r3.Vector
	changed := false

	for _, f := range c.facets {
		inside, crossings := clipPolygon(f.verts, n, off, eps)
		if len(inside) == len(f.verts) && len(crossings) == 0 {
			kept = append(kept, f)
			continue
		}
		changed = true
		if len(inside) >= 3 {
			kept = append(kept, facet{owner: f.owner, verts: inside})
		}
		cut = append(cut, crossings...)
	}
	if !changed {
		return
	}

	// Assemble the new face lying on the cutting plane.
	cut = dedupPoints(cut, mergeEps*c.scale)
	if len(cut) >= 3 {
		orderAroundNormal(cut, n)
		kept = append(kept, facet{owner: owner, verts: cut})
	}
	c.facets = kept
}

// clipPolygon clips a convex polygon against n.x <= off+eps, returning the
// surviving vertices (in order) and any edge-plane intersection points.
func clipPolygon(verts []r3.Vector, n r3.Vector, off, eps float64) (inside, crossings []r3.Vector) {
	k := len(verts)
	d := make([]float64, k)
	allIn := true
	for i, v := range verts {
		d[i] = n.Dot(v) - off
		if d[i] > eps {
			allIn = false
		}
	}
	if allIn {
		return verts, nil
	}

	for i := 0; i < k; i++ {
		j := (i + 1) % k
		di, dj := d[i], d[j]
		if di <= eps {
			inside = append(inside, verts[i])
			// A vertex sitting on the cutting plane belongs to the new face
			// as well when the polygon is genuinely cut.
			if di >= -eps {
				crossings = append(crossings, verts[i])
			}
		}
		// Strict sign change: edge pierces the plane.
		if (di > eps && dj < -eps) || (di < -eps && dj > eps) {
			t := di / (di - dj)
			p := verts[i].Add(verts[j].Sub(verts[i]).Mul(t))
			inside = append(inside, p)
			crossings = append(crossings, p)
		}
	}

	return inside, crossings
}

// dedupPoints removes near-duplicate points (within eps) preserving first
// occurrence order.
func dedupPoints(pts []r3.Vector, eps float64) []r3.Vector {
	out := pts[:0:0]
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p.Sub(q).Norm() < eps {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}

	return out
}

// orderAroundNormal sorts coplanar points by azimuth around n so they form a
// convex polygon. Ties cannot occur after deduplication.
func orderAroundNormal(pts []r3.Vector, n r3.Vector) {
	// Pick the axis least aligned with n to derive a stable in-plane basis.
	axis := r3.Vector{X: 1}
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	if ay <= ax && ay <= az {
		axis = r3.Vector{Y: 1}
	} else if az <= ax && az <= ay {
		axis = r3.Vector{Z: 1}
	}
	u := n.Cross(axis).Normalize()
	v := n.Cross(u)

	var ctr r3.Vector
	for _, p := range pts {
		ctr = ctr.Add(p)
	}
	ctr = ctr.Mul(1 / float64(len(pts)))

	sort.Slice(pts, func(i, j int) bool {
		pi, pj := pts[i].Sub(ctr), pts[j].Sub(ctr)
		return math.Atan2(v.Dot(pi), u.Dot(pi)) < math.Atan2(v.Dot(pj), u.Dot(pj))
	})
}
