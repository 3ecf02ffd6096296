package voronoi

import (
	"sort"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/chemenv/crystal"
	"github.com/katalvlaran/chemenv/geom"
)

// distEps separates a genuine neighbor from the central site itself (the
// zero-image self pair).
const distEps = 1e-8

// nearestScanLimit bounds the geometric growth of the nearest-neighbor scan
// radius. In any non-singular periodic lattice the scan terminates long
// before this.
const nearestScanLimit = 12

// Neighbors enumerates the Voronoi neighbors of the given site.
//
// The search cutoff is opts.MaxDistanceFactor times the nearest-neighbor
// distance. Every atom within the cutoff (through periodic images) becomes a
// raw candidate; the Voronoi cell of the central site is then built by
// half-space clipping, and only candidates whose bisector survives as a
// facet are returned, weighted by the facet solid angle.
//
// The result is sorted by (distance, image offset, site index) and carries
// normalized distances (relative to d_min) and normalized solid angles
// (relative to the largest facet).
//
// Errors: ErrSiteIndex, ErrBadOptions, ErrNoNeighbors.
//
// Complexity: O(m^2) facet work for m raw candidates (each clip touches each
// facet once), on top of the O(images) scan.
func Neighbors(st *crystal.Structure, site int, opts Options) ([]Candidate, error) {
	if site < 0 || site >= st.NumSites() {
		return nil, ErrSiteIndex
	}
	if opts.MaxDistanceFactor <= 1 {
		return nil, ErrBadOptions
	}

	center := st.Site(site).Cart
	lat := st.Lattice()

	dmin, ok := nearestDistance(st, lat, center)
	if !ok {
		return nil, ErrNoNeighbors
	}
	cutoff := opts.MaxDistanceFactor * dmin

	raw := collectWithin(st, lat, center, cutoff)
	if len(raw) == 0 {
		return nil, ErrNoNeighbors
	}

	// Build the Voronoi cell of the central site: clip a bounding cube with
	// each candidate's perpendicular bisector. Candidates are applied in the
	// deterministic sorted order.
	c := newBoundingCell(cutoff)
	for i, cand := range raw {
		n := cand.Vector.Mul(1 / cand.Distance)
		c.clip(n, cand.Distance/2, i)
	}

	// Sum facet solid angles per owner (a face can in principle be split
	// across clip roundoff; summing is harmless).
	angles := make([]float64, len(raw))
	for _, f := range c.facets {
		if f.owner >= 0 {
			angles[f.owner] += geom.PolygonSolidAngle(f.verts)
		}
	}

	kept := raw[:0:0]
	maxAngle := 0.0
	for i := range raw {
		if angles[i] <= opts.MinFacetSolidAngle {
			continue
		}
		raw[i].SolidAngle = angles[i]
		kept = append(kept, raw[i])
		if angles[i] > maxAngle {
			maxAngle = angles[i]
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoNeighbors
	}

	for i := range kept {
		kept[i].NormalizedAngle = kept[i].SolidAngle / maxAngle
		kept[i].NormalizedDistance = kept[i].Distance / dmin
	}

	return kept, nil
}

// nearestDistance finds the distance to the nearest periodic neighbor of the
// point `center`, growing the scan radius geometrically until one appears.
func nearestDistance(st *crystal.Structure, lat *geom.Lattice, center r3.Vector) (float64, bool) {
	r := lat.MinBasisLength()
	for iter := 0; iter < nearestScanLimit; iter++ {
		best, found := 0.0, false
		na, nb, nc := lat.ImageBounds(r)
		for j := 0; j < st.NumSites(); j++ {
			pos := st.Site(j).Cart
			for a := -na; a <= na; a++ {
				for b := -nb; b <= nb; b++ {
					for cI := -nc; cI <= nc; cI++ {
						d := pos.Add(lat.ImageShift(a, b, cI)).Sub(center).Norm()
						if d > distEps && d <= r && (!found || d < best) {
							best, found = d, true
						}
					}
				}
			}
		}
		if found {
			return best, true
		}
		r *= 2
	}

	return 0, false
}

// collectWithin gathers every (site, image) pair within cutoff of center,
// sorted by (distance, image offset, site index).
func collectWithin(st *crystal.Structure, lat *geom.Lattice, center r3.Vector, cutoff float64) []Candidate {
	na, nb, nc := lat.ImageBounds(cutoff)
	var out []Candidate
	for j := 0; j < st.NumSites(); j++ {
		pos := st.Site(j).Cart
		for a := -na; a <= na; a++ {
			for b := -nb; b <= nb; b++ {
				for cI := -nc; cI <= nc; cI++ {
					v := pos.Add(lat.ImageShift(a, b, cI)).Sub(center)
					d := v.Norm()
					if d <= distEps || d > cutoff {
						continue
					}
					out = append(out, Candidate{
						SiteIndex: j,
						Image:     [3]int{a, b, cI},
						Vector:    v,
						Distance:  d,
					})
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].Image != out[j].Image {
			return lessImage(out[i].Image, out[j].Image)
		}
		return out[i].SiteIndex < out[j].SiteIndex
	})

	return out
}

// lessImage orders periodic image offsets lexicographically.
func lessImage(a, b [3]int) bool {
	for k := 0; k < 3; k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}

	return false
}
