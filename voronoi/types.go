package voronoi

import (
	"errors"

	"github.com/golang/geo/r3"
)

// Sentinel errors for neighbor enumeration.
var (
	// ErrNoNeighbors indicates no candidate neighbor within the search
	// cutoff. Recoverable per site: the caller may widen the cutoff once
	// and retry; other sites are unaffected.
	ErrNoNeighbors = errors.New("voronoi: no neighbors found within the search cutoff")
	// ErrSiteIndex indicates a site index outside the structure.
	ErrSiteIndex = errors.New("voronoi: site index out of range")
	// ErrBadOptions indicates out-of-range enumeration options.
	ErrBadOptions = errors.New("voronoi: MaxDistanceFactor must be greater than 1")
)

// Candidate is one neighbor of a central site, reached possibly through a
// periodic image, together with its Voronoi-facet weight.
type Candidate struct {
	// SiteIndex is the index of the neighboring site in the structure.
	SiteIndex int

	// Image is the periodic image offset (na, nb, nc) of the neighbor.
	Image [3]int

	// Vector points from the central site to the neighbor (Cartesian).
	Vector r3.Vector

	// Distance is the Cartesian separation, |Vector|.
	Distance float64

	// SolidAngle is the solid angle (steradians) of the neighbor's Voronoi
	// facet as seen from the central site.
	SolidAngle float64

	// NormalizedAngle is SolidAngle divided by the maximum solid angle over
	// the candidate list, in (0, 1].
	NormalizedAngle float64

	// NormalizedDistance is Distance divided by the nearest-neighbor
	// distance, in [1, MaxDistanceFactor].
	NormalizedDistance float64
}

// Options configures neighbor enumeration.
type Options struct {
	// MaxDistanceFactor scales the nearest-neighbor distance into the search
	// cutoff. Must be > 1.
	MaxDistanceFactor float64

	// MinFacetSolidAngle discards facets below this solid angle; such facets
	// are numerical slivers from bisectors tangent to the cell.
	MinFacetSolidAngle float64
}

// DefaultOptions returns the standard enumeration parameters: cutoff at
// twice the nearest-neighbor distance, slivers below 1e-6 sr dropped.
func DefaultOptions() Options {
	return Options{
		MaxDistanceFactor:  2.0,
		MinFacetSolidAngle: 1e-6,
	}
}
