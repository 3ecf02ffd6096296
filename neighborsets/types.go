package neighborsets

import (
	"errors"

	"github.com/katalvlaran/chemenv/voronoi"
)

// Sentinel errors for grid construction.
var (
	// ErrEmptyGrid indicates a grid axis with no points.
	ErrEmptyGrid = errors.New("neighborsets: both grid axes must have at least one point")
	// ErrGridOrder indicates a non-ascending grid axis.
	ErrGridOrder = errors.New("neighborsets: grid factors must be strictly ascending")
	// ErrGridRange indicates grid factors outside their valid ranges
	// (distance factors must be positive, angle factors within [0, 1]).
	ErrGridRange = errors.New("neighborsets: grid factors out of range")
	// ErrNoCandidates indicates an empty candidate list.
	ErrNoCandidates = errors.New("neighborsets: candidate list must be non-empty")
)

// Grid is the 2-D parameter grid: ascending distance factors (multiples of
// the nearest-neighbor distance) and ascending angle factors (fractions of
// the maximum facet solid angle).
type Grid struct {
	DistanceFactors []float64
	AngleFactors    []float64
}

// Cell addresses one grid point by its axis indices.
type Cell struct {
	DI int // index into DistanceFactors
	AI int // index into AngleFactors
}

// NeighborSet is one deduplicated neighbor subset together with the grid
// region that produces it.
type NeighborSet struct {
	// Members are ascending indices into the candidate list passed to Build.
	Members []int

	// Candidates are the member candidates themselves, in Members order.
	Candidates []voronoi.Candidate

	// Region lists every grid cell yielding this subset, in row-major order
	// (distance axis outer, angle axis inner).
	Region []Cell

	// AreaFraction is the subset's share of the parameter rectangle, using
	// per-cell areas from midpoint intervals on each axis.
	AreaFraction float64

	// StableArea is the area fraction of the largest 4-connected component
	// of Region: the biggest contiguous parameter patch sustaining the
	// subset.
	StableArea float64
}

// CN returns the subset's coordination number.
func (ns NeighborSet) CN() int { return len(ns.Members) }

// NewGrid validates and wraps explicit grid axes.
func NewGrid(distanceFactors, angleFactors []float64) (Grid, error) {
	if len(distanceFactors) == 0 || len(angleFactors) == 0 {
		return Grid{}, ErrEmptyGrid
	}
	if !ascending(distanceFactors) || !ascending(angleFactors) {
		return Grid{}, ErrGridOrder
	}
	if distanceFactors[0] <= 0 ||
		angleFactors[0] < 0 || angleFactors[len(angleFactors)-1] > 1 {
		return Grid{}, ErrGridRange
	}

	return Grid{DistanceFactors: distanceFactors, AngleFactors: angleFactors}, nil
}

// UniformGrid builds nd distance factors linearly spaced over
// [1, maxDistanceFactor] and na angle factors over [minAngleFactor, 1].
func UniformGrid(maxDistanceFactor, minAngleFactor float64, nd, na int) (Grid, error) {
	if nd < 1 || na < 1 {
		return Grid{}, ErrEmptyGrid
	}

	return NewGrid(linspace(1, maxDistanceFactor, nd), linspace(minAngleFactor, 1, na))
}

func ascending(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}

	return true
}

func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi // exact upper bound, no FP drift

	return out
}
