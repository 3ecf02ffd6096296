package csm

import (
	"errors"
	"math"
	"time"
)

// MaxMeasure is the upper end of the CSM scale.
const MaxMeasure = 100.0

// ExactSearchLimit is the largest coordination number solved by exhaustive
// permutation enumeration; beyond it the branch-and-bound search is used
// (n! becomes intractable while the bounded search stays practical into the
// low double digits).
const ExactSearchLimit = 6

// Sentinel errors.
var (
	// ErrNoPoints indicates an empty neighbor set.
	ErrNoPoints = errors.New("csm: at least one neighbor position required")
	// ErrCoordinationMismatch indicates a reference geometry whose
	// coordination number differs from the neighbor set size. MeasureAll
	// skips such geometries silently; Measure reports the mismatch.
	ErrCoordinationMismatch = errors.New("csm: neighbor set and reference geometry sizes differ")
	// ErrDegeneratePoints indicates all neighbors coincide with the center,
	// leaving no shape to match.
	ErrDegeneratePoints = errors.New("csm: neighbor positions coincide with the center")
	// ErrTimeLimit indicates the permutation search exceeded its time budget.
	ErrTimeLimit = errors.New("csm: time budget exhausted before the search completed")
)

// Centering selects the origin of the shape comparison.
type Centering int

const (
	// CentralSiteCentering keeps positions relative to the central site.
	CentralSiteCentering Centering = iota
	// CentroidCentering recenters on the neighbor centroid.
	CentroidCentering
)

// Options configures a measure computation.
type Options struct {
	// Centering selects central-site or centroid centering.
	Centering Centering

	// IncludeCentralSite counts the central site (the origin) as one of the
	// points averaged into the centroid. Only meaningful with
	// CentroidCentering.
	IncludeCentralSite bool

	// TimeLimit bounds one permutation search; non-positive means no limit.
	TimeLimit time.Duration

	// Eps guards branch-and-bound pruning: a branch survives only if its
	// bound exceeds the incumbent by more than Eps.
	Eps float64
}

// DefaultOptions returns central-site centering with no time budget.
func DefaultOptions() Options {
	return Options{Eps: 1e-12}
}

// Result is the measure of one (neighbor set, reference geometry) pair.
type Result struct {
	// Symbol identifies the reference geometry.
	Symbol string

	// CSM is the measure on the [0, 100] scale, 0 = exact match.
	CSM float64

	// Permutation maps neighbor index i to the matched reference vertex
	// Permutation[i].
	Permutation []int
}

// measureScale stabilizes reported measures to 1e-9 to prevent
// cross-platform FP noise from flipping downstream comparisons.
const measureScale = 1e9

// finalize converts an optimal T into the bounded, stabilized CSM value.
func finalize(bestT, sp float64, n int) float64 {
	v := MaxMeasure * (1 - bestT*bestT/(sp*float64(n)))
	v = math.Round(v*measureScale) / measureScale
	if v < 0 {
		v = 0
	}
	if v > MaxMeasure {
		v = MaxMeasure
	}

	return v
}
