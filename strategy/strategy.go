package strategy

import (
	"errors"
	"math"

	"github.com/katalvlaran/chemenv/environments"
)

// Sentinel errors reported by the resolvers.
var (
	// ErrBadStrategy indicates invalid or inconsistent strategy parameters.
	ErrBadStrategy = errors.New("strategy: invalid strategy parameters")
	// ErrAmbiguousCutoff indicates that the neighbor set at the requested
	// cutoffs matched no reference geometry, so no single environment can be
	// reported.
	ErrAmbiguousCutoff = errors.New("strategy: no environment resolvable at the requested cutoffs")
	// ErrNoEnvironments indicates a site where no neighbor set anywhere on
	// the grid matched any reference geometry.
	ErrNoEnvironments = errors.New("strategy: no neighbor set matched any reference geometry")
)

// Kind selects the resolution policy. The set is closed: resolvers switch
// over it exhaustively.
type Kind int

const (
	// FixedCutoff resolves at one (distance, angle) grid point.
	FixedCutoff Kind = iota
	// MultiCriteriaWeighted resolves by weighted voting across the grid.
	MultiCriteriaWeighted
)

// FixedCutoffParams locate the single grid point the policy reads.
type FixedCutoffParams struct {
	// DistanceCutoff is the requested distance factor (multiple of the
	// nearest-neighbor distance). Must be positive.
	DistanceCutoff float64
	// AngleCutoff is the requested angle factor in [0, 1].
	AngleCutoff float64
}

// MultiCriteriaParams tune the weighted vote. All blend weights live in
// [0, 1]; 0 disables the corresponding criterion.
type MultiCriteriaParams struct {
	// CSMCutoff bounds participation: only results with a measure strictly
	// below it cast votes. Must be positive.
	CSMCutoff float64
	// SelfConsistencyWeight blends in agreement with the best geometry of
	// the 4-adjacent grid cells.
	SelfConsistencyWeight float64
	// StableAreaWeight blends in the voting set's largest contiguous grid
	// region, favoring geometries sustained over wide parameter patches.
	StableAreaWeight float64
	// InterdependencePenalty damps votes from the far-distance/low-angle
	// corner of the grid, where distance and angle cutoffs interact least
	// reliably.
	InterdependencePenalty float64
}

// DefaultMultiCriteria returns the parameters used when the caller has no
// opinion: all criteria active, moderate corner damping.
func DefaultMultiCriteria() MultiCriteriaParams {
	return MultiCriteriaParams{
		CSMCutoff:              8.0,
		SelfConsistencyWeight:  1.0,
		StableAreaWeight:       1.0,
		InterdependencePenalty: 0.5,
	}
}

// Strategy is the tagged variant over the closed policy set. Construct via
// NewFixedCutoff or NewMultiCriteria; only the params matching Kind are read.
type Strategy struct {
	Kind  Kind
	Fixed FixedCutoffParams
	Multi MultiCriteriaParams
}

// NewFixedCutoff builds the single-point policy.
func NewFixedCutoff(distanceCutoff, angleCutoff float64) Strategy {
	return Strategy{
		Kind:  FixedCutoff,
		Fixed: FixedCutoffParams{DistanceCutoff: distanceCutoff, AngleCutoff: angleCutoff},
	}
}

// NewMultiCriteria builds the weighted-voting policy.
func NewMultiCriteria(p MultiCriteriaParams) Strategy {
	return Strategy{Kind: MultiCriteriaWeighted, Multi: p}
}

// Resolve collapses one site's aggregated results into its final environment
// list: fractions are non-negative, sum to 1, and are sorted descending
// (symbol tiebreak ascending).
//
// Errors: ErrBadStrategy, ErrAmbiguousCutoff (fixed cutoff),
// ErrNoEnvironments (weighted vote over a site with no results at all).
func (s Strategy) Resolve(se *environments.SiteEnvironments) ([]environments.LightEnvironment, error) {
	if se == nil {
		return nil, ErrNoEnvironments
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	switch s.Kind {
	case FixedCutoff:
		return resolveFixed(se, s.Fixed)
	default:
		return resolveMultiCriteria(se, s.Multi)
	}
}

func (s Strategy) validate() error {
	switch s.Kind {
	case FixedCutoff:
		if s.Fixed.DistanceCutoff <= 0 ||
			s.Fixed.AngleCutoff < 0 || s.Fixed.AngleCutoff > 1 {
			return ErrBadStrategy
		}
	case MultiCriteriaWeighted:
		p := s.Multi
		if p.CSMCutoff <= 0 ||
			!unit(p.SelfConsistencyWeight) || !unit(p.StableAreaWeight) ||
			!unit(p.InterdependencePenalty) {
			return ErrBadStrategy
		}
	default:
		return ErrBadStrategy
	}

	return nil
}

func unit(w float64) bool { return w >= 0 && w <= 1 }

// resolveFixed snaps each requested cutoff to the nearest grid point
// (Euclidean per axis; ties break toward the smaller factor) and reports the
// best geometry of the set holding there with fraction 1.
func resolveFixed(se *environments.SiteEnvironments, p FixedCutoffParams) ([]environments.LightEnvironment, error) {
	di := nearestIndex(se.Grid.DistanceFactors, p.DistanceCutoff)
	ai := nearestIndex(se.Grid.AngleFactors, p.AngleCutoff)

	best, err := se.BestAt(di, ai)
	if err != nil {
		return nil, ErrAmbiguousCutoff
	}

	return []environments.LightEnvironment{{
		Symbol:      best.Symbol,
		Fraction:    1.0,
		CSM:         best.CSM,
		Permutation: best.Permutation,
	}}, nil
}

// nearestIndex returns the index of the grid factor closest to v; exact
// distance ties go to the smaller factor. xs is ascending and non-empty.
func nearestIndex(xs []float64, v float64) int {
	best, bestDist := 0, math.Abs(xs[0]-v)
	for i := 1; i < len(xs); i++ {
		if d := math.Abs(xs[i] - v); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}
