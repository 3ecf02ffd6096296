package environments

import (
	"errors"
	"sort"

	"github.com/katalvlaran/chemenv/crystal"
	"github.com/katalvlaran/chemenv/csm"
	"github.com/katalvlaran/chemenv/neighborsets"
)

// Sentinel errors for aggregation and lookup.
var (
	// ErrNoSets indicates construction without any neighbor set.
	ErrNoSets = errors.New("environments: at least one neighbor set is required")
	// ErrResultMismatch indicates a results slice not parallel to the sets.
	ErrResultMismatch = errors.New("environments: one result list per neighbor set is required")
	// ErrLookupShape indicates a lookup table whose dimensions or ordinals do
	// not match the grid and set count.
	ErrLookupShape = errors.New("environments: lookup table does not match grid and sets")
	// ErrCellRange indicates grid indices outside the lookup table.
	ErrCellRange = errors.New("environments: grid cell indices out of range")
	// ErrNoResult indicates a grid cell whose neighbor set matched no
	// reference geometry.
	ErrNoResult = errors.New("environments: no symmetry result at grid cell")
)

// SiteEnvironments is the aggregated view of one analyzed site: every
// deduplicated neighbor set the grid produces, each set's symmetry results
// sorted ascending by measure, and an O(1) map from grid cell to set.
type SiteEnvironments struct {
	// SiteIndex is the central site's index in the structure.
	SiteIndex int

	// Grid is the parameter grid the sets were built on.
	Grid neighborsets.Grid

	// Sets holds the deduplicated neighbor sets in build order.
	Sets []neighborsets.NeighborSet

	// Results[i] are the measures of Sets[i] against every compatible
	// reference geometry, ascending by measure. May be empty when no catalog
	// geometry shares the set's coordination number.
	Results [][]csm.Result

	lookup [][]int
}

// New indexes one site's analysis output. The lookup table is the one
// returned by neighborsets.Build: lookup[di][ai] is the ordinal into sets of
// the subset holding at grid point (di, ai).
//
// Errors: ErrNoSets, ErrResultMismatch, ErrLookupShape.
func New(siteIndex int, grid neighborsets.Grid, sets []neighborsets.NeighborSet, lookup [][]int, results [][]csm.Result) (*SiteEnvironments, error) {
	if len(sets) == 0 {
		return nil, ErrNoSets
	}
	if len(results) != len(sets) {
		return nil, ErrResultMismatch
	}
	if len(lookup) != len(grid.DistanceFactors) {
		return nil, ErrLookupShape
	}
	for _, row := range lookup {
		if len(row) != len(grid.AngleFactors) {
			return nil, ErrLookupShape
		}
		for _, ord := range row {
			if ord < 0 || ord >= len(sets) {
				return nil, ErrLookupShape
			}
		}
	}

	return &SiteEnvironments{
		SiteIndex: siteIndex,
		Grid:      grid,
		Sets:      sets,
		Results:   results,
		lookup:    lookup,
	}, nil
}

// SetAt returns the ordinal (index into Sets) of the neighbor set holding at
// grid cell (di, ai).
//
// Errors: ErrCellRange.
func (se *SiteEnvironments) SetAt(di, ai int) (int, error) {
	if di < 0 || di >= len(se.lookup) || ai < 0 || ai >= len(se.lookup[di]) {
		return 0, ErrCellRange
	}

	return se.lookup[di][ai], nil
}

// BestAt returns the lowest-measure result of the neighbor set holding at
// grid cell (di, ai).
//
// Errors: ErrCellRange, ErrNoResult.
func (se *SiteEnvironments) BestAt(di, ai int) (csm.Result, error) {
	ord, err := se.SetAt(di, ai)
	if err != nil {
		return csm.Result{}, err
	}
	if len(se.Results[ord]) == 0 {
		return csm.Result{}, ErrNoResult
	}

	return se.Results[ord][0], nil
}

// LightEnvironment is one entry of a site's final resolved environment list:
// a reference-geometry symbol, its fraction of the site's assignment, the
// measure backing it and the matching vertex permutation. Fractions across a
// site's list are non-negative and sum to 1.
type LightEnvironment struct {
	Symbol      string
	Fraction    float64
	CSM         float64
	Permutation []int
}

// StructureEnvironments collects per-site aggregation across a whole
// structure. Sites is indexed by site index; entries stay nil for sites that
// were filtered out or failed (their failure, if any, is in Errors).
type StructureEnvironments struct {
	Structure *crystal.Structure
	Sites     []*SiteEnvironments
	Errors    map[int]error
}

// Analyzed returns the ascending site indices that were aggregated
// successfully.
func (st *StructureEnvironments) Analyzed() []int {
	out := make([]int, 0, len(st.Sites))
	for i, se := range st.Sites {
		if se != nil {
			out = append(out, i)
		}
	}
	sort.Ints(out)

	return out
}
