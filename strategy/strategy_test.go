package strategy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemenv/csm"
	"github.com/katalvlaran/chemenv/environments"
	"github.com/katalvlaran/chemenv/neighborsets"
	"github.com/katalvlaran/chemenv/strategy"
)

// mkEnv assembles a synthetic 2x2-grid site aggregation: one result list per
// set, one stable-area share per set, and an explicit cell-to-set lookup.
func mkEnv(t *testing.T, lookup [][]int, results [][]csm.Result, stable []float64) *environments.SiteEnvironments {
	t.Helper()
	grid, err := neighborsets.NewGrid([]float64{1.0, 1.5}, []float64{0.2, 0.6})
	require.NoError(t, err)

	sets := make([]neighborsets.NeighborSet, len(results))
	for i := range sets {
		sets[i] = neighborsets.NeighborSet{
			Members:    []int{0},
			StableArea: stable[i],
		}
	}

	se, err := environments.New(0, grid, sets, lookup, results)
	require.NoError(t, err)
	return se
}

// twoSetEnv: set 0 (tetrahedral, strong) on three cells, set 1 (linear,
// weaker) on the high-distance/high-angle corner.
func twoSetEnv(t *testing.T) *environments.SiteEnvironments {
	t.Helper()
	return mkEnv(t,
		[][]int{{0, 0}, {0, 1}},
		[][]csm.Result{
			{
				{Symbol: "T:4", CSM: 0.5, Permutation: []int{0, 1, 2, 3}},
				{Symbol: "S:4", CSM: 9.0, Permutation: []int{0, 1, 3, 2}},
			},
			{
				{Symbol: "L:2", CSM: 1.0, Permutation: []int{0, 1}},
			},
		},
		[]float64{0.75, 0.25},
	)
}

func TestFixedCutoff_SnapsToNearestCell(t *testing.T) {
	se := twoSetEnv(t)

	// (1.4, 0.3) snaps to grid point (1.5, 0.2) -> set 0.
	out, err := strategy.NewFixedCutoff(1.4, 0.3).Resolve(se)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "T:4", out[0].Symbol)
	assert.Equal(t, 1.0, out[0].Fraction)
	assert.InDelta(t, 0.5, out[0].CSM, 1e-12)
	assert.Equal(t, []int{0, 1, 2, 3}, out[0].Permutation)

	// (1.6, 0.7) snaps to (1.5, 0.6) -> set 1.
	out, err = strategy.NewFixedCutoff(1.6, 0.7).Resolve(se)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "L:2", out[0].Symbol)
}

// TestFixedCutoff_TieBreaksLow: a cutoff exactly between two grid points
// snaps to the smaller factor on both axes.
func TestFixedCutoff_TieBreaksLow(t *testing.T) {
	se := mkEnv(t,
		[][]int{{0, 0}, {1, 1}},
		[][]csm.Result{
			{{Symbol: "T:4", CSM: 0.5, Permutation: []int{0, 1, 2, 3}}},
			{{Symbol: "L:2", CSM: 1.0, Permutation: []int{0, 1}}},
		},
		[]float64{0.5, 0.5},
	)

	out, err := strategy.NewFixedCutoff(1.25, 0.4).Resolve(se)
	require.NoError(t, err)
	assert.Equal(t, "T:4", out[0].Symbol, "ties must snap toward smaller factors")
}

func TestFixedCutoff_Ambiguous(t *testing.T) {
	se := mkEnv(t,
		[][]int{{0, 0}, {1, 0}},
		[][]csm.Result{
			{{Symbol: "T:4", CSM: 0.5, Permutation: []int{0, 1, 2, 3}}},
			nil, // no compatible geometry for this set
		},
		[]float64{0.5, 0.5},
	)

	_, err := strategy.NewFixedCutoff(1.6, 0.1).Resolve(se)
	assert.ErrorIs(t, err, strategy.ErrAmbiguousCutoff)
}

func TestResolve_Validation(t *testing.T) {
	se := twoSetEnv(t)

	_, err := strategy.NewFixedCutoff(0, 0.3).Resolve(se)
	assert.ErrorIs(t, err, strategy.ErrBadStrategy)

	_, err = strategy.NewFixedCutoff(1.4, 1.2).Resolve(se)
	assert.ErrorIs(t, err, strategy.ErrBadStrategy)

	bad := strategy.DefaultMultiCriteria()
	bad.CSMCutoff = 0
	_, err = strategy.NewMultiCriteria(bad).Resolve(se)
	assert.ErrorIs(t, err, strategy.ErrBadStrategy)

	bad = strategy.DefaultMultiCriteria()
	bad.SelfConsistencyWeight = 1.5
	_, err = strategy.NewMultiCriteria(bad).Resolve(se)
	assert.ErrorIs(t, err, strategy.ErrBadStrategy)

	_, err = strategy.Strategy{Kind: strategy.Kind(42)}.Resolve(se)
	assert.ErrorIs(t, err, strategy.ErrBadStrategy)

	_, err = strategy.NewFixedCutoff(1.4, 0.3).Resolve(nil)
	assert.ErrorIs(t, err, strategy.ErrNoEnvironments)
}

func TestMultiCriteria_FractionsSumToOne(t *testing.T) {
	se := twoSetEnv(t)

	out, err := strategy.NewMultiCriteria(strategy.DefaultMultiCriteria()).Resolve(se)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	var sum float64
	for _, e := range out {
		assert.GreaterOrEqual(t, e.Fraction, 0.0)
		sum += e.Fraction
	}
	assert.InDelta(t, 1.0, sum, 1e-6)

	// Sorted descending by fraction; the three-cell tetrahedral set must
	// dominate the one-cell linear set.
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Fraction, out[i].Fraction)
	}
	assert.Equal(t, "T:4", out[0].Symbol)
}

func TestMultiCriteria_Deterministic(t *testing.T) {
	se := twoSetEnv(t)
	s := strategy.NewMultiCriteria(strategy.DefaultMultiCriteria())

	a, err := s.Resolve(se)
	require.NoError(t, err)
	b, err := s.Resolve(se)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestMultiCriteria_CutoffFallback: with a measure cutoff below every
// result, the single globally best result wins outright.
func TestMultiCriteria_CutoffFallback(t *testing.T) {
	se := twoSetEnv(t)
	p := strategy.DefaultMultiCriteria()
	p.CSMCutoff = 0.4 // below the best result (0.5)

	out, err := strategy.NewMultiCriteria(p).Resolve(se)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "T:4", out[0].Symbol)
	assert.Equal(t, 1.0, out[0].Fraction)
}

func TestMultiCriteria_NoEnvironments(t *testing.T) {
	se := mkEnv(t,
		[][]int{{0, 0}, {0, 0}},
		[][]csm.Result{nil},
		[]float64{1.0},
	)

	_, err := strategy.NewMultiCriteria(strategy.DefaultMultiCriteria()).Resolve(se)
	assert.ErrorIs(t, err, strategy.ErrNoEnvironments)
}

// TestMultiCriteria_PerSymbolBestMeasure: the reported measure per symbol is
// the minimum across all cells where the symbol voted.
func TestMultiCriteria_PerSymbolBestMeasure(t *testing.T) {
	se := mkEnv(t,
		[][]int{{0, 0}, {1, 1}},
		[][]csm.Result{
			{{Symbol: "T:4", CSM: 2.0, Permutation: []int{0, 1, 2, 3}}},
			{{Symbol: "T:4", CSM: 0.7, Permutation: []int{1, 0, 2, 3}}},
		},
		[]float64{0.5, 0.5},
	)

	out, err := strategy.NewMultiCriteria(strategy.DefaultMultiCriteria()).Resolve(se)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "T:4", out[0].Symbol)
	assert.InDelta(t, 0.7, out[0].CSM, 1e-12)
	assert.Equal(t, []int{1, 0, 2, 3}, out[0].Permutation)
	assert.InDelta(t, 1.0, out[0].Fraction, 1e-12)
}

func TestResolveStructure_SiteScopedFailures(t *testing.T) {
	good := twoSetEnv(t)
	ambiguous := mkEnv(t,
		[][]int{{0, 0}, {0, 0}},
		[][]csm.Result{nil},
		[]float64{1.0},
	)
	upstream := errors.New("neighbors: widened cutoff still empty")

	st := &environments.StructureEnvironments{
		Sites:  []*environments.SiteEnvironments{good, nil, ambiguous},
		Errors: map[int]error{1: upstream},
	}

	resolved, failed := strategy.ResolveStructure(st, strategy.NewMultiCriteria(strategy.DefaultMultiCriteria()))

	require.Contains(t, resolved, 0)
	assert.Equal(t, "T:4", resolved[0][0].Symbol)

	assert.ErrorIs(t, failed[1], upstream)
	assert.ErrorIs(t, failed[2], strategy.ErrNoEnvironments)
	assert.NotContains(t, resolved, 2)
}
