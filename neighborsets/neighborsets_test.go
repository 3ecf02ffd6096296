package neighborsets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemenv/neighborsets"
	"github.com/katalvlaran/chemenv/voronoi"
)

// cand builds a synthetic candidate with the given normalized coordinates;
// only the normalized fields matter to the grid builder.
func cand(nd, na float64) voronoi.Candidate {
	return voronoi.Candidate{NormalizedDistance: nd, NormalizedAngle: na}
}

// TestNewGrid_Validation covers the grid sentinels.
func TestNewGrid_Validation(t *testing.T) {
	_, err := neighborsets.NewGrid(nil, []float64{0.5})
	assert.ErrorIs(t, err, neighborsets.ErrEmptyGrid)

	_, err = neighborsets.NewGrid([]float64{1, 1}, []float64{0.5})
	assert.ErrorIs(t, err, neighborsets.ErrGridOrder)

	_, err = neighborsets.NewGrid([]float64{-1, 2}, []float64{0.5})
	assert.ErrorIs(t, err, neighborsets.ErrGridRange)

	_, err = neighborsets.NewGrid([]float64{1, 2}, []float64{0.5, 1.5})
	assert.ErrorIs(t, err, neighborsets.ErrGridRange)
}

// TestUniformGrid checks endpoints and monotone spacing.
func TestUniformGrid(t *testing.T) {
	g, err := neighborsets.UniformGrid(2.0, 0.1, 5, 4)
	require.NoError(t, err)
	assert.Len(t, g.DistanceFactors, 5)
	assert.Len(t, g.AngleFactors, 4)
	assert.Equal(t, 1.0, g.DistanceFactors[0])
	assert.Equal(t, 2.0, g.DistanceFactors[4])
	assert.Equal(t, 0.1, g.AngleFactors[0])
	assert.Equal(t, 1.0, g.AngleFactors[3])
}

// TestBuild_DedupAndRegions verifies deduplication, region bookkeeping, and
// the lookup table on a small hand-checked grid.
func TestBuild_DedupAndRegions(t *testing.T) {
	cands := []voronoi.Candidate{cand(1.0, 1.0), cand(1.5, 0.5)}
	grid, err := neighborsets.NewGrid([]float64{1.0, 1.2, 1.6}, []float64{0.2, 0.8})
	require.NoError(t, err)

	sets, lookup, err := neighborsets.Build(cands, grid)
	require.NoError(t, err)
	require.Len(t, sets, 2, "five cells collapse into two logical subsets")

	// First-seen order: {0} appears at (0,0); {0,1} first at (2,0).
	assert.Equal(t, []int{0}, sets[0].Members)
	assert.Equal(t, []int{0, 1}, sets[1].Members)
	assert.Len(t, sets[0].Region, 5)
	assert.Len(t, sets[1].Region, 1)

	assert.Equal(t, 0, lookup[0][0])
	assert.Equal(t, 0, lookup[1][1])
	assert.Equal(t, 1, lookup[2][0])
	assert.Equal(t, 0, lookup[2][1], "high angle factor excludes the far candidate")

	// Areas over all sets cover the parameter rectangle exactly.
	assert.InDelta(t, 1.0, sets[0].AreaFraction+sets[1].AreaFraction, 1e-12)
	for _, s := range sets {
		assert.LessOrEqual(t, s.StableArea, s.AreaFraction+1e-12)
		assert.Greater(t, s.StableArea, 0.0)
	}
}

// TestBuild_SubsetMonotonicity: at fixed angle factor, increasing the
// distance factor never removes members.
func TestBuild_SubsetMonotonicity(t *testing.T) {
	cands := []voronoi.Candidate{
		cand(1.0, 1.0), cand(1.3, 0.9), cand(1.7, 0.4), cand(1.9, 0.2),
	}
	grid, err := neighborsets.UniformGrid(2.0, 0.0, 11, 6)
	require.NoError(t, err)

	sets, lookup, err := neighborsets.Build(cands, grid)
	require.NoError(t, err)

	for ai := range grid.AngleFactors {
		prev := map[int]bool{}
		for di := range grid.DistanceFactors {
			cur := sets[lookup[di][ai]].Members
			for m := range prev {
				assert.Contains(t, cur, m,
					"member lost when growing distance factor at ai=%d di=%d", ai, di)
			}
			prev = map[int]bool{}
			for _, m := range cur {
				prev[m] = true
			}
		}
	}
}

// TestBuild_EmptyAndFullRetained: grids reaching below the nearest neighbor
// retain the empty subset, and generous corners retain the full subset.
func TestBuild_EmptyAndFullRetained(t *testing.T) {
	cands := []voronoi.Candidate{cand(1.0, 1.0), cand(1.4, 0.3)}
	grid, err := neighborsets.NewGrid([]float64{0.5, 1.0, 1.5}, []float64{0.0, 0.9})
	require.NoError(t, err)

	sets, lookup, err := neighborsets.Build(cands, grid)
	require.NoError(t, err)

	empty := sets[lookup[0][0]]
	assert.Equal(t, 0, empty.CN(), "df below 1 yields the empty subset")

	full := sets[lookup[2][0]]
	assert.Equal(t, 2, full.CN(), "generous corner yields the full subset")
}

// TestBuild_NoCandidates covers the sentinel.
func TestBuild_NoCandidates(t *testing.T) {
	grid, err := neighborsets.UniformGrid(2.0, 0.0, 2, 2)
	require.NoError(t, err)

	_, _, err = neighborsets.Build(nil, grid)
	assert.ErrorIs(t, err, neighborsets.ErrNoCandidates)
}

// TestBuild_BoundaryInclusion: a candidate exactly on both cutoffs is
// included.
func TestBuild_BoundaryInclusion(t *testing.T) {
	cands := []voronoi.Candidate{cand(1.0, 1.0), cand(1.5, 0.5)}
	grid, err := neighborsets.NewGrid([]float64{1.5}, []float64{0.5})
	require.NoError(t, err)

	sets, lookup, err := neighborsets.Build(cands, grid)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, sets[lookup[0][0]].Members)
}
