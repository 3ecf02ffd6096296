package refgeom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemenv/refgeom"
)

// TestCatalog_UnitVertices verifies every catalog entry: CN matches the point
// count and all vertex directions are unit length.
func TestCatalog_UnitVertices(t *testing.T) {
	all := refgeom.All()
	require.NotEmpty(t, all)

	for _, g := range all {
		assert.Len(t, g.Points, g.CN, "symbol %s: CN must equal point count", g.Symbol)
		for i, p := range g.Points {
			assert.InDelta(t, 1.0, p.Norm(), 1e-12, "symbol %s point %d not unit", g.Symbol, i)
		}
	}
}

// TestCatalog_SymbolsUnique ensures no duplicate symbols and stable ordering.
func TestCatalog_SymbolsUnique(t *testing.T) {
	all := refgeom.All()
	seen := map[string]bool{}
	lastCN := 0
	for _, g := range all {
		assert.False(t, seen[g.Symbol], "duplicate symbol %s", g.Symbol)
		seen[g.Symbol] = true
		assert.GreaterOrEqual(t, g.CN, lastCN, "catalog must be sorted by CN")
		lastCN = g.CN
	}
}

// TestBySymbol covers lookup, copy semantics, and the unknown-symbol sentinel.
func TestBySymbol(t *testing.T) {
	g, err := refgeom.BySymbol("T:4")
	require.NoError(t, err)
	assert.Equal(t, 4, g.CN)
	assert.Equal(t, "Tetrahedron", g.Name)

	// Mutating the returned copy must not leak into the registry.
	g.Points[0].X = 42
	again, err := refgeom.BySymbol("T:4")
	require.NoError(t, err)
	assert.NotEqual(t, 42.0, again.Points[0].X)

	_, err = refgeom.BySymbol("Z:99")
	assert.ErrorIs(t, err, refgeom.ErrUnknownSymbol)
}

// TestWithCoordination checks CN queries, including an empty CN.
func TestWithCoordination(t *testing.T) {
	cn4 := refgeom.WithCoordination(4)
	syms := make([]string, 0, len(cn4))
	for _, g := range cn4 {
		syms = append(syms, g.Symbol)
	}
	assert.Equal(t, []string{"S:4", "SS:4", "SY:4", "T:4"}, syms)

	assert.Empty(t, refgeom.WithCoordination(99))
}

// TestTetrahedron_Angles verifies the tetrahedral vertex angle on the T:4
// dataset: every pair of directions at arccos(-1/3).
func TestTetrahedron_Angles(t *testing.T) {
	g, err := refgeom.BySymbol("T:4")
	require.NoError(t, err)

	want := -1.0 / 3.0
	for i := 0; i < g.CN; i++ {
		for j := i + 1; j < g.CN; j++ {
			assert.InDelta(t, want, g.Points[i].Dot(g.Points[j]), 1e-12)
		}
	}
}

// TestOctahedron_Angles verifies the octahedron dataset: each direction has
// one antipode and four orthogonal partners.
func TestOctahedron_Angles(t *testing.T) {
	g, err := refgeom.BySymbol("O:6")
	require.NoError(t, err)

	for i := 0; i < g.CN; i++ {
		anti, ortho := 0, 0
		for j := 0; j < g.CN; j++ {
			if i == j {
				continue
			}
			d := g.Points[i].Dot(g.Points[j])
			switch {
			case math.Abs(d+1) < 1e-12:
				anti++
			case math.Abs(d) < 1e-12:
				ortho++
			}
		}
		assert.Equal(t, 1, anti)
		assert.Equal(t, 4, ortho)
	}
}
