package voronoi_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemenv/crystal"
	"github.com/katalvlaran/chemenv/geom"
	"github.com/katalvlaran/chemenv/voronoi"
)

func structure(t *testing.T, a float64, species []string, fracs []r3.Vector) *crystal.Structure {
	t.Helper()
	lat, err := geom.CubicLattice(a)
	require.NoError(t, err)
	st, err := crystal.NewStructure(lat, species, fracs, nil)
	require.NoError(t, err)
	return st
}

// TestNeighbors_SimpleCubic: the Voronoi cell of a simple cubic lattice is
// the cube, so exactly the 6 face neighbors survive, each with solid angle
// 4*pi/6; edge and corner neighbors share no facet and are dropped.
func TestNeighbors_SimpleCubic(t *testing.T) {
	st := structure(t, 2.0, []string{"Po"}, []r3.Vector{{}})

	cands, err := voronoi.Neighbors(st, 0, voronoi.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, cands, 6)

	var sum float64
	for _, c := range cands {
		assert.InDelta(t, 2.0, c.Distance, 1e-9)
		assert.InDelta(t, 4*math.Pi/6, c.SolidAngle, 1e-6)
		assert.InDelta(t, 1.0, c.NormalizedAngle, 1e-9)
		assert.InDelta(t, 1.0, c.NormalizedDistance, 1e-9)
		sum += c.SolidAngle
	}
	assert.InDelta(t, 4*math.Pi, sum, 1e-6, "facets tile the full sphere")
}

// TestNeighbors_CsCl: the bcc-like cell of the central site is a truncated
// octahedron: 8 hexagonal facets toward the other species plus 6 square
// facets toward the site's own periodic images.
func TestNeighbors_CsCl(t *testing.T) {
	st := structure(t, 2.0,
		[]string{"Cs", "Cl"},
		[]r3.Vector{{}, {X: 0.5, Y: 0.5, Z: 0.5}},
	)

	cands, err := voronoi.Neighbors(st, 1, voronoi.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, cands, 14)

	var sum float64
	var hex, square []float64
	for _, c := range cands {
		sum += c.SolidAngle
		switch {
		case math.Abs(c.Distance-math.Sqrt(3)) < 1e-9:
			assert.Equal(t, 0, c.SiteIndex, "first shell is the other species")
			hex = append(hex, c.SolidAngle)
		case math.Abs(c.Distance-2.0) < 1e-9:
			assert.Equal(t, 1, c.SiteIndex, "second shell is the site's own images")
			square = append(square, c.SolidAngle)
		default:
			t.Fatalf("unexpected surviving distance %v", c.Distance)
		}
	}
	require.Len(t, hex, 8)
	require.Len(t, square, 6)
	assert.InDelta(t, 4*math.Pi, sum, 1e-6)

	for _, sa := range hex {
		assert.InDelta(t, hex[0], sa, 1e-9, "hexagonal facets are equivalent")
		assert.Greater(t, sa, square[0], "hexagons subtend more than squares")
	}
	for _, sa := range square {
		assert.InDelta(t, square[0], sa, 1e-9, "square facets are equivalent")
	}
}

// TestNeighbors_Deterministic: two runs produce identical candidate lists
// (ordering included).
func TestNeighbors_Deterministic(t *testing.T) {
	st := structure(t, 2.0,
		[]string{"Cs", "Cl"},
		[]r3.Vector{{}, {X: 0.5, Y: 0.5, Z: 0.5}},
	)

	a, err := voronoi.Neighbors(st, 0, voronoi.DefaultOptions())
	require.NoError(t, err)
	b, err := voronoi.Neighbors(st, 0, voronoi.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestNeighbors_IsolatedPair: a molecule-like pair in a large box yields a
// single candidate for each atom (the partner), not an error.
func TestNeighbors_IsolatedPair(t *testing.T) {
	st := structure(t, 20.0,
		[]string{"C", "O"},
		[]r3.Vector{{}, {X: 0.06}},
	)

	cands, err := voronoi.Neighbors(st, 0, voronoi.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, 1, cands[0].SiteIndex)
	assert.InDelta(t, 1.2, cands[0].Distance, 1e-9)
	assert.Greater(t, cands[0].SolidAngle, 0.0)
}

// TestNeighbors_Sentinels covers index and option validation.
func TestNeighbors_Sentinels(t *testing.T) {
	st := structure(t, 2.0, []string{"Po"}, []r3.Vector{{}})

	_, err := voronoi.Neighbors(st, -1, voronoi.DefaultOptions())
	assert.ErrorIs(t, err, voronoi.ErrSiteIndex)
	_, err = voronoi.Neighbors(st, 5, voronoi.DefaultOptions())
	assert.ErrorIs(t, err, voronoi.ErrSiteIndex)

	bad := voronoi.DefaultOptions()
	bad.MaxDistanceFactor = 1.0
	_, err = voronoi.Neighbors(st, 0, bad)
	assert.ErrorIs(t, err, voronoi.ErrBadOptions)
}
