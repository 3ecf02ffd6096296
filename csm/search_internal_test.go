package csm

import (
	"context"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemenv/refgeom"
)

// distorted7 is a fixed, asymmetric 7-point set: a pentagonal bipyramid with
// deterministic per-vertex perturbations, so the optimal permutation is
// unique and the bound has real work to do.
func distorted7(t *testing.T) ([]r3.Vector, []r3.Vector) {
	t.Helper()
	g, err := refgeom.BySymbol("PB:7")
	require.NoError(t, err)

	bumps := []r3.Vector{
		{X: 0.11, Y: -0.03, Z: 0.02},
		{X: -0.05, Y: 0.08, Z: -0.04},
		{X: 0.02, Y: 0.02, Z: 0.09},
		{X: -0.07, Y: -0.06, Z: 0.01},
		{X: 0.04, Y: 0.10, Z: -0.03},
		{X: -0.02, Y: 0.01, Z: 0.06},
		{X: 0.08, Y: -0.09, Z: -0.02},
	}
	p := make([]r3.Vector, 7)
	for i := range p {
		p[i] = g.Points[i].Mul(1.7).Add(bumps[i])
	}
	return p, g.Points
}

// TestBBMatchesExhaustive: the bounded search returns exactly the optimum
// that exhaustive enumeration finds (same T; the bound is admissible).
func TestBBMatchesExhaustive(t *testing.T) {
	raw, q := distorted7(t)
	p, _, err := prepare(raw, DefaultOptions())
	require.NoError(t, err)

	exT, exPerm, err := exactSearch(context.Background(), p, q, DefaultOptions())
	require.NoError(t, err)

	bbT, bbPerm, err := bbSearch(context.Background(), p, q, DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, exT, bbT, 1e-9, "bounded search must reach the exhaustive optimum")
	assert.Equal(t, exPerm, bbPerm, "unique optimum: identical permutation")
}

// TestFinalize_Bounds: the measure stays on [0, 100] even at the extremes.
func TestFinalize_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, finalize(2.5, 1.0, 4), "overshoot clamps to 0")
	assert.Equal(t, MaxMeasure, finalize(0, 1.0, 4))
	v := finalize(1.0, 1.0, 4)
	assert.Greater(t, v, 0.0)
	assert.Less(t, v, MaxMeasure)
}
