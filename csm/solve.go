package csm

import (
	"context"
	"errors"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/chemenv/refgeom"
)

// Measure computes the continuous symmetry measure between neighbor
// positions (Cartesian vectors from the central site) and one reference
// geometry.
//
// The permutation search is exhaustive up to ExactSearchLimit points and
// branch-and-bound beyond; both are exact. A nil ctx is treated as
// context.Background().
//
// Errors: ErrNoPoints, ErrCoordinationMismatch, ErrDegeneratePoints,
// ErrTimeLimit, or the context's error on cancellation.
func Measure(ctx context.Context, points []r3.Vector, g refgeom.Geometry, opts Options) (Result, error) {
	n := len(points)
	if n == 0 {
		return Result{}, ErrNoPoints
	}
	if n != g.CN || len(g.Points) != g.CN {
		return Result{}, ErrCoordinationMismatch
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p, sp, err := prepare(points, opts)
	if err != nil {
		return Result{}, err
	}

	// Reference directions are unit in the catalog; normalize defensively
	// for caller-supplied geometries so that Sq == n holds.
	q := make([]r3.Vector, n)
	for i, v := range g.Points {
		q[i] = v.Normalize()
	}

	var (
		bestT float64
		perm  []int
	)
	if n <= ExactSearchLimit {
		bestT, perm, err = exactSearch(ctx, p, q, opts)
	} else {
		bestT, perm, err = bbSearch(ctx, p, q, opts)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{Symbol: g.Symbol, CSM: finalize(bestT, sp, n), Permutation: perm}, nil
}

// MeasureAll measures the neighbor set against every compatible geometry in
// geoms, skipping coordination-number mismatches silently, and returns the
// results sorted ascending by CSM (symbol tiebreak).
//
// A geometry whose individual search exceeds opts.TimeLimit is skipped —
// the remaining pairings still resolve. Context cancellation aborts the
// whole call.
func MeasureAll(ctx context.Context, points []r3.Vector, geoms []refgeom.Geometry, opts Options) ([]Result, error) {
	var out []Result
	for _, g := range geoms {
		if g.CN != len(points) {
			continue
		}
		res, err := Measure(ctx, points, g, opts)
		switch {
		case err == nil:
			out = append(out, res)
		case errors.Is(err, ErrTimeLimit):
			continue
		default:
			return nil, err
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CSM != out[j].CSM {
			return out[i].CSM < out[j].CSM
		}
		return out[i].Symbol < out[j].Symbol
	})

	return out, nil
}
