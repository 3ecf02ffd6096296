package strategy

import (
	"sort"

	"github.com/katalvlaran/chemenv/csm"
	"github.com/katalvlaran/chemenv/environments"
	"github.com/katalvlaran/chemenv/neighborsets"
)

// resolveMultiCriteria runs the weighted vote. Every result below the
// measure cutoff casts one vote per grid cell its set holds at, weighted by
//
//	(match quality) x (cell area) x (self-consistency) x (stable area)
//	  x (interdependence damping)
//
// and the per-symbol vote totals, normalized to sum 1, become the fractions.
// Cell iteration order is fixed (distance axis outer), so the accumulated
// sums are bit-for-bit reproducible.
func resolveMultiCriteria(se *environments.SiteEnvironments, p MultiCriteriaParams) ([]environments.LightEnvironment, error) {
	nd, na := len(se.Grid.DistanceFactors), len(se.Grid.AngleFactors)
	areas := se.Grid.CellAreas()
	bestSym := bestSymbols(se, nd, na)

	votes := map[string]float64{}
	bestOf := map[string]csm.Result{}
	var total float64

	for di := 0; di < nd; di++ {
		for ai := 0; ai < na; ai++ {
			ord, err := se.SetAt(di, ai)
			if err != nil {
				return nil, err
			}
			set := se.Sets[ord]
			for _, r := range se.Results[ord] {
				if r.CSM >= p.CSMCutoff {
					break // ascending by measure
				}
				w := (1 - r.CSM/p.CSMCutoff) * areas[di][ai]
				w *= blend(p.SelfConsistencyWeight, agreement(bestSym, di, ai, r.Symbol))
				w *= blend(p.StableAreaWeight, set.StableArea)
				w *= 1 - p.InterdependencePenalty*cornerDepth(se.Grid, di, ai)

				votes[r.Symbol] += w
				total += w
				if cur, ok := bestOf[r.Symbol]; !ok || r.CSM < cur.CSM {
					bestOf[r.Symbol] = r
				}
			}
		}
	}

	if total <= 0 {
		return multiCriteriaFallback(se)
	}

	out := make([]environments.LightEnvironment, 0, len(votes))
	for sym, w := range votes {
		r := bestOf[sym]
		out = append(out, environments.LightEnvironment{
			Symbol:      sym,
			Fraction:    w / total,
			CSM:         r.CSM,
			Permutation: r.Permutation,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fraction != out[j].Fraction {
			return out[i].Fraction > out[j].Fraction
		}
		return out[i].Symbol < out[j].Symbol
	})

	return out, nil
}

// multiCriteriaFallback handles the degenerate grid where nothing votes: the
// single globally best result wins with fraction 1, or ErrNoEnvironments
// when there is none.
func multiCriteriaFallback(se *environments.SiteEnvironments) ([]environments.LightEnvironment, error) {
	var best *csm.Result
	for _, rs := range se.Results {
		for i := range rs {
			r := &rs[i]
			if best == nil ||
				r.CSM < best.CSM ||
				(r.CSM == best.CSM && r.Symbol < best.Symbol) {
				best = r
			}
		}
	}
	if best == nil {
		return nil, ErrNoEnvironments
	}

	return []environments.LightEnvironment{{
		Symbol:      best.Symbol,
		Fraction:    1.0,
		CSM:         best.CSM,
		Permutation: best.Permutation,
	}}, nil
}

// bestSymbols precomputes the best geometry symbol per grid cell ("" when
// the cell's set matched nothing); the self-consistency criterion reads it.
func bestSymbols(se *environments.SiteEnvironments, nd, na int) [][]string {
	out := make([][]string, nd)
	for di := 0; di < nd; di++ {
		out[di] = make([]string, na)
		for ai := 0; ai < na; ai++ {
			if r, err := se.BestAt(di, ai); err == nil {
				out[di][ai] = r.Symbol
			}
		}
	}

	return out
}

// agreement returns the fraction of resolvable 4-adjacent cells whose best
// geometry equals sym; cells with no resolvable neighbor are neutral (1).
func agreement(bestSym [][]string, di, ai int, sym string) float64 {
	var seen, same int
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		ni, nj := di+d[0], ai+d[1]
		if ni < 0 || ni >= len(bestSym) || nj < 0 || nj >= len(bestSym[ni]) {
			continue
		}
		if bestSym[ni][nj] == "" {
			continue
		}
		seen++
		if bestSym[ni][nj] == sym {
			same++
		}
	}
	if seen == 0 {
		return 1
	}

	return float64(same) / float64(seen)
}

// blend maps criterion score x in [0,1] to a multiplicative weight in
// [1-w, 1]: w=0 disables the criterion, w=1 applies it fully.
func blend(w, x float64) float64 { return 1 - w*(1-x) }

// cornerDepth measures how deep a cell sits in the far-distance/low-angle
// corner of the grid, on [0, 1]. Single-point axes contribute nothing.
func cornerDepth(grid neighborsets.Grid, di, ai int) float64 {
	return axisDepth(grid.DistanceFactors, di) * (1 - axisDepth(grid.AngleFactors, ai))
}

func axisDepth(xs []float64, i int) float64 {
	span := xs[len(xs)-1] - xs[0]
	if span <= 0 {
		return 0
	}

	return (xs[i] - xs[0]) / span
}
