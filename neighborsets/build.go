package neighborsets

import (
	"fmt"

	"github.com/katalvlaran/chemenv/voronoi"
)

// boundEps absorbs floating noise on grid-point boundaries so that a
// candidate sitting exactly on a cutoff is included deterministically.
const boundEps = 1e-9

// Build sweeps the grid over the candidate list and returns the
// deduplicated neighbor sets plus the cell lookup table:
// lookup[di][ai] is the index into the returned sets of the subset at grid
// point (di, ai). The lookup gives O(1) "which subset holds at (d, a)?"
// queries downstream.
//
// Sets appear in first-seen row-major order (distance axis outer), which is
// deterministic for a given candidate ordering.
//
// Errors: ErrNoCandidates.
//
// Complexity: O(|grid| * m) membership work for m candidates, plus O(|grid|)
// region bookkeeping.
func Build(cands []voronoi.Candidate, grid Grid) ([]NeighborSet, [][]int, error) {
	if len(cands) == 0 {
		return nil, nil, ErrNoCandidates
	}

	nd, na := len(grid.DistanceFactors), len(grid.AngleFactors)
	lookup := make([][]int, nd)
	index := map[string]int{}
	var sets []NeighborSet

	for di := 0; di < nd; di++ {
		lookup[di] = make([]int, na)
		df := grid.DistanceFactors[di]
		for ai := 0; ai < na; ai++ {
			af := grid.AngleFactors[ai]

			members := membersAt(cands, df, af)
			key := fmt.Sprint(members)
			ord, ok := index[key]
			if !ok {
				ord = len(sets)
				index[key] = ord
				sets = append(sets, newSet(cands, members))
			}
			sets[ord].Region = append(sets[ord].Region, Cell{DI: di, AI: ai})
			lookup[di][ai] = ord
		}
	}

	areas := cellAreas(grid)
	for i := range sets {
		sets[i].AreaFraction = regionArea(sets[i].Region, areas)
		sets[i].StableArea = largestComponentArea(sets[i].Region, nd, na, areas)
	}

	return sets, lookup, nil
}

// membersAt returns the ascending candidate indices satisfying both cutoffs.
func membersAt(cands []voronoi.Candidate, df, af float64) []int {
	members := make([]int, 0, len(cands))
	for i, c := range cands {
		if c.NormalizedDistance <= df+boundEps && c.NormalizedAngle >= af-boundEps {
			members = append(members, i)
		}
	}

	return members
}

func newSet(cands []voronoi.Candidate, members []int) NeighborSet {
	sel := make([]voronoi.Candidate, len(members))
	for k, i := range members {
		sel[k] = cands[i]
	}

	return NeighborSet{Members: members, Candidates: sel}
}

// CellAreas returns areas[di][ai], the normalized share of the parameter
// rectangle owned by each grid point (midpoint intervals on both axes, all
// areas summing to 1). Strategies use these as per-cell voting weights.
func (g Grid) CellAreas() [][]float64 { return cellAreas(g) }

// cellAreas assigns each grid point the normalized area of its midpoint
// interval on both axes, so that all cell areas sum to 1 regardless of grid
// spacing. Single-point axes get weight 1.
func cellAreas(grid Grid) [][]float64 {
	wd := axisWeights(grid.DistanceFactors)
	wa := axisWeights(grid.AngleFactors)
	out := make([][]float64, len(wd))
	for i, d := range wd {
		out[i] = make([]float64, len(wa))
		for j, a := range wa {
			out[i][j] = d * a
		}
	}

	return out
}

// axisWeights returns per-point normalized interval widths: each grid point
// owns the span between the midpoints toward its neighbors, clamped to the
// axis ends.
func axisWeights(xs []float64) []float64 {
	n := len(xs)
	if n == 1 {
		return []float64{1}
	}
	total := xs[n-1] - xs[0]
	out := make([]float64, n)
	for i := range xs {
		lo := xs[0]
		if i > 0 {
			lo = (xs[i-1] + xs[i]) / 2
		}
		hi := xs[n-1]
		if i < n-1 {
			hi = (xs[i] + xs[i+1]) / 2
		}
		out[i] = (hi - lo) / total
	}

	return out
}

func regionArea(region []Cell, areas [][]float64) float64 {
	var sum float64
	for _, c := range region {
		sum += areas[c.DI][c.AI]
	}

	return sum
}
