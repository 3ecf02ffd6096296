// SPDX-License-Identifier: MIT
// Package: chemenv/csm
//
// bb.go — branch-and-bound permutation search for high coordination numbers.
//
// Rationale (succinct):
//  1. The optimum maximizes T(pi) = maxtr(sum_i p_i q_pi(i)^T) over proper
//     rotations; maxtr is subadditive and each rank-one term contributes at
//     most |p_i| (reference vertices are unit). Hence for a partial
//     assignment A over neighbors S:
//
//     T(any completion of A) <= maxtr(M_A) + sum_{i not in S} |p_i|
//
//     an admissible upper bound: pruning by it never discards the true
//     optimum. Equal-value optima are tied-broken by the deterministic
//     enumeration order.
//  2. Branching: neighbors are processed by descending |p_i| (index
//     tiebreak), so heavy contributors bind early and the bound tightens
//     fast. Candidate reference vertices per neighbor are pre-ordered by
//     pairwise-distance-profile similarity — a rotation-invariant signature
//     that tends to try the right vertex first. Order never affects
//     correctness, only time-to-tighten.
//  3. The incumbent is seeded with the identity permutation and a greedy
//     profile assignment before the search starts.
//  4. Interruption: context and optional deadline are checked at every node;
//     each node already pays a 3x3 SVD, so the clock read is noise.
//
// Complexity: worst case exponential in n (exact search); practical speed
// comes from the bound. Per node: O(n) matrix rebuild + one 3x3 SVD.
package csm

import (
	"context"
	"sort"
	"time"

	"github.com/golang/geo/r3"
)

// bbEngine holds the search data and policies for one (p, q) pair.
type bbEngine struct {
	n int
	p []r3.Vector
	q []r3.Vector

	pn     []float64 // |p_i|
	order  []int     // neighbor processing order, descending |p_i|
	cand   [][]int   // cand[k]: reference-vertex try order for neighbor order[k]
	suffix []float64 // suffix[k] = sum of |p_i| over unprocessed neighbors

	used   []bool
	assign []int
	w      *procrustes

	bestT    float64
	bestPerm []int
	eps      float64

	ctx         context.Context
	useDeadline bool
	deadline    time.Time
	err         error // sticky interruption error
}

// bbSearch maximizes T over permutations via bounded DFS.
func bbSearch(ctx context.Context, p, q []r3.Vector, opts Options) (float64, []int, error) {
	e := &bbEngine{
		n:        len(p),
		p:        p,
		q:        q,
		eps:      opts.Eps,
		ctx:      ctx,
		bestT:    -1,
		bestPerm: make([]int, len(p)),
	}
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}

	e.precompute()
	e.seed()
	e.dfs(0)
	if e.err != nil {
		return 0, nil, e.err
	}

	return e.bestT, e.bestPerm, nil
}

// precompute fills norms, processing order, suffix sums, and per-neighbor
// candidate orders.
func (e *bbEngine) precompute() {
	e.pn = make([]float64, e.n)
	for i, v := range e.p {
		e.pn[i] = v.Norm()
	}

	e.order = make([]int, e.n)
	for i := range e.order {
		e.order[i] = i
	}
	sort.SliceStable(e.order, func(a, b int) bool {
		ia, ib := e.order[a], e.order[b]
		if e.pn[ia] != e.pn[ib] {
			return e.pn[ia] > e.pn[ib]
		}
		return ia < ib
	})

	e.suffix = make([]float64, e.n+1)
	for k := e.n - 1; k >= 0; k-- {
		e.suffix[k] = e.suffix[k+1] + e.pn[e.order[k]]
	}

	pProf := pairwiseProfile(e.p)
	qProf := pairwiseProfile(e.q)
	e.cand = make([][]int, e.n)
	for k := 0; k < e.n; k++ {
		i := e.order[k]
		row := make([]int, e.n)
		for j := range row {
			row[j] = j
		}
		sort.SliceStable(row, func(a, b int) bool {
			ga := profileGap(pProf[i], qProf[row[a]])
			gb := profileGap(pProf[i], qProf[row[b]])
			if ga != gb {
				return ga < gb
			}
			return row[a] < row[b]
		})
		e.cand[k] = row
	}

	e.used = make([]bool, e.n)
	e.assign = make([]int, e.n)
	e.w = newProcrustes()
}

// seed evaluates the identity permutation and the greedy profile assignment
// so the DFS starts with a finite incumbent.
func (e *bbEngine) seed() {
	ident := make([]int, e.n)
	for i := range ident {
		ident[i] = i
	}
	e.tryPerm(ident)

	greedy := make([]int, e.n)
	taken := make([]bool, e.n)
	for k := 0; k < e.n; k++ {
		for _, j := range e.cand[k] {
			if !taken[j] {
				taken[j] = true
				greedy[e.order[k]] = j
				break
			}
		}
	}
	e.tryPerm(greedy)
}

// tryPerm evaluates a full permutation and records it if it improves the
// incumbent.
func (e *bbEngine) tryPerm(perm []int) {
	e.w.reset()
	for i := 0; i < e.n; i++ {
		e.w.add(e.p[i], e.q[perm[i]], 1)
	}
	if t := e.w.maxTrace(); t > e.bestT {
		e.bestT = t
		copy(e.bestPerm, perm)
	}
}

// interrupted reports (and latches) context cancellation or deadline expiry.
func (e *bbEngine) interrupted() bool {
	if err := e.ctx.Err(); err != nil {
		e.err = err
		return true
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		e.err = ErrTimeLimit
		return true
	}

	return false
}

// dfs explores assignments for neighbors order[k:]. The correlation matrix
// is rebuilt from the first k assignments at every node: O(k) work that
// keeps the trace evaluation free of incremental FP drift.
func (e *bbEngine) dfs(k int) {
	if e.err != nil || e.interrupted() {
		return
	}

	e.w.reset()
	for m := 0; m < k; m++ {
		i := e.order[m]
		e.w.add(e.p[i], e.q[e.assign[i]], 1)
	}
	t := e.w.maxTrace()

	if k == e.n {
		if t > e.bestT {
			e.bestT = t
			copy(e.bestPerm, e.assign)
		}
		return
	}

	// Prune: even a perfect completion cannot beat the incumbent.
	if t+e.suffix[k] <= e.bestT+e.eps {
		return
	}

	i := e.order[k]
	for _, j := range e.cand[k] {
		if e.used[j] {
			continue
		}
		e.used[j] = true
		e.assign[i] = j
		e.dfs(k + 1)
		e.used[j] = false
		if e.err != nil {
			return
		}
	}
}
