package csm

import (
	"context"
	"time"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/stat/combin"
)

// exactCheckMask throttles clock/context checks in the exhaustive loop:
// every 64 permutations keeps overhead negligible while staying responsive
// at permutation-loop granularity.
const exactCheckMask = 63

// exactSearch maximizes T over every permutation by lazy enumeration.
// Nothing is materialized: the generator yields one permutation at a time,
// so the search is restartable and interruptible.
//
// Complexity: O(n! * n) trace accumulations plus one 3x3 SVD per
// permutation. Only used for n <= ExactSearchLimit.
func exactSearch(ctx context.Context, p, q []r3.Vector, opts Options) (float64, []int, error) {
	n := len(p)
	w := newProcrustes()
	gen := combin.NewPermutationGenerator(n, n)
	perm := make([]int, n)

	bestT := -1.0
	bestPerm := make([]int, n)

	useDeadline := opts.TimeLimit > 0
	var deadline time.Time
	if useDeadline {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	var step int
	for gen.Next() {
		step++
		if step&exactCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return 0, nil, err
			}
			if useDeadline && time.Now().After(deadline) {
				return 0, nil, ErrTimeLimit
			}
		}

		gen.Permutation(perm)
		w.reset()
		for i := 0; i < n; i++ {
			w.add(p[i], q[perm[i]], 1)
		}
		if t := w.maxTrace(); t > bestT {
			bestT = t
			copy(bestPerm, perm)
		}
	}

	return bestT, bestPerm, nil
}
