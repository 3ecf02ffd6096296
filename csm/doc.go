// SPDX-License-Identifier: MIT
// Package: chemenv/csm
//
// Package csm computes the continuous symmetry measure (CSM) between a
// neighbor set and an ideal coordination geometry.
//
// For neighbor positions p (relative to the central site) and reference
// unit vertex directions q, the measure is
//
//	csm = 100 * min over permutations pi, rotations R, scales s of
//	      sum_i |p_i - s*R*q_pi(i)|^2  /  sum_i |p_i|^2
//
// after centering (centroid or central site) and mean-radius normalization.
// 0 means an exact shape match; 100 is the worst case (the optimum of the
// inner fit is never worse than collapsing the reference to a point).
//
// For a fixed permutation the inner problem is orthogonal Procrustes: with
// M = sum_i p_i q_pi(i)^T, the best proper rotation gives
//
//	T(pi) = max_R tr(R M) = s1 + s2 + sign(det M)*s3
//
// (s1 >= s2 >= s3 the singular values of M), the optimal scale follows in
// closed form, and
//
//	csm = 100 * (1 - T^2 / (Sp * Sq)),  Sp = sum|p|^2, Sq = sum|q|^2 = n.
//
// SVD keeps the fit well defined for degenerate (collinear or coplanar)
// neighbor sets; no special-casing is needed.
//
// Search over permutations:
//
//   - n <= ExactSearchLimit: lazy exhaustive enumeration (gonum
//     combin.PermutationGenerator), nothing materialized.
//   - larger n: depth-first branch-and-bound maximizing T. The admissible
//     upper bound for a partial assignment A is
//
//     T <= maxtr(M_A) + sum over unassigned i of |p_i|,
//
//     since maxtr is subadditive and each rank-one update q*p^T contributes
//     at most |p||q| = |p_i|. The bound never discards the true optimum;
//     candidate branching order (pairwise-distance-profile similarity) is a
//     heuristic that only affects how fast the incumbent tightens.
//
// Both searches honor a context and an optional per-call time budget, so a
// worst-case permutation search can be interrupted at loop granularity.
package csm
