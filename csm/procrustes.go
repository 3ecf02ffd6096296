package csm

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// coincidentEps is the mean radius under which the neighbor set carries no
// shape information.
const coincidentEps = 1e-12

// prepare centers the neighbor positions per the options and normalizes by
// the mean radius. It returns the prepared points and Sp = sum |p_i|^2.
func prepare(points []r3.Vector, opts Options) ([]r3.Vector, float64, error) {
	n := len(points)
	p := make([]r3.Vector, n)
	copy(p, points)

	if opts.Centering == CentroidCentering {
		var ctr r3.Vector
		for _, v := range p {
			ctr = ctr.Add(v)
		}
		div := float64(n)
		if opts.IncludeCentralSite {
			div++ // the central site sits at the origin and contributes zero
		}
		ctr = ctr.Mul(1 / div)
		for i := range p {
			p[i] = p[i].Sub(ctr)
		}
	}

	var rbar float64
	for _, v := range p {
		rbar += v.Norm()
	}
	rbar /= float64(n)
	if rbar < coincidentEps {
		return nil, 0, ErrDegeneratePoints
	}

	var sp float64
	for i := range p {
		p[i] = p[i].Mul(1 / rbar)
		sp += p[i].Dot(p[i])
	}

	return p, sp, nil
}

// procrustes holds the reusable workspace for maximum-trace evaluations of
// the running 3x3 correlation matrix M = sum p_i q_pi(i)^T.
type procrustes struct {
	h     [9]float64
	dense *mat.Dense
	svd   mat.SVD
	vals  []float64
}

func newProcrustes() *procrustes {
	w := &procrustes{vals: make([]float64, 3)}
	w.dense = mat.NewDense(3, 3, w.h[:])

	return w
}

// add accumulates sign * p q^T into the running matrix.
func (w *procrustes) add(p, q r3.Vector, sign float64) {
	w.h[0] += sign * p.X * q.X
	w.h[1] += sign * p.X * q.Y
	w.h[2] += sign * p.X * q.Z
	w.h[3] += sign * p.Y * q.X
	w.h[4] += sign * p.Y * q.Y
	w.h[5] += sign * p.Y * q.Z
	w.h[6] += sign * p.Z * q.X
	w.h[7] += sign * p.Z * q.Y
	w.h[8] += sign * p.Z * q.Z
}

func (w *procrustes) reset() {
	for i := range w.h {
		w.h[i] = 0
	}
}

// maxTrace returns max over proper rotations R of tr(R M) for the current
// matrix: s1 + s2 + sign(det M)*s3. Always non-negative (s1+s2 >= s3), and
// well defined for rank-deficient M, which is how degenerate neighbor sets
// are absorbed without special cases.
func (w *procrustes) maxTrace() float64 {
	if !w.svd.Factorize(w.dense, mat.SVDNone) {
		// Factorization of a finite 3x3 matrix cannot fail; guard anyway.
		return 0
	}
	w.svd.Values(w.vals)
	t := w.vals[0] + w.vals[1]
	if w.det() >= 0 {
		t += w.vals[2]
	} else {
		t -= w.vals[2]
	}
	if t < 0 {
		t = 0
	}

	return t
}

// det computes the determinant of the running 3x3 matrix directly.
func (w *procrustes) det() float64 {
	h := &w.h
	return h[0]*(h[4]*h[8]-h[5]*h[7]) -
		h[1]*(h[3]*h[8]-h[5]*h[6]) +
		h[2]*(h[3]*h[7]-h[4]*h[6])
}

// pairwiseProfile returns, per point, the sorted distances to every other
// point. Profiles are rotation-invariant signatures used to order branching
// candidates; they never influence correctness.
func pairwiseProfile(pts []r3.Vector) [][]float64 {
	n := len(pts)
	out := make([][]float64, n)
	for i := range pts {
		row := make([]float64, 0, n-1)
		for j := range pts {
			if i != j {
				row = append(row, pts[i].Sub(pts[j]).Norm())
			}
		}
		sortFloats(row)
		out[i] = row
	}

	return out
}

// profileGap is the L1 distance between two equal-length profiles.
func profileGap(a, b []float64) float64 {
	var g float64
	for k := range a {
		g += math.Abs(a[k] - b[k])
	}

	return g
}

// sortFloats is a small insertion sort: profiles are short (n-1 entries) and
// this avoids pulling sort.Float64s into the hot precompute.
func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
