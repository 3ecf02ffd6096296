package geom

import (
	"errors"
	"math"

	"github.com/golang/geo/r3"
)

// volEps is the absolute volume below which a lattice basis is treated as
// singular. Crystallographic cells are O(1)–O(10^3) A^3; anything below this
// is a degenerate (collinear/coplanar) basis.
const volEps = 1e-12

// ErrSingularLattice indicates a lattice basis with (near-)zero cell volume.
// This is fatal for the whole analysis: no periodic geometry can be derived.
var ErrSingularLattice = errors.New("geom: lattice basis is singular (zero cell volume)")

// Lattice is an immutable periodic lattice defined by three Cartesian basis
// vectors a, b, c. It precomputes the reciprocal rows so that fractional
// coordinates are obtained with three dot products.
type Lattice struct {
	a, b, c r3.Vector

	// volume is |a . (b x c)|, strictly positive after construction.
	volume float64

	// ra, rb, rc are the rows of the inverse basis matrix:
	// Fractional(p) = (ra.p, rb.p, rc.p).
	ra, rb, rc r3.Vector
}

// NewLattice builds a Lattice from three Cartesian basis vectors.
//
// Returns ErrSingularLattice when the basis spans (near-)zero volume, since
// the fractional transform is undefined in that case.
//
// Complexity: O(1).
func NewLattice(a, b, c r3.Vector) (*Lattice, error) {
	vol := a.Dot(b.Cross(c))
	if math.Abs(vol) < volEps {
		return nil, ErrSingularLattice
	}
	inv := 1.0 / vol

	return &Lattice{
		a:      a,
		b:      b,
		c:      c,
		volume: math.Abs(vol),
		ra:     b.Cross(c).Mul(inv),
		rb:     c.Cross(a).Mul(inv),
		rc:     a.Cross(b).Mul(inv),
	}, nil
}

// CubicLattice is a convenience constructor for a cubic cell of edge length a.
func CubicLattice(a float64) (*Lattice, error) {
	return NewLattice(
		r3.Vector{X: a},
		r3.Vector{Y: a},
		r3.Vector{Z: a},
	)
}

// Basis returns the three basis vectors (a, b, c).
func (l *Lattice) Basis() (r3.Vector, r3.Vector, r3.Vector) { return l.a, l.b, l.c }

// Volume returns the (positive) cell volume.
func (l *Lattice) Volume() float64 { return l.volume }

// Cartesian converts fractional coordinates f to Cartesian coordinates.
func (l *Lattice) Cartesian(f r3.Vector) r3.Vector {
	return l.a.Mul(f.X).Add(l.b.Mul(f.Y)).Add(l.c.Mul(f.Z))
}

// Fractional converts Cartesian coordinates p to fractional coordinates.
func (l *Lattice) Fractional(p r3.Vector) r3.Vector {
	return r3.Vector{X: l.ra.Dot(p), Y: l.rb.Dot(p), Z: l.rc.Dot(p)}
}

// ImageShift returns the Cartesian translation of the periodic image
// (na, nb, nc): na*a + nb*b + nc*c.
func (l *Lattice) ImageShift(na, nb, nc int) r3.Vector {
	return l.a.Mul(float64(na)).Add(l.b.Mul(float64(nb))).Add(l.c.Mul(float64(nc)))
}

// ImageBounds returns, per axis, the number of periodic images that must be
// scanned so that every lattice point within the given Cartesian radius of
// the home cell is covered.
//
// The fractional coordinate along axis i changes by at most radius*|r_i| over
// a Cartesian displacement of length radius, where r_i is the corresponding
// reciprocal row; one extra image absorbs the offset of points inside the
// home cell.
func (l *Lattice) ImageBounds(radius float64) (int, int, int) {
	if radius <= 0 {
		return 0, 0, 0
	}
	na := int(math.Ceil(radius*l.ra.Norm())) + 1
	nb := int(math.Ceil(radius*l.rb.Norm())) + 1
	nc := int(math.Ceil(radius*l.rc.Norm())) + 1

	return na, nb, nc
}

// MinBasisLength returns the length of the shortest basis vector. Used as the
// starting radius when searching for the nearest periodic neighbor.
func (l *Lattice) MinBasisLength() float64 {
	m := l.a.Norm()
	if n := l.b.Norm(); n < m {
		m = n
	}
	if n := l.c.Norm(); n < m {
		m = n
	}

	return m
}
