package refgeom

import (
	"errors"

	"github.com/golang/geo/r3"
)

// ErrUnknownSymbol indicates a symbol absent from the catalog.
var ErrUnknownSymbol = errors.New("refgeom: unknown coordination geometry symbol")

// Geometry is one ideal coordination polyhedron.
//
// Points are unit vectors from the central atom to the ideal vertices;
// len(Points) == CN. Values returned by the catalog are copies and may be
// mutated freely by callers.
type Geometry struct {
	// Symbol is the registry key, e.g. "T:4" (tetrahedron), "O:6" (octahedron).
	Symbol string

	// Name is the human-readable geometry name.
	Name string

	// CN is the coordination number.
	CN int

	// Points holds the canonical unit vertex directions.
	Points []r3.Vector
}

// clone returns a deep copy so registry data stays immutable.
func (g Geometry) clone() Geometry {
	pts := make([]r3.Vector, len(g.Points))
	copy(pts, g.Points)
	g.Points = pts

	return g
}
