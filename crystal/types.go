// Package crystal defines the immutable structure model consumed by the
// coordination-environment pipeline: ordered atomic sites on a periodic
// lattice, plus pure site-selection predicates.
//
// A Structure is built once by a structure provider (file parser, database
// client — outside this module) and is read-only afterwards, which makes
// per-site analysis safely parallel.
package crystal

import (
	"errors"

	"github.com/golang/geo/r3"

	"github.com/katalvlaran/chemenv/geom"
)

// Sentinel errors for structure construction.
var (
	// ErrEmptyStructure indicates a structure with no sites.
	ErrEmptyStructure = errors.New("crystal: structure must contain at least one site")
	// ErrLengthMismatch indicates species/positions/valences slices of differing lengths.
	ErrLengthMismatch = errors.New("crystal: species, positions and valences must have matching lengths")
	// ErrNilLattice indicates a missing lattice.
	ErrNilLattice = errors.New("crystal: lattice must be non-nil")
)

// Site is one atomic site: chemical species, fractional and Cartesian
// position, and an optional formal valence (HasValence reports whether
// Valence carries information).
type Site struct {
	Species    string
	Frac       r3.Vector
	Cart       r3.Vector
	Valence    int
	HasValence bool
}

// Structure is an ordered sequence of sites on a lattice. Immutable once
// constructed; accessors return copies.
type Structure struct {
	lattice *geom.Lattice
	sites   []Site
}

// NewStructure builds a Structure from fractional positions.
//
// valences may be nil (no valence information) or have one entry per site.
// Cartesian positions are derived from the lattice at construction time.
//
// Errors: ErrNilLattice, ErrEmptyStructure, ErrLengthMismatch.
func NewStructure(lattice *geom.Lattice, species []string, fracs []r3.Vector, valences []int) (*Structure, error) {
	if lattice == nil {
		return nil, ErrNilLattice
	}
	if len(species) == 0 || len(fracs) == 0 {
		return nil, ErrEmptyStructure
	}
	if len(species) != len(fracs) || (valences != nil && len(valences) != len(species)) {
		return nil, ErrLengthMismatch
	}

	sites := make([]Site, len(species))
	for i := range species {
		sites[i] = Site{
			Species: species[i],
			Frac:    fracs[i],
			Cart:    lattice.Cartesian(fracs[i]),
		}
		if valences != nil {
			sites[i].Valence = valences[i]
			sites[i].HasValence = true
		}
	}

	return &Structure{lattice: lattice, sites: sites}, nil
}

// Lattice returns the structure's lattice.
func (s *Structure) Lattice() *geom.Lattice { return s.lattice }

// NumSites returns the number of sites.
func (s *Structure) NumSites() int { return len(s.sites) }

// Site returns a copy of site i. Panics on out-of-range i, matching slice
// indexing semantics.
func (s *Structure) Site(i int) Site { return s.sites[i] }
