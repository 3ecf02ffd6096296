package refgeom

import "sort"

// registry maps symbol -> geometry; cnIndex maps coordination number -> the
// symbols carrying it, sorted. Both are written once at init() and read-only
// afterwards.
var (
	registry = map[string]Geometry{}
	cnIndex  = map[int][]string{}
	symbols  []string
)

func init() {
	for _, g := range rawGeometries() {
		for i, p := range g.Points {
			g.Points[i] = p.Normalize()
		}
		registry[g.Symbol] = g
		cnIndex[g.CN] = append(cnIndex[g.CN], g.Symbol)
		symbols = append(symbols, g.Symbol)
	}
	for cn := range cnIndex {
		sort.Strings(cnIndex[cn])
	}
	sort.Slice(symbols, func(i, j int) bool {
		a, b := registry[symbols[i]], registry[symbols[j]]
		if a.CN != b.CN {
			return a.CN < b.CN
		}
		return a.Symbol < b.Symbol
	})
}

// BySymbol returns the geometry registered under sym, or ErrUnknownSymbol.
func BySymbol(sym string) (Geometry, error) {
	g, ok := registry[sym]
	if !ok {
		return Geometry{}, ErrUnknownSymbol
	}

	return g.clone(), nil
}

// WithCoordination returns every geometry of coordination number cn, sorted
// by symbol. An empty slice means the catalog has no entry for cn; the
// caller simply has nothing to match against (not an error).
func WithCoordination(cn int) []Geometry {
	syms := cnIndex[cn]
	out := make([]Geometry, 0, len(syms))
	for _, s := range syms {
		out = append(out, registry[s].clone())
	}

	return out
}

// All returns the whole catalog sorted by (CN, Symbol).
func All() []Geometry {
	out := make([]Geometry, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, registry[s].clone())
	}

	return out
}
