package crystal

// SiteFilter is a pure predicate deciding whether site i of a structure is
// analyzed. Filters never mutate the structure.
type SiteFilter func(s Site, i int) bool

// AllSites accepts every site.
func AllSites() SiteFilter {
	return func(Site, int) bool { return true }
}

// OnlySpecies accepts sites whose species appears in the given list.
func OnlySpecies(species []string) SiteFilter {
	set := stringSet(species)
	return func(s Site, _ int) bool { return set[s.Species] }
}

// ExcludeSpecies rejects sites whose species appears in the given list.
func ExcludeSpecies(species []string) SiteFilter {
	set := stringSet(species)
	return func(s Site, _ int) bool { return !set[s.Species] }
}

// OnlyIndices accepts only the listed site indices.
func OnlyIndices(indices []int) SiteFilter {
	set := make(map[int]bool, len(indices))
	for _, i := range indices {
		set[i] = true
	}
	return func(_ Site, i int) bool { return set[i] }
}

// OnlyCations accepts sites with a known, strictly positive valence.
// Callers must ensure valences were supplied; sites without valence
// information are rejected.
func OnlyCations() SiteFilter {
	return func(s Site, _ int) bool { return s.HasValence && s.Valence > 0 }
}

// And composes filters; a site passes only if every filter accepts it.
func And(filters ...SiteFilter) SiteFilter {
	return func(s Site, i int) bool {
		for _, f := range filters {
			if !f(s, i) {
				return false
			}
		}
		return true
	}
}

func stringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
