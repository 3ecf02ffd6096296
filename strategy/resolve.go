package strategy

import "github.com/katalvlaran/chemenv/environments"

// ResolveStructure applies one strategy to every aggregated site of st.
// Failures stay site-scoped: a site whose resolution fails lands in the
// error map and the remaining sites still resolve. Upstream per-site errors
// recorded during aggregation are carried through.
func ResolveStructure(st *environments.StructureEnvironments, s Strategy) (map[int][]environments.LightEnvironment, map[int]error) {
	resolved := make(map[int][]environments.LightEnvironment)
	failed := make(map[int]error, len(st.Errors))
	for site, err := range st.Errors {
		failed[site] = err
	}

	for _, site := range st.Analyzed() {
		envs, err := s.Resolve(st.Sites[site])
		if err != nil {
			failed[site] = err
			continue
		}
		resolved[site] = envs
	}

	return resolved, failed
}
