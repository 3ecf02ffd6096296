package analysis

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/golang/geo/r3"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/chemenv/crystal"
	"github.com/katalvlaran/chemenv/csm"
	"github.com/katalvlaran/chemenv/environments"
	"github.com/katalvlaran/chemenv/neighborsets"
	"github.com/katalvlaran/chemenv/refgeom"
	"github.com/katalvlaran/chemenv/voronoi"
)

// cutoffWidening is the factor applied to the distance cutoff on the single
// retry after an empty neighbor search.
const cutoffWidening = 1.5

// Analyze runs the per-site pipeline (neighbor enumeration, grid build,
// symmetry measures, aggregation) for every site passing the configured
// filters, in parallel.
//
// Per-site failures (no usable neighbors, no measurable set) land in the
// returned Errors map and leave the site's slot nil; they never abort other
// sites. Analyze itself fails only on setup problems or context
// cancellation. A nil ctx is treated as context.Background().
//
// Errors: ErrNilStructure, ErrBadOptions, ErrValencesRequired, or the
// context's error.
func Analyze(ctx context.Context, st *crystal.Structure, opts Options) (*environments.StructureEnvironments, error) {
	if st == nil {
		return nil, ErrNilStructure
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.OnlyCations && !allValencesKnown(st) {
		return nil, ErrValencesRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}

	grid, err := neighborsets.UniformGrid(
		opts.MaximumDistanceFactor, opts.MinimumAngleFactor,
		opts.DistanceGridPoints, opts.AngleGridPoints,
	)
	if err != nil {
		return nil, err
	}

	selected := selectSites(st, opts.filter())
	out := &environments.StructureEnvironments{
		Structure: st,
		Sites:     make([]*environments.SiteEnvironments, st.NumSites()),
		Errors:    make(map[int]error),
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, site := range selected {
		site := site
		g.Go(func() error {
			se, err := analyzeSite(gctx, st, site, grid, opts)
			switch {
			case err == nil:
				out.Sites[site] = se // disjoint write-once slot
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				return err // global abort
			default:
				mu.Lock()
				out.Errors[site] = err
				mu.Unlock()
			}

			mu.Lock()
			done++
			d := done
			mu.Unlock()
			if opts.Progress != nil {
				opts.Progress(site, d, len(selected))
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// analyzeSite runs the forward pipeline for one central site.
func analyzeSite(ctx context.Context, st *crystal.Structure, site int, grid neighborsets.Grid, opts Options) (*environments.SiteEnvironments, error) {
	cands, err := enumerate(st, site, opts)
	if err != nil {
		return nil, err
	}

	sets, lookup, err := neighborsets.Build(cands, grid)
	if err != nil {
		return nil, err
	}

	copts := csm.DefaultOptions()
	copts.Centering = opts.centering()
	copts.IncludeCentralSite = opts.IncludeCentralSiteInCentroid
	copts.TimeLimit = time.Duration(opts.CSMTimeLimit)

	catalog := refgeom.All()
	results := make([][]csm.Result, len(sets))
	for k := range sets {
		if sets[k].CN() == 0 {
			continue // the empty subset measures nothing
		}
		points := make([]r3.Vector, sets[k].CN())
		for j, c := range sets[k].Candidates {
			points[j] = c.Vector
		}
		rs, err := csm.MeasureAll(ctx, points, catalog, copts)
		if err != nil {
			return nil, err
		}
		results[k] = rs
	}

	return environments.New(site, grid, sets, lookup, results)
}

// enumerate finds the site's candidate neighbors, retrying once with a
// widened cutoff when the search comes back empty or with a single
// candidate. A lone neighbor is not an environment, so it reports
// voronoi.ErrNoNeighbors rather than a silent one-coordinate result.
func enumerate(st *crystal.Structure, site int, opts Options) ([]voronoi.Candidate, error) {
	vopts := voronoi.DefaultOptions()
	vopts.MaxDistanceFactor = opts.MaximumDistanceFactor

	cands, err := voronoi.Neighbors(st, site, vopts)
	if err == nil && len(cands) >= 2 {
		return cands, nil
	}
	if err != nil && !errors.Is(err, voronoi.ErrNoNeighbors) {
		return nil, err
	}

	vopts.MaxDistanceFactor *= cutoffWidening
	cands, err = voronoi.Neighbors(st, site, vopts)
	if err != nil {
		return nil, err
	}
	if len(cands) < 2 {
		return nil, voronoi.ErrNoNeighbors
	}

	return cands, nil
}

func selectSites(st *crystal.Structure, keep crystal.SiteFilter) []int {
	out := make([]int, 0, st.NumSites())
	for i := 0; i < st.NumSites(); i++ {
		if keep(st.Site(i), i) {
			out = append(out, i)
		}
	}

	return out
}

func allValencesKnown(st *crystal.Structure) bool {
	for i := 0; i < st.NumSites(); i++ {
		if !st.Site(i).HasValence {
			return false
		}
	}

	return true
}
