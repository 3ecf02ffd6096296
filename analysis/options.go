package analysis

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/chemenv/crystal"
	"github.com/katalvlaran/chemenv/csm"
	"github.com/katalvlaran/chemenv/strategy"
)

// Sentinel errors for run setup.
var (
	// ErrNilStructure indicates a nil structure.
	ErrNilStructure = errors.New("analysis: structure must be non-nil")
	// ErrBadOptions indicates out-of-range or inconsistent options.
	ErrBadOptions = errors.New("analysis: invalid options")
	// ErrValencesRequired indicates only_cations was requested on a structure
	// without valence information on every site.
	ErrValencesRequired = errors.New("analysis: only_cations requires valences on every site")
)

// Recognized centering_type values.
const (
	CenteringCentralSite = "central_site"
	CenteringCentroid    = "centroid"
)

// Recognized strategy kinds.
const (
	StrategyFixedCutoff   = "fixed_cutoff"
	StrategyMultiCriteria = "multi_criteria"
)

// ProgressFunc reports per-site completion: site is the index just finished
// (successfully or not), done/total count selected sites. Called from worker
// goroutines, at most once per site; implementations must be safe for
// concurrent use.
type ProgressFunc func(site, done, total int)

// Duration is a time.Duration that decodes from yaml strings ("250ms",
// "1m30s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("%w: csm_time_limit must be a duration string", ErrBadOptions)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: bad duration %q", ErrBadOptions, s)
	}
	*d = Duration(parsed)

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// StrategyOptions select and parameterize the resolution policy. Weights of
// the multi-criteria vote beyond the measure cutoff keep their defaults;
// callers needing full control construct a strategy.Strategy directly.
type StrategyOptions struct {
	// Kind is "fixed_cutoff" or "multi_criteria" (the default when empty).
	Kind string `yaml:"kind"`

	// DistanceCutoff and AngleCutoff locate the fixed-cutoff grid point.
	DistanceCutoff float64 `yaml:"distance_cutoff"`
	AngleCutoff    float64 `yaml:"angle_cutoff"`

	// CSMCutoff overrides the multi-criteria voting cutoff when positive.
	CSMCutoff float64 `yaml:"csm_cutoff"`
}

// Build materializes the configured policy.
//
// Errors: ErrBadOptions on an unknown kind.
func (so StrategyOptions) Build() (strategy.Strategy, error) {
	switch so.Kind {
	case StrategyFixedCutoff:
		return strategy.NewFixedCutoff(so.DistanceCutoff, so.AngleCutoff), nil
	case "", StrategyMultiCriteria:
		p := strategy.DefaultMultiCriteria()
		if so.CSMCutoff > 0 {
			p.CSMCutoff = so.CSMCutoff
		}
		return strategy.NewMultiCriteria(p), nil
	default:
		return strategy.Strategy{}, fmt.Errorf("%w: unknown strategy kind %q", ErrBadOptions, so.Kind)
	}
}

// Options configure one structure analysis.
type Options struct {
	// CenteringType is "central_site" (default) or "centroid".
	CenteringType string `yaml:"centering_type"`

	// IncludeCentralSiteInCentroid counts the central site into the centroid
	// under centroid centering.
	IncludeCentralSiteInCentroid bool `yaml:"include_central_site_in_centroid"`

	// MaximumDistanceFactor bounds neighbor search at this multiple of the
	// nearest-neighbor distance. Must exceed 1.
	MaximumDistanceFactor float64 `yaml:"maximum_distance_factor"`

	// MinimumAngleFactor is the lower end of the angle-factor grid, in [0, 1).
	MinimumAngleFactor float64 `yaml:"minimum_angle_factor"`

	// DistanceGridPoints and AngleGridPoints size the parameter grid axes.
	DistanceGridPoints int `yaml:"distance_grid_points"`
	AngleGridPoints    int `yaml:"angle_grid_points"`

	// Site selection filters, combined conjunctively. Empty slices are
	// inactive.
	ExcludedSpecies []string `yaml:"excluded_species,omitempty"`
	OnlySpecies     []string `yaml:"only_species,omitempty"`
	OnlyIndices     []int    `yaml:"only_indices,omitempty"`
	OnlyCations     bool     `yaml:"only_cations"`

	// Workers caps parallel per-site tasks; non-positive means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// CSMTimeLimit bounds each permutation search; geometries exceeding it
	// are skipped for that neighbor set. Zero means no limit.
	CSMTimeLimit Duration `yaml:"csm_time_limit"`

	// Strategy selects the resolution policy for ResolveStructure consumers.
	Strategy StrategyOptions `yaml:"strategy"`

	// Progress, when non-nil, receives per-site completion events.
	Progress ProgressFunc `yaml:"-"`
}

// DefaultOptions returns the standard configuration: central-site centering,
// distance factors on [1, 2], angle factors on [0.05, 1], a 10x10 grid, and
// the multi-criteria strategy.
func DefaultOptions() Options {
	return Options{
		CenteringType:         CenteringCentralSite,
		MaximumDistanceFactor: 2.0,
		MinimumAngleFactor:    0.05,
		DistanceGridPoints:    10,
		AngleGridPoints:       10,
	}
}

// OptionsFromYAML decodes an options document over DefaultOptions and
// validates the result.
func OptionsFromYAML(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		if errors.Is(err, ErrBadOptions) {
			return Options{}, err
		}
		return Options{}, fmt.Errorf("%w: %v", ErrBadOptions, err)
	}
	if err := opts.validate(); err != nil {
		return Options{}, err
	}

	return opts, nil
}

func (o Options) validate() error {
	if o.CenteringType != CenteringCentralSite && o.CenteringType != CenteringCentroid {
		return fmt.Errorf("%w: unknown centering_type %q", ErrBadOptions, o.CenteringType)
	}
	if o.MaximumDistanceFactor <= 1 {
		return fmt.Errorf("%w: maximum_distance_factor must exceed 1", ErrBadOptions)
	}
	if o.MinimumAngleFactor < 0 || o.MinimumAngleFactor >= 1 {
		return fmt.Errorf("%w: minimum_angle_factor must lie in [0, 1)", ErrBadOptions)
	}
	if o.DistanceGridPoints < 1 || o.AngleGridPoints < 1 {
		return fmt.Errorf("%w: grid axes need at least one point", ErrBadOptions)
	}
	if o.CSMTimeLimit < 0 {
		return fmt.Errorf("%w: csm_time_limit must be non-negative", ErrBadOptions)
	}
	if _, err := o.Strategy.Build(); err != nil {
		return err
	}

	return nil
}

// centering maps the yaml value onto the solver's enum; validate ran first.
func (o Options) centering() csm.Centering {
	if o.CenteringType == CenteringCentroid {
		return csm.CentroidCentering
	}

	return csm.CentralSiteCentering
}

// filter composes the configured site filters into one predicate.
func (o Options) filter() crystal.SiteFilter {
	filters := []crystal.SiteFilter{}
	if len(o.OnlySpecies) > 0 {
		filters = append(filters, crystal.OnlySpecies(o.OnlySpecies))
	}
	if len(o.ExcludedSpecies) > 0 {
		filters = append(filters, crystal.ExcludeSpecies(o.ExcludedSpecies))
	}
	if len(o.OnlyIndices) > 0 {
		filters = append(filters, crystal.OnlyIndices(o.OnlyIndices))
	}
	if o.OnlyCations {
		filters = append(filters, crystal.OnlyCations())
	}
	if len(filters) == 0 {
		return crystal.AllSites()
	}

	return crystal.And(filters...)
}
