package planninggraph

const (
	// Number of seeds used to look for distinct joint solutions of each point.
	defaultSolutionsPerPoint = 8

	// If the distance between two solutions is less than this, consider them identical.
	defaultInputIdentDist = 1e-4
)

// Options tunes how joint solutions are generated for each point.
type Options struct {
	SolutionsPerPoint int     `json:"solutions_per_point"`
	InputIdentDist    float64 `json:"input_ident_dist"`
	// The random seed used to sample IK seeds. Identical inputs give identical graphs.
	RandomSeed int64 `json:"rseed"`
}

// NewDefaultOptions returns the default options.
func NewDefaultOptions() Options {
	return Options{
		SolutionsPerPoint: defaultSolutionsPerPoint,
		InputIdentDist:    defaultInputIdentDist,
	}
}

func (o Options) withDefaults() Options {
	if o.SolutionsPerPoint <= 0 {
		o.SolutionsPerPoint = defaultSolutionsPerPoint
	}
	if o.InputIdentDist <= 0 {
		o.InputIdentDist = defaultInputIdentDist
	}
	return o
}
