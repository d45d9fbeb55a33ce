package sparseplan

import (
	"math"
	"runtime"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/sparseplan/utils"
)

// default values for planning options.
const (
	// Target number of sparse points sampled from the dense trajectory.
	defaultSampling = 10.

	// Number of promotions allowed before refinement gives up.
	defaultMaxReplanningAttempts = 100
)

var defaultNumThreads = utils.MinInt(runtime.NumCPU()/2, 10)

func init() {
	defaultNumThreads = utils.GetenvInt("SPARSEPLAN_NUM_THREADS", defaultNumThreads)
}

// Options are the parameters of a SparsePlanner.
type Options struct {
	// Target sparse density: the dense trajectory is sampled every floor(len/Sampling) points.
	Sampling float64 `json:"sampling"`

	// Number of promotions allowed within one operation before it fails.
	MaxReplanningAttempts int `json:"max_replanning_attempts"`

	// Number of segments validated concurrently. Values below 2 validate sequentially.
	NumThreads int `json:"num_threads"`
}

// NewDefaultOptions returns the default options.
func NewDefaultOptions() *Options {
	return &Options{
		Sampling:              defaultSampling,
		MaxReplanningAttempts: defaultMaxReplanningAttempts,
		NumThreads:            defaultNumThreads,
	}
}

// NewOptionsFromExtra returns default options updated by the fields present in extra, keyed by
// their json names.
func NewOptionsFromExtra(extra map[string]interface{}) (*Options, error) {
	opt := NewDefaultOptions()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           opt,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(extra); err != nil {
		return nil, errors.Wrap(err, "cannot decode sparse planner options")
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return opt, nil
}

// Validate checks the options are usable.
func (o *Options) Validate() error {
	if o.Sampling <= 0 || math.IsNaN(o.Sampling) || math.IsInf(o.Sampling, 0) {
		return errors.Wrapf(ErrInvalidSamplingParameter, "sampling must be positive, got %v", o.Sampling)
	}
	if o.MaxReplanningAttempts < 0 {
		return errors.Errorf("max_replanning_attempts must not be negative, got %d", o.MaxReplanningAttempts)
	}
	return nil
}
