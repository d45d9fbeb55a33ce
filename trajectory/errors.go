package trajectory

import (
	"github.com/pkg/errors"
)

// ErrInfeasible is wrapped by errors meaning a point has no acceptable joint configuration.
var ErrInfeasible = errors.New("no feasible joint pose")

// NewInfeasibleError wraps ErrInfeasible with the point and the underlying cause.
func NewInfeasibleError(id ID, cause error) error {
	if id == NilID {
		return errors.Wrapf(ErrInfeasible, "%v", cause)
	}
	return errors.Wrapf(ErrInfeasible, "point %s: %v", id, cause)
}

// NewDuplicateIDError is returned when two points share an ID.
func NewDuplicateIDError(id ID) error {
	return errors.Errorf("duplicate trajectory point id %s", id)
}

// NewUnknownPointTypeError is returned for point configs with an unsupported type.
func NewUnknownPointTypeError(typ string) error {
	return errors.Errorf("unknown trajectory point type %q", typ)
}

// NewSeedDistanceError is returned when the nearest configuration is too far from the seed.
func NewSeedDistanceError(dist, limit float64) error {
	return errors.Errorf("nearest configuration is %.4f from seed, tolerance is %.4f", dist, limit)
}
