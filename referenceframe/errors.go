package referenceframe

import "github.com/pkg/errors"

// NewIncorrectDoFError returns an error indicating that the length of an input slice does not match the DoF.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of dof mismatch: given %d, expected %d", actual, expected)
}

// NewInterpolationFractionError returns an error indicating an interpolation fraction outside [0, 1].
func NewInterpolationFractionError(by float64) error {
	return errors.Errorf("interpolation fraction %v is outside [0, 1]", by)
}

// NewOutOfLimitsError returns an error indicating that a joint input is outside its limits.
func NewOutOfLimitsError(joint int, value float64, limit Limit) error {
	return errors.Errorf("input %d value %.5f outside of limits [%.5f, %.5f]", joint, value, limit.Min, limit.Max)
}
