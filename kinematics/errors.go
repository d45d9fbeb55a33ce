package kinematics

import "github.com/pkg/errors"

// ErrIKSolve is wrapped by every error meaning a goal has no acceptable configuration.
var ErrIKSolve = errors.New("unable to solve for position")

// NewIKError returns an error wrapping ErrIKSolve with a reason.
func NewIKError(reason string) error {
	return errors.Wrap(ErrIKSolve, reason)
}
