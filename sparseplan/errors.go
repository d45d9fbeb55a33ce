package sparseplan

import (
	"github.com/pkg/errors"

	"go.viam.com/sparseplan/trajectory"
)

// Kinds of planner failure. Every error returned by the planner wraps exactly one of these and can
// be matched with errors.Is.
var (
	// ErrNotFound means an identifier is absent from the dense or sparse trajectory.
	ErrNotFound = errors.New("point not found")
	// ErrInvalidSamplingParameter means the sampling density leaves no stride between samples.
	ErrInvalidSamplingParameter = errors.New("invalid sampling parameter")
	// ErrMalformedOrdering means the graph's ordering links do not form a single chain over its points.
	ErrMalformedOrdering = errors.New("malformed sparse ordering")
	// ErrSizeMismatch means the solved joint points and the sparse points disagree in count.
	ErrSizeMismatch = errors.New("sparse solution size mismatch")
	// ErrWaypointNotInDenseTrajectory means a sparse point is missing from the dense trajectory.
	ErrWaypointNotInDenseTrajectory = errors.New("sparse point is not in the dense trajectory")
	// ErrInterpolationPrecondition means two joint poses could not be interpolated. Retrying cannot fix it.
	ErrInterpolationPrecondition = errors.New("interpolation precondition violated")
	// ErrGraphMutationFailure means the planning graph rejected an add, remove or modify.
	ErrGraphMutationFailure = errors.New("planning graph mutation failed")
	// ErrRetryExhausted means refinement did not converge within the attempt cap.
	ErrRetryExhausted = errors.New("sparse refinement did not converge")
	// ErrInvalidTrajectory means the points given to the planner do not form a valid trajectory.
	ErrInvalidTrajectory = errors.New("invalid trajectory")
)

// NewPointNotFoundError is returned when an edit references an unknown point.
func NewPointNotFoundError(id trajectory.ID) error {
	return errors.Wrapf(ErrNotFound, "point %s", id)
}

// NewIncompleteSolutionError is returned when a dense point has no solved joint point.
func NewIncompleteSolutionError(id trajectory.ID) error {
	return errors.Wrapf(ErrNotFound, "no joint solution for point %s", id)
}

// NewInvalidSamplingError is returned when sampling n points at density k is degenerate.
func NewInvalidSamplingError(k float64, n int) error {
	return errors.Wrapf(ErrInvalidSamplingParameter, "cannot sample %d points at density %v", n, k)
}

// NewMalformedOrderingError describes why the ordering could not be walked.
func NewMalformedOrderingError(reason string) error {
	return errors.Wrap(ErrMalformedOrdering, reason)
}

// NewSizeMismatchError is returned when the joint and Cartesian sparse sequences differ in length.
func NewSizeMismatchError(joints, points int) error {
	return errors.Wrapf(ErrSizeMismatch, "%d joint points for %d sparse points", joints, points)
}

// NewWaypointNotInDenseError is returned when a sparse point cannot be found in the dense trajectory.
func NewWaypointNotInDenseError(id trajectory.ID) error {
	return errors.Wrapf(ErrWaypointNotInDenseTrajectory, "point %s", id)
}

// NewInterpolationPreconditionError is returned when interpolating toward the dense position fails.
func NewInterpolationPreconditionError(pos int, cause error) error {
	return errors.Wrapf(ErrInterpolationPrecondition, "position %d: %v", pos, cause)
}

// NewGraphMutationError is returned when the graph rejects op on the point.
func NewGraphMutationError(op string, id trajectory.ID, cause error) error {
	return errors.Wrapf(ErrGraphMutationFailure, "%s %s: %v", op, id, cause)
}

// NewRetryExhaustedError is returned when refinement gives up.
func NewRetryExhaustedError(attempts int) error {
	return errors.Wrapf(ErrRetryExhausted, "gave up after %d promotions", attempts)
}

// NewDuplicatePointError is returned when a point's ID is already in the dense trajectory.
func NewDuplicatePointError(id trajectory.ID) error {
	return errors.Wrapf(ErrInvalidTrajectory, "duplicate point %s", id)
}
