package planninggraph

import (
	"github.com/pkg/errors"

	"go.viam.com/sparseplan/trajectory"
)

// NewPointNotFoundError is returned when an ID is not in the graph.
func NewPointNotFoundError(id trajectory.ID) error {
	return errors.Errorf("point %s is not in the planning graph", id)
}

// NewDuplicatePointError is returned when adding a point whose ID is already in the graph.
func NewDuplicatePointError(id trajectory.ID) error {
	return errors.Errorf("point %s is already in the planning graph", id)
}

// NewNotAdjacentError is returned when the neighbours given for an added point are not adjacent.
func NewNotAdjacentError(prevID, nextID trajectory.ID) error {
	return errors.Errorf("points %s and %s are not adjacent in the planning graph", prevID, nextID)
}

// NewLastPointError is returned when removing the only point of a graph.
func NewLastPointError(id trajectory.ID) error {
	return errors.Errorf("cannot remove %s, the last point of the planning graph", id)
}

// NewNoSolutionsError is returned when no joint solution was found for a point.
func NewNoSolutionsError(id trajectory.ID, cause error) error {
	if cause == nil {
		return errors.Errorf("no joint solutions for point %s", id)
	}
	return errors.Wrapf(cause, "no joint solutions for point %s", id)
}

// NewBrokenChainError is returned when the ordering links do not form a single chain.
func NewBrokenChainError(found, expected int) error {
	return errors.Errorf("planning graph links are broken: walked %d of %d points", found, expected)
}

// NewChainHeadError is returned when the number of points without a predecessor is not one.
func NewChainHeadError(heads int) error {
	return errors.Errorf("planning graph has %d chain heads, expected 1", heads)
}

// NewEmptyGraphError is returned when solving or inserting with no points.
func NewEmptyGraphError() error {
	return errors.New("planning graph has no points")
}

// NewNoPathError is returned when no path connects the first and last points.
func NewNoPathError() error {
	return errors.New("no path through the planning graph")
}
