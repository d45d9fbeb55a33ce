package sparseplan

import (
	"context"

	"go.viam.com/sparseplan/kinematics"
	"go.viam.com/sparseplan/planninggraph"
	"go.viam.com/sparseplan/trajectory"
)

// Graph owns the sparse points and solves for the cheapest joint path through them.
// *planninggraph.PlanningGraph is the production implementation.
type Graph interface {
	Model() kinematics.Model

	// InsertGraph replaces the graph's contents with points, in order.
	InsertGraph(points []trajectory.Point) error
	// AddTrajectory inserts pt between two adjacent points. A NilID marks a chain end.
	AddTrajectory(pt trajectory.Point, prevID, nextID trajectory.ID) error
	RemoveTrajectory(pt trajectory.Point) error
	// ModifyTrajectory replaces the point sharing pt's ID.
	ModifyTrajectory(pt trajectory.Point) error

	// ShortestPath returns the cost and joint points of the cheapest path, in chain order.
	ShortestPath(ctx context.Context) (float64, []trajectory.JointPoint, error)
	// CartesianMap returns a snapshot of the ordering links.
	CartesianMap() planninggraph.CartesianMap
}

var _ Graph = (*planninggraph.PlanningGraph)(nil)
