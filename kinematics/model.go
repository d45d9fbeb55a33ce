// Package kinematics defines the kinematic models the planner queries for forward kinematics and
// for the nearest feasible joint configuration to a seed.
package kinematics

import (
	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/spatialmath"
)

// Goal is a Cartesian target for Solve.
type Goal struct {
	Pose spatialmath.Pose
	// PositionOnly ignores the orientation of Pose.
	PositionOnly bool
}

// Model is a kinematic chain with a single end effector.
type Model interface {
	Name() string
	DoF() int
	Limits() []referenceframe.Limit

	// Transform returns the end effector pose for the given joint inputs.
	Transform(inputs []referenceframe.Input) (spatialmath.Pose, error)

	// Solve returns the feasible joint configuration reaching goal that is nearest to seed, however
	// far from seed that is. An error wrapping ErrIKSolve is returned if no configuration is found.
	Solve(goal Goal, seed []referenceframe.Input) ([]referenceframe.Input, error)
}

// SolverOptions tunes how a model decides whether a configuration is an acceptable answer to Solve.
type SolverOptions struct {
	// Max distance, in mm, between the reached and requested position.
	GoalThreshold float64 `json:"goal_threshold"`

	// Max rotation, in radians, between the reached and requested orientation.
	OrientationThreshold float64 `json:"orientation_threshold"`

	// Max objective evaluations for iterative solvers.
	MaxIterations int `json:"max_iterations"`
}

const (
	defaultGoalThreshold        = 0.1
	defaultOrientationThreshold = 1e-3
	defaultMaxIterations        = 2000
)

// NewDefaultSolverOptions returns the default solver options.
func NewDefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GoalThreshold:        defaultGoalThreshold,
		OrientationThreshold: defaultOrientationThreshold,
		MaxIterations:        defaultMaxIterations,
	}
}

// checkSolution validates a candidate answer to Solve against the model limits and the options.
func checkSolution(m Model, opts SolverOptions, goal Goal, solution []referenceframe.Input) error {
	if err := referenceframe.AreInputsValid(m.Limits(), solution); err != nil {
		return NewIKError(err.Error())
	}
	reached, err := m.Transform(solution)
	if err != nil {
		return err
	}
	dist, angle := spatialmath.PoseDelta(reached, goal.Pose)
	if dist > opts.GoalThreshold {
		return NewIKError("goal position not reached")
	}
	if !goal.PositionOnly && angle > opts.OrientationThreshold {
		return NewIKError("goal orientation not reached")
	}
	return nil
}
