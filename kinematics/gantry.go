package kinematics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/spatialmath"
)

// Gantry is a three axis Cartesian robot whose inputs are the X, Y and Z positions of the end
// effector in mm. It cannot rotate its end effector.
type Gantry struct {
	name   string
	limits []referenceframe.Limit
	opts   SolverOptions
}

// NewGantry returns a gantry with the given X, Y and Z limits.
func NewGantry(name string, x, y, z referenceframe.Limit, opts SolverOptions) *Gantry {
	return &Gantry{name: name, limits: []referenceframe.Limit{x, y, z}, opts: opts}
}

// Name returns the name of the gantry.
func (g *Gantry) Name() string {
	return g.name
}

// DoF is always 3.
func (g *Gantry) DoF() int {
	return len(g.limits)
}

// Limits returns the axis limits.
func (g *Gantry) Limits() []referenceframe.Limit {
	return g.limits
}

// Transform returns the end effector pose for the given axis positions.
func (g *Gantry) Transform(inputs []referenceframe.Input) (spatialmath.Pose, error) {
	if len(inputs) != g.DoF() {
		return nil, referenceframe.NewIncorrectDoFError(len(inputs), g.DoF())
	}
	return spatialmath.NewPoseFromPoint(r3.Vector{X: inputs[0].Value, Y: inputs[1].Value, Z: inputs[2].Value}), nil
}

// Solve has exactly one candidate, the goal point itself.
func (g *Gantry) Solve(goal Goal, seed []referenceframe.Input) ([]referenceframe.Input, error) {
	if len(seed) != g.DoF() {
		return nil, referenceframe.NewIncorrectDoFError(len(seed), g.DoF())
	}
	pt := goal.Pose.Point()
	solution := []referenceframe.Input{{Value: pt.X}, {Value: pt.Y}, {Value: pt.Z}}
	if err := checkSolution(g, g.opts, goal, solution); err != nil {
		return nil, err
	}
	return solution, nil
}
