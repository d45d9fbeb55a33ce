package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/optimize"

	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/spatialmath"
	"go.viam.com/sparseplan/utils"
)

// Weight of the seed distance term in the IK objective. Small enough that it only breaks ties
// between configurations reaching the goal equally well.
const seedRegularization = 1e-6

// PlanarArm is a serial chain of revolute joints rotating about +Z, with links along the local X
// axis. The end effector yaw is the sum of the joint angles.
type PlanarArm struct {
	name         string
	links        []float64
	limits       []referenceframe.Limit
	opts         SolverOptions
	headingScale float64
}

// NewPlanarArm returns a planar arm with the given link lengths (mm) and joint limits (radians).
func NewPlanarArm(name string, links []float64, limits []referenceframe.Limit, opts SolverOptions) (*PlanarArm, error) {
	if len(links) != len(limits) {
		return nil, referenceframe.NewIncorrectDoFError(len(limits), len(links))
	}
	reach := 0.
	for _, l := range links {
		reach += l
	}
	return &PlanarArm{
		name:   name,
		links:  links,
		limits: limits,
		opts:   opts,
		// Weighs a radian of heading error like a reach-length of position error.
		headingScale: math.Max(reach, 1),
	}, nil
}

// Name returns the name of the arm.
func (pa *PlanarArm) Name() string {
	return pa.name
}

// DoF returns the number of joints.
func (pa *PlanarArm) DoF() int {
	return len(pa.links)
}

// Limits returns the joint limits.
func (pa *PlanarArm) Limits() []referenceframe.Limit {
	return pa.limits
}

func (pa *PlanarArm) forward(q []float64) (float64, float64, float64) {
	var x, y, heading float64
	for i, l := range pa.links {
		heading += q[i]
		x += l * math.Cos(heading)
		y += l * math.Sin(heading)
	}
	return x, y, heading
}

// Transform returns the end effector pose for the given joint angles.
func (pa *PlanarArm) Transform(inputs []referenceframe.Input) (spatialmath.Pose, error) {
	if len(inputs) != pa.DoF() {
		return nil, referenceframe.NewIncorrectDoFError(len(inputs), pa.DoF())
	}
	x, y, heading := pa.forward(referenceframe.InputsToFloats(inputs))
	return spatialmath.NewPose(r3.Vector{X: x, Y: y}, spatialmath.NewYawOrientation(heading)), nil
}

// Solve runs Nelder-Mead from the seed, so the answer is the local solution nearest the seed.
func (pa *PlanarArm) Solve(goal Goal, seed []referenceframe.Input) ([]referenceframe.Input, error) {
	if len(seed) != pa.DoF() {
		return nil, referenceframe.NewIncorrectDoFError(len(seed), pa.DoF())
	}
	target := goal.Pose.Point()
	if math.Abs(target.Z) > pa.opts.GoalThreshold {
		return nil, NewIKError("goal is out of the arm plane")
	}
	targetHeading := spatialmath.Yaw(goal.Pose.Orientation())
	seedFloats := referenceframe.InputsToFloats(seed)

	problem := optimize.Problem{
		Func: func(q []float64) float64 {
			x, y, heading := pa.forward(q)
			cost := utils.Square(x-target.X) + utils.Square(y-target.Y)
			if !goal.PositionOnly {
				cost += utils.Square(pa.headingScale * utils.WrapAngle(heading-targetHeading))
			}
			for i, v := range q {
				cost += seedRegularization * utils.Square(v-seedFloats[i])
			}
			return cost
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: pa.opts.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-12,
			Iterations: 50,
		},
	}

	result, err := optimize.Minimize(problem, seedFloats, settings, &optimize.NelderMead{})
	if result == nil {
		if err == nil {
			err = NewIKError("optimizer returned no result")
		}
		return nil, err
	}

	solution := make([]referenceframe.Input, len(result.X))
	for i, v := range result.X {
		// Revolute joints are equivalent modulo 2pi; keep the representative closest to the seed.
		solution[i] = referenceframe.Input{Value: seedFloats[i] + utils.WrapAngle(v-seedFloats[i])}
	}
	if err := checkSolution(pa, pa.opts, goal, solution); err != nil {
		return nil, err
	}
	return solution, nil
}
