// Package trajectory defines the points that make up a Cartesian trajectory and the joint points
// solved for them.
package trajectory

import (
	"fmt"

	"github.com/google/uuid"

	"go.viam.com/sparseplan/kinematics"
	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/spatialmath"
)

// ID identifies a trajectory point.
type ID = uuid.UUID

// NilID is the reserved identifier meaning "no point", e.g. no predecessor or successor.
var NilID = uuid.Nil

// idNamespace scopes IDs derived from human readable names.
var idNamespace = uuid.MustParse("8d3c2b0e-5d7a-4f51-9a0c-1f1e6f4b2a77")

// NewID returns a fresh random identifier.
func NewID() ID {
	return uuid.New()
}

// IDFromName parses name as a UUID, or derives a stable identifier from it if it is not one.
func IDFromName(name string) ID {
	if id, err := uuid.Parse(name); err == nil {
		return id
	}
	return uuid.NewSHA1(idNamespace, []byte(name))
}

// Point is a Cartesian waypoint. Variants differ in how they constrain the robot, but the planner
// only ever asks them for joint configurations.
type Point interface {
	ID() ID
	SetID(id ID)

	// ClosestJointPose returns the feasible joint configuration satisfying the point that is nearest
	// to seed. The error wraps ErrInfeasible when there is none, or when the nearest one is farther
	// from seed than the point's tolerance.
	ClosestJointPose(seed []referenceframe.Input, model kinematics.Model) ([]referenceframe.Input, error)

	// NominalJointPose returns a joint configuration satisfying the point, solved from seed with no
	// bound on how far from seed it may be.
	NominalJointPose(seed []referenceframe.Input, model kinematics.Model) ([]referenceframe.Input, error)

	// Tolerance is the max joint-space distance between a seed and the pose returned by
	// ClosestJointPose. Non-positive means unbounded.
	Tolerance() float64
	SetTolerance(tolerance float64)
}

type base struct {
	id        ID
	tolerance float64
}

func (b *base) Tolerance() float64 {
	return b.tolerance
}

func (b *base) SetTolerance(tolerance float64) {
	b.tolerance = tolerance
}

// near checks that solution is within the tolerance of seed.
func (b *base) near(seed, solution []referenceframe.Input) error {
	if b.tolerance <= 0 {
		return nil
	}
	if d := referenceframe.InputsL2Distance(seed, solution); d > b.tolerance {
		return NewInfeasibleError(b.id, NewSeedDistanceError(d, b.tolerance))
	}
	return nil
}

func (b *base) ID() ID {
	return b.id
}

func (b *base) SetID(id ID) {
	b.id = id
}

// CartPoint fully constrains the end effector pose.
type CartPoint struct {
	base
	pose spatialmath.Pose
}

// NewCartPoint returns a fully constrained point with a fresh ID.
func NewCartPoint(pose spatialmath.Pose) *CartPoint {
	return &CartPoint{base: base{id: NewID()}, pose: pose}
}

// Pose returns the target pose.
func (p *CartPoint) Pose() spatialmath.Pose {
	return p.pose
}

// ClosestJointPose solves for the point's pose starting at seed.
func (p *CartPoint) ClosestJointPose(seed []referenceframe.Input, model kinematics.Model) ([]referenceframe.Input, error) {
	solution, err := solve(model, kinematics.Goal{Pose: p.pose}, seed, p.id)
	if err != nil {
		return nil, err
	}
	if err := p.near(seed, solution); err != nil {
		return nil, err
	}
	return solution, nil
}

// NominalJointPose solves for the point's pose starting at seed.
func (p *CartPoint) NominalJointPose(seed []referenceframe.Input, model kinematics.Model) ([]referenceframe.Input, error) {
	return solveUnbounded(model, kinematics.Goal{Pose: p.pose}, seed, p.id)
}

func (p *CartPoint) String() string {
	return fmt.Sprintf("cartesian %s %v", p.id, p.pose)
}

// AxialSymmetricPoint constrains the end effector position and leaves its orientation free.
type AxialSymmetricPoint struct {
	base
	pose spatialmath.Pose
}

// NewAxialSymmetricPoint returns a position-only point with a fresh ID.
func NewAxialSymmetricPoint(pose spatialmath.Pose) *AxialSymmetricPoint {
	return &AxialSymmetricPoint{base: base{id: NewID()}, pose: pose}
}

// Pose returns the nominal target pose; only its point is enforced.
func (p *AxialSymmetricPoint) Pose() spatialmath.Pose {
	return p.pose
}

// ClosestJointPose solves for the point's position starting at seed.
func (p *AxialSymmetricPoint) ClosestJointPose(
	seed []referenceframe.Input,
	model kinematics.Model,
) ([]referenceframe.Input, error) {
	solution, err := solve(model, kinematics.Goal{Pose: p.pose, PositionOnly: true}, seed, p.id)
	if err != nil {
		return nil, err
	}
	if err := p.near(seed, solution); err != nil {
		return nil, err
	}
	return solution, nil
}

// NominalJointPose solves for the point's position starting at seed.
func (p *AxialSymmetricPoint) NominalJointPose(
	seed []referenceframe.Input,
	model kinematics.Model,
) ([]referenceframe.Input, error) {
	return solveUnbounded(model, kinematics.Goal{Pose: p.pose, PositionOnly: true}, seed, p.id)
}

func (p *AxialSymmetricPoint) String() string {
	return fmt.Sprintf("axial %s %v", p.id, p.pose)
}

// JointWaypoint pins the robot to a fixed joint configuration.
type JointWaypoint struct {
	base
	inputs []referenceframe.Input
}

// NewJointWaypoint returns a fixed joint point with a fresh ID.
func NewJointWaypoint(inputs []referenceframe.Input, tolerance float64) *JointWaypoint {
	return &JointWaypoint{base: base{id: NewID(), tolerance: tolerance}, inputs: inputs}
}

// Inputs returns the pinned configuration.
func (p *JointWaypoint) Inputs() []referenceframe.Input {
	return p.inputs
}

// ClosestJointPose returns the pinned configuration if it is valid and near seed.
func (p *JointWaypoint) ClosestJointPose(seed []referenceframe.Input, model kinematics.Model) ([]referenceframe.Input, error) {
	if err := referenceframe.AreInputsValid(model.Limits(), p.inputs); err != nil {
		return nil, NewInfeasibleError(p.id, err)
	}
	if err := p.near(seed, p.inputs); err != nil {
		return nil, err
	}
	return p.inputs, nil
}

// NominalJointPose returns the pinned configuration.
func (p *JointWaypoint) NominalJointPose(_ []referenceframe.Input, model kinematics.Model) ([]referenceframe.Input, error) {
	if err := referenceframe.AreInputsValid(model.Limits(), p.inputs); err != nil {
		return nil, NewInfeasibleError(p.id, err)
	}
	return p.inputs, nil
}

func (p *JointWaypoint) String() string {
	return fmt.Sprintf("joint %s %v", p.id, referenceframe.InputsToFloats(p.inputs))
}

func solve(model kinematics.Model, goal kinematics.Goal, seed []referenceframe.Input, id ID) ([]referenceframe.Input, error) {
	solution, err := model.Solve(goal, seed)
	if err != nil {
		return nil, NewInfeasibleError(id, err)
	}
	return solution, nil
}

// solveUnbounded retries from the middle of the joint ranges when solving from the seed fails.
func solveUnbounded(model kinematics.Model, goal kinematics.Goal, seed []referenceframe.Input, id ID) ([]referenceframe.Input, error) {
	solution, err := model.Solve(goal, seed)
	if err == nil {
		return solution, nil
	}
	mid := referenceframe.MidpointInputs(model.Limits())
	if solution, midErr := model.Solve(goal, mid); midErr == nil {
		return solution, nil
	}
	return nil, NewInfeasibleError(id, err)
}
