package trajectory

import (
	"go.viam.com/sparseplan/kinematics"
	"go.viam.com/sparseplan/referenceframe"
)

// JointPoint is a solved joint configuration for the trajectory point with the same ID.
type JointPoint struct {
	ID     ID
	Inputs []referenceframe.Input
}

// NewJointPoint returns a joint point for the given configuration.
func NewJointPoint(id ID, inputs []referenceframe.Input) JointPoint {
	return JointPoint{ID: id, Inputs: inputs}
}

// NominalJointPose returns the stored configuration, checking it matches the model's DoF.
func (jp JointPoint) NominalJointPose(_ []referenceframe.Input, model kinematics.Model) ([]referenceframe.Input, error) {
	if len(jp.Inputs) != model.DoF() {
		return nil, referenceframe.NewIncorrectDoFError(len(jp.Inputs), model.DoF())
	}
	return jp.Inputs, nil
}

// Floats returns the configuration as raw floats.
func (jp JointPoint) Floats() []float64 {
	return referenceframe.InputsToFloats(jp.Inputs)
}
