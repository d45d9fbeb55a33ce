package referenceframe

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Input wraps the input to a mutable frame, e.g. a joint angle or a gantry position.
//   - revolute inputs should be in radians.
//   - prismatic inputs should be in mm.
type Input struct {
	Value float64
}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(floats []float64) []Input {
	inputs := make([]Input, len(floats))
	for i, f := range floats {
		inputs[i] = Input{f}
	}
	return inputs
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	floats := make([]float64, len(inputs))
	for i, f := range inputs {
		floats[i] = f.Value
	}
	return floats
}

// InterpolateInputs will return a set of inputs that are the specified fraction between the two given sets of
// inputs. For example, setting by to 0.5 will return the inputs halfway between the from/to values, and 0.25 would
// return one quarter of the way from "from" to "to". The two sets must have the same length and by must be in [0, 1].
func InterpolateInputs(from, to []Input, by float64) ([]Input, error) {
	if len(from) != len(to) {
		return nil, NewIncorrectDoFError(len(to), len(from))
	}
	if by < 0 || by > 1 || math.IsNaN(by) {
		return nil, NewInterpolationFractionError(by)
	}
	newVals := make([]Input, len(from))
	for i, j1 := range from {
		// Walk back from the end point so that by == 1 lands on it exactly.
		newVals[i] = Input{to[i].Value - (to[i].Value-j1.Value)*(1-by)}
	}
	return newVals, nil
}

// InputsL2Distance returns the two-norm between two Input sets.
func InputsL2Distance(from, to []Input) float64 {
	if len(from) != len(to) {
		return math.Inf(1)
	}
	diff := make([]float64, 0, len(from))
	for i, f := range from {
		diff = append(diff, f.Value-to[i].Value)
	}
	// 2 is the L value returning a standard L2 Normalization
	return floats.Norm(diff, 2)
}

// InputsAlmostEqual returns whether every component of the two sets differs by at most epsilon.
func InputsAlmostEqual(a, b []Input, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	return floats.EqualApprox(InputsToFloats(a), InputsToFloats(b), epsilon)
}
