package referenceframe

import (
	"math/rand"

	"go.viam.com/sparseplan/utils"
)

// Limit represents the limits of motion for a joint input.
type Limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Range returns the span of the limit.
func (l Limit) Range() float64 {
	return l.Max - l.Min
}

// Contains reports whether v is within the limit.
func (l Limit) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// AreInputsValid checks whether the inputs are the right length and within the limits.
func AreInputsValid(limits []Limit, inputs []Input) error {
	if len(limits) != len(inputs) {
		return NewIncorrectDoFError(len(inputs), len(limits))
	}
	for i, l := range limits {
		if !l.Contains(inputs[i].Value) {
			return NewOutOfLimitsError(i, inputs[i].Value, l)
		}
	}
	return nil
}

// ClampInputs returns a copy of inputs with each value limited to its range.
func ClampInputs(limits []Limit, inputs []Input) []Input {
	out := make([]Input, len(inputs))
	for i, in := range inputs {
		if i < len(limits) {
			out[i] = Input{utils.Clamp(in.Value, limits[i].Min, limits[i].Max)}
		} else {
			out[i] = in
		}
	}
	return out
}

// RandomInputs returns uniformly sampled inputs within the limits.
func RandomInputs(limits []Limit, r *rand.Rand) []Input {
	out := make([]Input, len(limits))
	for i, l := range limits {
		out[i] = Input{l.Min + r.Float64()*l.Range()}
	}
	return out
}

// MidpointInputs returns the center of each limit.
func MidpointInputs(limits []Limit) []Input {
	out := make([]Input, len(limits))
	for i, l := range limits {
		out[i] = Input{(l.Min + l.Max) / 2}
	}
	return out
}
