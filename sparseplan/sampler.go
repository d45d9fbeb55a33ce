package sparseplan

import (
	"math"

	"go.viam.com/sparseplan/trajectory"
)

// sampleTrajectory returns the dense positions of every stride-th point, stride being
// floor(len/k), plus the last point. A density that leaves no stride is rejected.
func sampleTrajectory(k float64, dense []trajectory.Point) ([]int, error) {
	n := len(dense)
	if math.IsNaN(k) || k <= 0 || k >= float64(n) {
		return nil, NewInvalidSamplingError(k, n)
	}
	stride := int(math.Floor(float64(n) / k))
	if stride <= 0 {
		return nil, NewInvalidSamplingError(k, n)
	}

	positions := make([]int, 0, n/stride+2)
	for i := 0; i < n; i += stride {
		positions = append(positions, i)
	}
	if last := positions[len(positions)-1]; dense[last].ID() != dense[n-1].ID() {
		positions = append(positions, n-1)
	}
	return positions, nil
}
