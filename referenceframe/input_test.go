package referenceframe

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestInterpolateInputs(t *testing.T) {
	from := FloatsToInputs([]float64{0, 10, -4})
	to := FloatsToInputs([]float64{2, 20, 4})

	mid, err := InterpolateInputs(from, to, 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, InputsToFloats(mid), test.ShouldResemble, []float64{1, 15, 0})

	start, err := InterpolateInputs(from, to, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, InputsAlmostEqual(start, from, 1e-12), test.ShouldBeTrue)

	end, err := InterpolateInputs(from, to, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, InputsToFloats(end), test.ShouldResemble, InputsToFloats(to))

	_, err = InterpolateInputs(from, to[:2], 0.5)
	test.That(t, err, test.ShouldBeError, NewIncorrectDoFError(2, 3))

	_, err = InterpolateInputs(from, to, 1.5)
	test.That(t, err, test.ShouldBeError, NewInterpolationFractionError(1.5))

	_, err = InterpolateInputs(from, to, -0.1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestInputsL2Distance(t *testing.T) {
	a := FloatsToInputs([]float64{0, 0})
	b := FloatsToInputs([]float64{3, 4})
	test.That(t, InputsL2Distance(a, b), test.ShouldAlmostEqual, 5.)
	test.That(t, math.IsInf(InputsL2Distance(a, b[:1]), 1), test.ShouldBeTrue)
}

func TestLimits(t *testing.T) {
	limits := []Limit{{-1, 1}, {0, 10}}

	test.That(t, AreInputsValid(limits, FloatsToInputs([]float64{0, 5})), test.ShouldBeNil)
	test.That(t, AreInputsValid(limits, FloatsToInputs([]float64{0})), test.ShouldBeError, NewIncorrectDoFError(1, 2))
	test.That(t, AreInputsValid(limits, FloatsToInputs([]float64{0, 11})), test.ShouldBeError,
		NewOutOfLimitsError(1, 11, limits[1]))

	clamped := ClampInputs(limits, FloatsToInputs([]float64{-3, 12}))
	test.That(t, InputsToFloats(clamped), test.ShouldResemble, []float64{-1, 10})
	test.That(t, InputsToFloats(MidpointInputs(limits)), test.ShouldResemble, []float64{0, 5})

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		test.That(t, AreInputsValid(limits, RandomInputs(limits, r)), test.ShouldBeNil)
	}
}
