package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Orientation is an interface used to express the orientation of a rigid object in 3D Euclidean space.
type Orientation interface {
	Quaternion() quat.Number
	AxisAngles() *R4AA
}

type quaternion quat.Number

// Quaternion returns the orientation as a unit quaternion.
func (q *quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

// AxisAngles returns the orientation in axis angle representation.
func (q *quaternion) AxisAngles() *R4AA {
	return QuatToR4AA(q.Quaternion())
}

// NewZeroOrientation returns an orientatation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &quaternion{1, 0, 0, 0}
}

// NewOrientationFromQuaternion wraps a quaternion, normalizing it.
func NewOrientationFromQuaternion(q quat.Number) Orientation {
	norm := quat.Abs(q)
	if norm == 0 {
		return NewZeroOrientation()
	}
	n := quaternion(quat.Scale(1/norm, q))
	return &n
}

// NewYawOrientation returns a rotation of theta radians about +Z.
func NewYawOrientation(theta float64) Orientation {
	return &R4AA{Theta: theta, RZ: 1}
}

// Yaw returns the rotation about +Z of the orientation in radians, in (-pi, pi].
func Yaw(o Orientation) float64 {
	q := o.Quaternion()
	return math.Atan2(2*(q.Real*q.Kmag+q.Imag*q.Jmag), 1-2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag))
}

// OrientationAlmostEqual will return a bool describing whether 2 poses have approximately the same orientation.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// OrientationBetween returns the orientation representing the difference between the two given Orientations.
func OrientationBetween(o1, o2 Orientation) Orientation {
	q := quaternion(quat.Mul(o2.Quaternion(), quat.Conj(o1.Quaternion())))
	return &q
}

// AngleBetween returns the rotation angle, in radians, needed to go from o1 to o2.
func AngleBetween(o1, o2 Orientation) float64 {
	q := OrientationBetween(o1, o2).Quaternion()
	return 2 * math.Acos(math.Min(1, math.Abs(q.Real)))
}

// QuaternionAlmostEqual is an equality test for two quaternions. q and -q represent the same rotation.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	same := math.Abs(a.Real-b.Real) < tol && math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol && math.Abs(a.Kmag-b.Kmag) < tol
	flipped := math.Abs(a.Real+b.Real) < tol && math.Abs(a.Imag+b.Imag) < tol &&
		math.Abs(a.Jmag+b.Jmag) < tol && math.Abs(a.Kmag+b.Kmag) < tol
	return same || flipped
}

// rotate rotates v by the unit quaternion q.
func rotate(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}
