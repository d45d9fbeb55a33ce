package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a 6dof pose: a point in mm and an orientation.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type pose struct {
	point       r3.Vector
	orientation quat.Number
}

// NewPose returns a pose at the given point and orientation. A nil orientation is the identity.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		o = NewZeroOrientation()
	}
	return &pose{point: p, orientation: NewOrientationFromQuaternion(o.Quaternion()).Quaternion()}
}

// NewPoseFromPoint returns a pose at the given point with no rotation.
func NewPoseFromPoint(p r3.Vector) Pose {
	return NewPose(p, nil)
}

// NewZeroPose returns the identity pose.
func NewZeroPose() Pose {
	return NewPose(r3.Vector{}, nil)
}

func (p *pose) Point() r3.Vector {
	return p.point
}

func (p *pose) Orientation() Orientation {
	q := quaternion(p.orientation)
	return &q
}

func (p *pose) String() string {
	return fmt.Sprintf("{X:%.3f Y:%.3f Z:%.3f yaw:%.3f}", p.point.X, p.point.Y, p.point.Z, Yaw(p.Orientation()))
}

// Compose returns the pose b expressed in the frame whose pose is a.
func Compose(a, b Pose) Pose {
	qa := a.Orientation().Quaternion()
	pt := a.Point().Add(rotate(qa, b.Point()))
	return NewPose(pt, NewOrientationFromQuaternion(quat.Mul(qa, b.Orientation().Quaternion())))
}

// PoseDelta returns the translation distance and the rotation angle between two poses.
func PoseDelta(a, b Pose) (float64, float64) {
	return a.Point().Distance(b.Point()), AngleBetween(a.Orientation(), b.Orientation())
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-8)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same,
// with the point distance bounded by epsilon.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return PoseAlmostCoincidentEps(a, b, epsilon) && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}

// PoseAlmostCoincidentEps will return a bool describing whether 2 poses approximately are at the
// same 3D coordinate location, ignoring orientation.
func PoseAlmostCoincidentEps(a, b Pose, epsilon float64) bool {
	return a.Point().ApproxEqual(b.Point()) || a.Point().Distance(b.Point()) <= epsilon
}
