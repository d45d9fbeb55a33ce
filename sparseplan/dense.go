package sparseplan

import (
	"go.viam.com/sparseplan/trajectory"
)

// denseTrajectory owns the ordered dense points. The index map is rebuilt after every mutation so
// lookups by ID never go stale.
type denseTrajectory struct {
	points []trajectory.Point
	index  map[trajectory.ID]int
}

func newDenseTrajectory(points []trajectory.Point) (*denseTrajectory, error) {
	dt := &denseTrajectory{points: append([]trajectory.Point(nil), points...)}
	dt.reindex()
	if len(dt.index) != len(dt.points) {
		seen := make(map[trajectory.ID]struct{}, len(points))
		for _, pt := range points {
			if _, ok := seen[pt.ID()]; ok {
				return nil, NewDuplicatePointError(pt.ID())
			}
			seen[pt.ID()] = struct{}{}
		}
	}
	return dt, nil
}

func (dt *denseTrajectory) reindex() {
	dt.index = make(map[trajectory.ID]int, len(dt.points))
	for i, pt := range dt.points {
		dt.index[pt.ID()] = i
	}
}

func (dt *denseTrajectory) len() int {
	return len(dt.points)
}

func (dt *denseTrajectory) at(pos int) trajectory.Point {
	return dt.points[pos]
}

// indexOf returns the position of id, if present.
func (dt *denseTrajectory) indexOf(id trajectory.ID) (int, bool) {
	pos, ok := dt.index[id]
	return pos, ok
}

// insert places pt at pos, shifting later points back.
func (dt *denseTrajectory) insert(pos int, pt trajectory.Point) {
	dt.points = append(dt.points, nil)
	copy(dt.points[pos+1:], dt.points[pos:])
	dt.points[pos] = pt
	dt.reindex()
}

func (dt *denseTrajectory) erase(pos int) {
	dt.points = append(dt.points[:pos], dt.points[pos+1:]...)
	dt.reindex()
}

func (dt *denseTrajectory) replace(pos int, pt trajectory.Point) {
	dt.points[pos] = pt
	dt.reindex()
}

func (dt *denseTrajectory) snapshot() []trajectory.Point {
	return append([]trajectory.Point(nil), dt.points...)
}
