package sparseplan

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/sparseplan/kinematics"
	"go.viam.com/sparseplan/logging"
	"go.viam.com/sparseplan/planninggraph"
	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/spatialmath"
	"go.viam.com/sparseplan/trajectory"
)

// Every test point accepts a joint pose at most this far from its interpolated seed.
const testTolerance = 10.

func testGantry() *kinematics.Gantry {
	lim := referenceframe.Limit{Min: -100, Max: 100}
	return kinematics.NewGantry("gantry", lim, lim, lim, kinematics.NewDefaultSolverOptions())
}

func pointAt(name string, x, y float64) trajectory.Point {
	pt := trajectory.NewCartPoint(spatialmath.NewPoseFromPoint(r3.Vector{X: x, Y: y}))
	pt.SetID(trajectory.IDFromName(name))
	pt.SetTolerance(testTolerance)
	return pt
}

// line returns n points p0..pn-1 spaced 10mm apart along X.
func line(n int) []trajectory.Point {
	pts := make([]trajectory.Point, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, pointAt(fmt.Sprintf("p%d", i), float64(10*i), 0))
	}
	return pts
}

func id(name string) trajectory.ID {
	return trajectory.IDFromName(name)
}

func names(ns ...string) []trajectory.ID {
	out := make([]trajectory.ID, 0, len(ns))
	for _, n := range ns {
		out = append(out, id(n))
	}
	return out
}

// fakeGraph wraps a real planning graph, recording additions and optionally failing operations.
type fakeGraph struct {
	*planninggraph.PlanningGraph

	adds      [][2]trajectory.ID
	added     []trajectory.ID
	removeErr error

	// dropJoint drops the last solved joint point; badDoF truncates every solved joint point.
	dropJoint bool
	badDoF    bool
}

func newFakeGraph(t *testing.T) *fakeGraph {
	t.Helper()
	return &fakeGraph{
		PlanningGraph: planninggraph.New(testGantry(), planninggraph.NewDefaultOptions(), logging.NewTestLogger(t)),
	}
}

func (g *fakeGraph) AddTrajectory(pt trajectory.Point, prevID, nextID trajectory.ID) error {
	g.adds = append(g.adds, [2]trajectory.ID{prevID, nextID})
	g.added = append(g.added, pt.ID())
	return g.PlanningGraph.AddTrajectory(pt, prevID, nextID)
}

func (g *fakeGraph) RemoveTrajectory(pt trajectory.Point) error {
	if g.removeErr != nil {
		return g.removeErr
	}
	return g.PlanningGraph.RemoveTrajectory(pt)
}

func (g *fakeGraph) ShortestPath(ctx context.Context) (float64, []trajectory.JointPoint, error) {
	cost, joints, err := g.PlanningGraph.ShortestPath(ctx)
	if err != nil {
		return 0, nil, err
	}
	if g.dropJoint {
		joints = joints[:len(joints)-1]
	}
	if g.badDoF {
		for i := range joints {
			joints[i].Inputs = joints[i].Inputs[:1]
		}
	}
	return cost, joints, nil
}

func newTestPlanner(t *testing.T, graph Graph, sampling float64) *SparsePlanner {
	t.Helper()
	opts := NewDefaultOptions()
	opts.Sampling = sampling
	sp, err := NewSparsePlanner(graph, opts, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return sp
}

func sparseIDs(sp *SparsePlanner) []trajectory.ID {
	table := sp.SparseSolution()
	out := make([]trajectory.ID, 0, len(table))
	for _, entry := range table {
		out = append(out, entry.Point.ID())
	}
	return out
}

func denseIDs(sp *SparsePlanner) []trajectory.ID {
	pts := sp.DensePoints()
	out := make([]trajectory.ID, 0, len(pts))
	for _, pt := range pts {
		out = append(out, pt.ID())
	}
	return out
}

// checkSolved asserts that every dense point has a joint pose reaching it and that the table
// agrees with the dense trajectory.
func checkSolved(t *testing.T, sp *SparsePlanner) {
	t.Helper()
	path, err := sp.Path()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(path), test.ShouldEqual, len(sp.DensePoints()))

	model := testGantry()
	for i, pt := range sp.DensePoints() {
		test.That(t, path[i].ID, test.ShouldEqual, pt.ID())
		pose, err := model.Transform(path[i].Inputs)
		test.That(t, err, test.ShouldBeNil)
		cart, ok := pt.(*trajectory.CartPoint)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, spatialmath.PoseAlmostCoincidentEps(pose, cart.Pose(), 1e-6), test.ShouldBeTrue)
	}
	for _, entry := range sp.SparseSolution() {
		pos, ok := sp.dense.indexOf(entry.Point.ID())
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, pos, test.ShouldEqual, entry.DensePosition)
	}
}
