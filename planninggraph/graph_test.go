package planninggraph

import (
	"context"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/sparseplan/kinematics"
	"go.viam.com/sparseplan/logging"
	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/spatialmath"
	"go.viam.com/sparseplan/trajectory"
)

func newTestGraph(t *testing.T) *PlanningGraph {
	t.Helper()
	lim := referenceframe.Limit{Min: -100, Max: 100}
	model := kinematics.NewGantry("gantry", lim, lim, lim, kinematics.NewDefaultSolverOptions())
	return New(model, NewDefaultOptions(), logging.NewTestLogger(t))
}

func points(xs ...float64) []trajectory.Point {
	out := make([]trajectory.Point, 0, len(xs))
	for _, x := range xs {
		out = append(out, trajectory.NewCartPoint(spatialmath.NewPoseFromPoint(r3.Vector{X: x})))
	}
	return out
}

// chain walks the ordering map from its head.
func chain(t *testing.T, pg *PlanningGraph) []trajectory.ID {
	t.Helper()
	order, err := pg.ordered()
	test.That(t, err, test.ShouldBeNil)
	return order
}

func ids(pts []trajectory.Point) []trajectory.ID {
	out := make([]trajectory.ID, len(pts))
	for i, p := range pts {
		out[i] = p.ID()
	}
	return out
}

func TestInsertGraph(t *testing.T) {
	pg := newTestGraph(t)
	pts := points(0, 10, 20)
	test.That(t, pg.InsertGraph(pts), test.ShouldBeNil)
	test.That(t, pg.Len(), test.ShouldEqual, 3)
	test.That(t, chain(t, pg), test.ShouldResemble, ids(pts))

	cm := pg.CartesianMap()
	test.That(t, cm[pts[0].ID()].Links.Prev, test.ShouldEqual, trajectory.NilID)
	test.That(t, cm[pts[2].ID()].Links.Next, test.ShouldEqual, trajectory.NilID)
	test.That(t, cm[pts[1].ID()].Source, test.ShouldEqual, pts[1])

	t.Run("failure leaves graph unchanged", func(t *testing.T) {
		bad := points(0, 500, 600)
		err := pg.InsertGraph(bad)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, bad[1].ID().String())
		test.That(t, err.Error(), test.ShouldContainSubstring, bad[2].ID().String())
		test.That(t, chain(t, pg), test.ShouldResemble, ids(pts))
	})

	t.Run("empty", func(t *testing.T) {
		test.That(t, pg.InsertGraph(nil), test.ShouldBeError, NewEmptyGraphError())
	})
}

func TestAddTrajectory(t *testing.T) {
	pg := newTestGraph(t)
	pts := points(0, 10, 20)
	test.That(t, pg.InsertGraph(pts), test.ShouldBeNil)

	mid := points(5)[0]
	test.That(t, pg.AddTrajectory(mid, pts[0].ID(), pts[1].ID()), test.ShouldBeNil)
	head := points(-5)[0]
	test.That(t, pg.AddTrajectory(head, trajectory.NilID, pts[0].ID()), test.ShouldBeNil)
	tail := points(25)[0]
	test.That(t, pg.AddTrajectory(tail, pts[2].ID(), trajectory.NilID), test.ShouldBeNil)

	test.That(t, chain(t, pg), test.ShouldResemble,
		[]trajectory.ID{head.ID(), pts[0].ID(), mid.ID(), pts[1].ID(), pts[2].ID(), tail.ID()})

	extra := points(7)[0]
	test.That(t, pg.AddTrajectory(mid, pts[0].ID(), pts[1].ID()), test.ShouldBeError, NewDuplicatePointError(mid.ID()))
	test.That(t, pg.AddTrajectory(extra, pts[0].ID(), pts[1].ID()), test.ShouldBeError,
		NewNotAdjacentError(pts[0].ID(), pts[1].ID()))
	test.That(t, pg.AddTrajectory(extra, trajectory.NilID, pts[1].ID()), test.ShouldBeError,
		NewNotAdjacentError(trajectory.NilID, pts[1].ID()))
	test.That(t, pg.AddTrajectory(extra, trajectory.NilID, trajectory.NilID), test.ShouldBeError,
		NewNotAdjacentError(trajectory.NilID, trajectory.NilID))
	unknown := trajectory.NewID()
	test.That(t, pg.AddTrajectory(extra, unknown, pts[1].ID()), test.ShouldBeError, NewPointNotFoundError(unknown))

	unreachable := points(1000)[0]
	test.That(t, pg.AddTrajectory(unreachable, pts[2].ID(), tail.ID()), test.ShouldNotBeNil)
	test.That(t, pg.Len(), test.ShouldEqual, 6)

	t.Run("into an empty graph", func(t *testing.T) {
		empty := newTestGraph(t)
		test.That(t, empty.AddTrajectory(extra, pts[0].ID(), trajectory.NilID), test.ShouldNotBeNil)
		test.That(t, empty.AddTrajectory(extra, trajectory.NilID, trajectory.NilID), test.ShouldBeNil)
		test.That(t, empty.Len(), test.ShouldEqual, 1)
	})
}

func TestRemoveAndModifyTrajectory(t *testing.T) {
	pg := newTestGraph(t)
	pts := points(0, 10, 20)
	test.That(t, pg.InsertGraph(pts), test.ShouldBeNil)

	test.That(t, pg.RemoveTrajectory(pts[1]), test.ShouldBeNil)
	test.That(t, chain(t, pg), test.ShouldResemble, []trajectory.ID{pts[0].ID(), pts[2].ID()})
	test.That(t, pg.RemoveTrajectory(pts[1]), test.ShouldBeError, NewPointNotFoundError(pts[1].ID()))

	test.That(t, pg.RemoveTrajectory(pts[0]), test.ShouldBeNil)
	test.That(t, pg.RemoveTrajectory(pts[2]), test.ShouldBeError, NewLastPointError(pts[2].ID()))
	test.That(t, pg.Len(), test.ShouldEqual, 1)

	replacement := points(30)[0]
	replacement.SetID(pts[2].ID())
	test.That(t, pg.ModifyTrajectory(replacement), test.ShouldBeNil)
	test.That(t, pg.CartesianMap()[pts[2].ID()].Source, test.ShouldEqual, replacement)

	_, path, err := pg.ShortestPath(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path[0].Floats(), test.ShouldResemble, []float64{30, 0, 0})

	test.That(t, pg.ModifyTrajectory(pts[0]), test.ShouldBeError, NewPointNotFoundError(pts[0].ID()))
	unreachable := points(1000)[0]
	unreachable.SetID(pts[2].ID())
	test.That(t, pg.ModifyTrajectory(unreachable), test.ShouldNotBeNil)
	test.That(t, pg.CartesianMap()[pts[2].ID()].Source, test.ShouldEqual, replacement)
}

func TestShortestPath(t *testing.T) {
	pg := newTestGraph(t)
	_, _, err := pg.ShortestPath(context.Background())
	test.That(t, err, test.ShouldBeError, NewEmptyGraphError())

	pts := points(0, 10, 40)
	test.That(t, pg.InsertGraph(pts), test.ShouldBeNil)

	cost, path, err := pg.ShortestPath(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cost, test.ShouldAlmostEqual, 40.)
	test.That(t, len(path), test.ShouldEqual, 3)
	for i, jp := range path {
		test.That(t, jp.ID, test.ShouldEqual, pts[i].ID())
	}
	test.That(t, path[1].Floats(), test.ShouldResemble, []float64{10, 0, 0})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := pg.ShortestPath(ctx)
		test.That(t, err, test.ShouldBeError, context.Canceled)
	})

	t.Run("broken chain", func(t *testing.T) {
		pg.nodes[pts[2].ID()].info.Links.Prev = trajectory.NilID
		_, _, err := pg.ShortestPath(context.Background())
		test.That(t, err, test.ShouldBeError, NewChainHeadError(2))
	})
}

func TestShortestLadderPath(t *testing.T) {
	in := referenceframe.FloatsToInputs
	rungs := [][][]referenceframe.Input{
		{in([]float64{0}), in([]float64{10})},
		{in([]float64{1}), in([]float64{9}), in([]float64{20})},
		{in([]float64{10})},
	}
	cost, picks, err := shortestLadderPath(context.Background(), rungs)
	test.That(t, err, test.ShouldBeNil)
	// 10 -> 9 -> 10 beats 0 -> 1 -> 10.
	test.That(t, cost, test.ShouldAlmostEqual, 2.)
	test.That(t, picks, test.ShouldResemble, []int{1, 1, 0})

	cost, picks, err = shortestLadderPath(context.Background(), rungs[:1])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cost, test.ShouldEqual, 0.)
	test.That(t, len(picks), test.ShouldEqual, 1)
}

func TestPlanarArmSolutions(t *testing.T) {
	lim := referenceframe.Limit{Min: -3, Max: 3}
	opts := kinematics.NewDefaultSolverOptions()
	opts.GoalThreshold = 0.5
	arm, err := kinematics.NewPlanarArm("planar", []float64{300, 300}, []referenceframe.Limit{lim, lim}, opts)
	test.That(t, err, test.ShouldBeNil)
	pg := New(arm, Options{SolutionsPerPoint: 16, InputIdentDist: 0.05, RandomSeed: 1}, logging.NewTestLogger(t))

	pt := trajectory.NewAxialSymmetricPoint(spatialmath.NewPoseFromPoint(r3.Vector{X: 400, Y: 100}))
	solutions, err := pg.solutions(pt)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(solutions), test.ShouldBeGreaterThanOrEqualTo, 1)
	for _, s := range solutions {
		pose, err := arm.Transform(s)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, spatialmath.PoseAlmostCoincidentEps(pose, pt.Pose(), 0.5), test.ShouldBeTrue)
	}
}
