// Package planninggraph keeps the ordered set of Cartesian points submitted to the expensive joint
// space search and finds the cheapest joint path through them.
package planninggraph

import (
	"context"
	"hash/fnv"
	"math/rand"

	"github.com/samber/lo"
	"go.opencensus.io/trace"
	"go.uber.org/multierr"

	"go.viam.com/sparseplan/kinematics"
	"go.viam.com/sparseplan/logging"
	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/trajectory"
)

// Links are the neighbours of a point in solved order. trajectory.NilID marks the chain ends.
type Links struct {
	Prev trajectory.ID
	Next trajectory.ID
}

// PointInformation is an entry of the ordering map.
type PointInformation struct {
	Links  Links
	Source trajectory.Point
}

// CartesianMap maps each point in the graph to its neighbours and source point.
type CartesianMap map[trajectory.ID]PointInformation

type graphNode struct {
	info      PointInformation
	solutions [][]referenceframe.Input
}

// PlanningGraph is a ladder graph: one rung per Cartesian point, one vertex per joint solution of
// that point, and edges between every pair of solutions on adjacent rungs.
type PlanningGraph struct {
	model  kinematics.Model
	opts   Options
	logger logging.Logger

	nodes map[trajectory.ID]*graphNode
}

// New returns an empty planning graph for the model.
func New(model kinematics.Model, opts Options, logger logging.Logger) *PlanningGraph {
	return &PlanningGraph{
		model:  model,
		opts:   opts.withDefaults(),
		logger: logger,
		nodes:  map[trajectory.ID]*graphNode{},
	}
}

// Model returns the kinematic model the graph solves with.
func (pg *PlanningGraph) Model() kinematics.Model {
	return pg.model
}

// Len returns the number of points in the graph.
func (pg *PlanningGraph) Len() int {
	return len(pg.nodes)
}

// CartesianMap returns a snapshot of the ordering map.
func (pg *PlanningGraph) CartesianMap() CartesianMap {
	out := make(CartesianMap, len(pg.nodes))
	for id, n := range pg.nodes {
		out[id] = n.info
	}
	return out
}

// InsertGraph replaces the contents of the graph with the given points, chained in order. On error
// the graph is left unchanged; every point without joint solutions is reported.
func (pg *PlanningGraph) InsertGraph(points []trajectory.Point) error {
	if len(points) == 0 {
		return NewEmptyGraphError()
	}
	nodes := make(map[trajectory.ID]*graphNode, len(points))
	var errs error
	for i, pt := range points {
		if _, ok := nodes[pt.ID()]; ok {
			errs = multierr.Append(errs, NewDuplicatePointError(pt.ID()))
			continue
		}
		solutions, err := pg.solutions(pt)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		links := Links{Prev: trajectory.NilID, Next: trajectory.NilID}
		if i > 0 {
			links.Prev = points[i-1].ID()
		}
		if i < len(points)-1 {
			links.Next = points[i+1].ID()
		}
		nodes[pt.ID()] = &graphNode{info: PointInformation{Links: links, Source: pt}, solutions: solutions}
	}
	if errs != nil {
		return errs
	}
	pg.nodes = nodes
	pg.logger.Debugw("inserted points into planning graph", "count", len(points))
	return nil
}

// AddTrajectory links pt between prevID and nextID, which must currently be adjacent. A nil prevID
// makes pt the new head, a nil nextID the new tail.
func (pg *PlanningGraph) AddTrajectory(pt trajectory.Point, prevID, nextID trajectory.ID) error {
	if _, ok := pg.nodes[pt.ID()]; ok {
		return NewDuplicatePointError(pt.ID())
	}
	if err := pg.checkAdjacent(prevID, nextID); err != nil {
		return err
	}
	solutions, err := pg.solutions(pt)
	if err != nil {
		return err
	}

	pg.nodes[pt.ID()] = &graphNode{
		info:      PointInformation{Links: Links{Prev: prevID, Next: nextID}, Source: pt},
		solutions: solutions,
	}
	if prevID != trajectory.NilID {
		pg.nodes[prevID].info.Links.Next = pt.ID()
	}
	if nextID != trajectory.NilID {
		pg.nodes[nextID].info.Links.Prev = pt.ID()
	}
	pg.logger.Debugw("added point to planning graph", "id", pt.ID(), "prev", prevID, "next", nextID)
	return nil
}

func (pg *PlanningGraph) checkAdjacent(prevID, nextID trajectory.ID) error {
	if len(pg.nodes) == 0 {
		if prevID != trajectory.NilID || nextID != trajectory.NilID {
			return NewNotAdjacentError(prevID, nextID)
		}
		return nil
	}
	if prevID == trajectory.NilID && nextID == trajectory.NilID {
		return NewNotAdjacentError(prevID, nextID)
	}
	if prevID != trajectory.NilID {
		prev, ok := pg.nodes[prevID]
		if !ok {
			return NewPointNotFoundError(prevID)
		}
		if prev.info.Links.Next != nextID {
			return NewNotAdjacentError(prevID, nextID)
		}
	}
	if nextID != trajectory.NilID {
		next, ok := pg.nodes[nextID]
		if !ok {
			return NewPointNotFoundError(nextID)
		}
		if next.info.Links.Prev != prevID {
			return NewNotAdjacentError(prevID, nextID)
		}
	}
	return nil
}

// RemoveTrajectory unlinks pt. The last point of a graph cannot be removed.
func (pg *PlanningGraph) RemoveTrajectory(pt trajectory.Point) error {
	n, ok := pg.nodes[pt.ID()]
	if !ok {
		return NewPointNotFoundError(pt.ID())
	}
	if len(pg.nodes) == 1 {
		return NewLastPointError(pt.ID())
	}
	links := n.info.Links
	if links.Prev != trajectory.NilID {
		pg.nodes[links.Prev].info.Links.Next = links.Next
	}
	if links.Next != trajectory.NilID {
		pg.nodes[links.Next].info.Links.Prev = links.Prev
	}
	delete(pg.nodes, pt.ID())
	pg.logger.Debugw("removed point from planning graph", "id", pt.ID())
	return nil
}

// ModifyTrajectory replaces the point with the same ID as pt, keeping its place in the chain.
func (pg *PlanningGraph) ModifyTrajectory(pt trajectory.Point) error {
	n, ok := pg.nodes[pt.ID()]
	if !ok {
		return NewPointNotFoundError(pt.ID())
	}
	solutions, err := pg.solutions(pt)
	if err != nil {
		return err
	}
	n.info.Source = pt
	n.solutions = solutions
	return nil
}

// ordered walks the chain from its head.
func (pg *PlanningGraph) ordered() ([]trajectory.ID, error) {
	heads := lo.Filter(lo.Keys(pg.nodes), func(id trajectory.ID, _ int) bool {
		return pg.nodes[id].info.Links.Prev == trajectory.NilID
	})
	if len(heads) != 1 {
		return nil, NewChainHeadError(len(heads))
	}
	order := make([]trajectory.ID, 0, len(pg.nodes))
	for id := heads[0]; id != trajectory.NilID; id = pg.nodes[id].info.Links.Next {
		if len(order) == len(pg.nodes) {
			return nil, NewBrokenChainError(len(order)+1, len(pg.nodes))
		}
		if _, ok := pg.nodes[id]; !ok {
			return nil, NewPointNotFoundError(id)
		}
		order = append(order, id)
	}
	if len(order) != len(pg.nodes) {
		return nil, NewBrokenChainError(len(order), len(pg.nodes))
	}
	return order, nil
}

// ShortestPath returns the cost and the joint points, in chain order, of the cheapest path through
// one solution of every point.
func (pg *PlanningGraph) ShortestPath(ctx context.Context) (float64, []trajectory.JointPoint, error) {
	_, span := trace.StartSpan(ctx, "planninggraph::ShortestPath")
	defer span.End()

	if len(pg.nodes) == 0 {
		return 0, nil, NewEmptyGraphError()
	}
	order, err := pg.ordered()
	if err != nil {
		return 0, nil, err
	}
	rungs := make([][][]referenceframe.Input, len(order))
	for i, id := range order {
		rungs[i] = pg.nodes[id].solutions
	}
	cost, picks, err := shortestLadderPath(ctx, rungs)
	if err != nil {
		return 0, nil, err
	}
	path := make([]trajectory.JointPoint, len(order))
	for i, id := range order {
		path[i] = trajectory.NewJointPoint(id, rungs[i][picks[i]])
	}
	pg.logger.Debugw("solved planning graph", "points", len(order), "cost", cost)
	return cost, path, nil
}

// solutions gathers distinct joint configurations for pt from a deterministic set of seeds.
func (pg *PlanningGraph) solutions(pt trajectory.Point) ([][]referenceframe.Input, error) {
	limits := pg.model.Limits()
	h := fnv.New64a()
	id := pt.ID()
	//nolint:errcheck
	h.Write(id[:])
	//nolint:gosec
	r := rand.New(rand.NewSource(pg.opts.RandomSeed ^ int64(h.Sum64())))

	seeds := [][]referenceframe.Input{referenceframe.MidpointInputs(limits)}
	for len(seeds) < pg.opts.SolutionsPerPoint {
		seeds = append(seeds, referenceframe.RandomInputs(limits, r))
	}

	var found [][]referenceframe.Input
	var lastErr error
	for _, seed := range seeds {
		solution, err := pt.NominalJointPose(seed, pg.model)
		if err != nil {
			lastErr = err
			continue
		}
		duplicate := lo.ContainsBy(found, func(other []referenceframe.Input) bool {
			return referenceframe.InputsL2Distance(other, solution) < pg.opts.InputIdentDist
		})
		if !duplicate {
			found = append(found, solution)
		}
	}
	if len(found) == 0 {
		return nil, NewNoSolutionsError(pt.ID(), lastErr)
	}
	return found, nil
}
