// Package sparseplan solves long Cartesian trajectories by planning a sparse subset of their points
// in joint space and interpolating the rest. Points whose interpolated joint pose is infeasible are
// promoted into the sparse subset and the solve is repeated.
package sparseplan

import (
	"context"

	"go.opencensus.io/trace"

	"go.viam.com/sparseplan/logging"
	"go.viam.com/sparseplan/trajectory"
)

// SparsePlanner keeps a dense trajectory solved. It is not safe for concurrent use; callers must
// serialize edits.
type SparsePlanner struct {
	graph  Graph
	opts   Options
	logger logging.Logger

	dense       *denseTrajectory
	solution    []SolutionEntry
	jointPoints map[trajectory.ID]trajectory.JointPoint
	meta        *PlanMeta
}

// NewSparsePlanner returns a planner over graph. Nil options select the defaults.
func NewSparsePlanner(graph Graph, opts *Options, logger logging.Logger) (*SparsePlanner, error) {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	dense, err := newDenseTrajectory(nil)
	if err != nil {
		return nil, err
	}
	return &SparsePlanner{
		graph:       graph,
		opts:        *opts,
		logger:      logger,
		dense:       dense,
		jointPoints: map[trajectory.ID]trajectory.JointPoint{},
		meta:        NewPlanMeta(),
	}, nil
}

// SetSampling sets the sparse density used by the next SetTrajectory.
func (sp *SparsePlanner) SetSampling(k float64) {
	sp.opts.Sampling = k
}

// Sampling returns the sparse density.
func (sp *SparsePlanner) Sampling() float64 {
	return sp.opts.Sampling
}

// SetTrajectory replaces the dense trajectory with points and solves it.
func (sp *SparsePlanner) SetTrajectory(ctx context.Context, points []trajectory.Point) error {
	ctx, span := trace.StartSpan(ctx, "sparseplan::SetTrajectory")
	defer span.End()

	if points == nil {
		points = []trajectory.Point{}
	}
	return sp.refine(ctx, points)
}

// InsertAfter inserts pt directly after the point ref and re-solves.
func (sp *SparsePlanner) InsertAfter(ctx context.Context, ref trajectory.ID, pt trajectory.Point) error {
	ctx, span := trace.StartSpan(ctx, "sparseplan::InsertAfter")
	defer span.End()
	return sp.insert(ctx, ref, pt, true)
}

// InsertBefore inserts pt directly before the point ref and re-solves.
func (sp *SparsePlanner) InsertBefore(ctx context.Context, ref trajectory.ID, pt trajectory.Point) error {
	ctx, span := trace.StartSpan(ctx, "sparseplan::InsertBefore")
	defer span.End()
	return sp.insert(ctx, ref, pt, false)
}

func (sp *SparsePlanner) insert(ctx context.Context, ref trajectory.ID, pt trajectory.Point, after bool) error {
	pos, ok := sp.dense.indexOf(ref)
	if !ok {
		return NewPointNotFoundError(ref)
	}
	if _, ok := sp.dense.indexOf(pt.ID()); ok {
		return NewDuplicatePointError(pt.ID())
	}
	refs, err := sp.currentSparseRefs()
	if err != nil {
		return err
	}

	// Inserting after ref brackets the new point by the first sparse point past ref. Inserting
	// before brackets it by the first sparse point at or past ref, which may be ref itself.
	prevID, nextID := bracket(refs, nearestSparseIndex(refs, pos, !after))
	if err := sp.graph.AddTrajectory(pt, prevID, nextID); err != nil {
		return NewGraphMutationError("add", pt.ID(), err)
	}
	if after {
		pos++
	}
	sp.dense.insert(pos, pt)
	return sp.refine(ctx, nil)
}

// Remove deletes the point ref and re-solves.
func (sp *SparsePlanner) Remove(ctx context.Context, ref trajectory.ID) error {
	ctx, span := trace.StartSpan(ctx, "sparseplan::Remove")
	defer span.End()

	pos, ok := sp.dense.indexOf(ref)
	if !ok {
		return NewPointNotFoundError(ref)
	}
	if sp.isInSparse(ref) {
		if err := sp.graph.RemoveTrajectory(sp.dense.at(pos)); err != nil {
			return NewGraphMutationError("remove", ref, err)
		}
	}
	sp.dense.erase(pos)
	return sp.refine(ctx, nil)
}

// Modify replaces the point ref with pt, which takes over ref's ID once the graph accepts it, and
// re-solves. A point that was only interpolated becomes part of the sparse trajectory.
func (sp *SparsePlanner) Modify(ctx context.Context, ref trajectory.ID, pt trajectory.Point) error {
	ctx, span := trace.StartSpan(ctx, "sparseplan::Modify")
	defer span.End()

	pos, ok := sp.dense.indexOf(ref)
	if !ok {
		return NewPointNotFoundError(ref)
	}
	oldID := pt.ID()
	pt.SetID(ref)
	if err := sp.modifyGraph(pos, ref, pt); err != nil {
		pt.SetID(oldID)
		return err
	}
	sp.dense.replace(pos, pt)
	return sp.refine(ctx, nil)
}

// modifyGraph puts pt in the graph in place of ref, adding it when ref was only interpolated.
func (sp *SparsePlanner) modifyGraph(pos int, ref trajectory.ID, pt trajectory.Point) error {
	if sp.isInSparse(ref) {
		if err := sp.graph.ModifyTrajectory(pt); err != nil {
			return NewGraphMutationError("modify", ref, err)
		}
		return nil
	}
	refs, err := sp.currentSparseRefs()
	if err != nil {
		return err
	}
	prevID, nextID := bracket(refs, nearestSparseIndex(refs, pos, false))
	if err := sp.graph.AddTrajectory(pt, prevID, nextID); err != nil {
		return NewGraphMutationError("add", ref, err)
	}
	return nil
}

// SolutionJointPoint returns the solved joint point of the point id, if it has one.
func (sp *SparsePlanner) SolutionJointPoint(id trajectory.ID) (trajectory.JointPoint, bool) {
	jp, ok := sp.jointPoints[id]
	return jp, ok
}

// Path returns the joint point of every dense point in order. It fails if the last solve did not
// cover the whole trajectory.
func (sp *SparsePlanner) Path() ([]trajectory.JointPoint, error) {
	path := make([]trajectory.JointPoint, 0, sp.dense.len())
	for _, pt := range sp.dense.points {
		jp, ok := sp.jointPoints[pt.ID()]
		if !ok {
			return nil, NewIncompleteSolutionError(pt.ID())
		}
		path = append(path, jp)
	}
	return path, nil
}

// DensePoints returns a copy of the dense trajectory.
func (sp *SparsePlanner) DensePoints() []trajectory.Point {
	return sp.dense.snapshot()
}

// SparseSolution returns a copy of the solution table.
func (sp *SparsePlanner) SparseSolution() []SolutionEntry {
	return append([]SolutionEntry(nil), sp.solution...)
}

// PlanMeta returns the meta data of the most recent solve.
func (sp *SparsePlanner) PlanMeta() *PlanMeta {
	return sp.meta
}
