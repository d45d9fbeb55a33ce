package sparseplan

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.opencensus.io/trace"

	"go.viam.com/sparseplan/planninggraph"
	"go.viam.com/sparseplan/trajectory"
)

// SolutionEntry is a sparse point solved by the graph, with its position in the dense trajectory.
type SolutionEntry struct {
	DensePosition int
	Point         trajectory.Point
	Joint         trajectory.JointPoint
}

// sparseRef locates a sparse point in the dense trajectory.
type sparseRef struct {
	id            trajectory.ID
	densePosition int
}

// orderedSparsePoints walks the ordering links from the unique head and returns the points in
// chain order. Any map that is not a single chain over all of its entries is rejected.
func orderedSparsePoints(cm planninggraph.CartesianMap) ([]trajectory.Point, error) {
	if len(cm) == 0 {
		return nil, nil
	}
	heads := lo.Filter(lo.Keys(cm), func(id trajectory.ID, _ int) bool {
		return cm[id].Links.Prev == trajectory.NilID
	})
	if len(heads) != 1 {
		return nil, NewMalformedOrderingError(fmt.Sprintf("found %d chain heads", len(heads)))
	}

	ordered := make([]trajectory.Point, 0, len(cm))
	visited := make(map[trajectory.ID]struct{}, len(cm))
	for id := heads[0]; id != trajectory.NilID; {
		info, ok := cm[id]
		if !ok {
			return nil, NewMalformedOrderingError(fmt.Sprintf("link to unknown point %s", id))
		}
		if _, seen := visited[id]; seen {
			return nil, NewMalformedOrderingError(fmt.Sprintf("point %s is visited twice", id))
		}
		visited[id] = struct{}{}
		ordered = append(ordered, info.Source)
		id = info.Links.Next
	}
	if len(ordered) != len(cm) {
		return nil, NewMalformedOrderingError(
			fmt.Sprintf("chain reaches %d of %d points", len(ordered), len(cm)))
	}
	return ordered, nil
}

// sparseRefs returns the graph's points in chain order with their dense positions, which must be
// strictly increasing.
func (sp *SparsePlanner) sparseRefs(points []trajectory.Point) ([]sparseRef, error) {
	refs := make([]sparseRef, 0, len(points))
	for i, pt := range points {
		pos, ok := sp.dense.indexOf(pt.ID())
		if !ok {
			return nil, NewWaypointNotInDenseError(pt.ID())
		}
		if i > 0 && pos <= refs[i-1].densePosition {
			return nil, NewMalformedOrderingError(
				fmt.Sprintf("point %s at dense position %d follows position %d", pt.ID(), pos, refs[i-1].densePosition))
		}
		refs = append(refs, sparseRef{id: pt.ID(), densePosition: pos})
	}
	return refs, nil
}

// currentSparseRefs reads the sparse set straight from the graph, so edits stay correct even when
// the last refinement left the solution table incomplete.
func (sp *SparsePlanner) currentSparseRefs() ([]sparseRef, error) {
	points, err := orderedSparsePoints(sp.graph.CartesianMap())
	if err != nil {
		return nil, err
	}
	return sp.sparseRefs(points)
}

// nearestSparseIndex returns the index of the first sparse point after dense position pos, or at
// pos when inclusive is set. It returns len(refs) when there is none.
func nearestSparseIndex(refs []sparseRef, pos int, inclusive bool) int {
	for i, ref := range refs {
		if ref.densePosition > pos || (inclusive && ref.densePosition == pos) {
			return i
		}
	}
	return len(refs)
}

// bracket returns the sparse neighbours around index i of refs. Chain ends are NilID.
func bracket(refs []sparseRef, i int) (trajectory.ID, trajectory.ID) {
	prevID, nextID := trajectory.NilID, trajectory.NilID
	if i > 0 {
		prevID = refs[i-1].id
	}
	if i < len(refs) {
		nextID = refs[i].id
	}
	return prevID, nextID
}

// sparseSolution asks the graph for the cheapest joint path and rebuilds the solution table from
// it. The previous table is discarded first.
func (sp *SparsePlanner) sparseSolution(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "sparseplan::sparseSolution")
	defer span.End()
	defer sp.meta.DeferTiming("sparseSolution", time.Now())

	// The graph no longer matches the previous solve, so nothing of it may be served.
	sp.solution = nil
	sp.jointPoints = map[trajectory.ID]trajectory.JointPoint{}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	cost, joints, err := sp.graph.ShortestPath(ctx)
	sp.meta.AddTiming("shortestPath", time.Since(start))
	if err != nil {
		return errors.Wrap(err, "failed to find sparse joint path")
	}

	points, err := orderedSparsePoints(sp.graph.CartesianMap())
	if err != nil {
		return err
	}
	if len(joints) != len(points) {
		return NewSizeMismatchError(len(joints), len(points))
	}
	refs, err := sp.sparseRefs(points)
	if err != nil {
		return err
	}

	table := make([]SolutionEntry, 0, len(points))
	for i, pt := range points {
		table = append(table, SolutionEntry{
			DensePosition: refs[i].densePosition,
			Point:         pt,
			Joint:         trajectory.NewJointPoint(pt.ID(), joints[i].Inputs),
		})
	}
	sp.solution = table
	sp.meta.Cost = cost
	sp.logger.Debugf("sparse solution of %d points found with cost %.3f", len(table), cost)
	return nil
}

// isInSparse reports whether id is one of the graph's points.
func (sp *SparsePlanner) isInSparse(id trajectory.ID) bool {
	_, ok := sp.graph.CartesianMap()[id]
	return ok
}
