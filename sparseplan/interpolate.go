package sparseplan

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
	"golang.org/x/sync/errgroup"

	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/trajectory"
)

// replan names the dense point that failed validation and the table entry closing its segment.
// entryIndex is 0 for a point ahead of the first entry and len(solution) for one past the last.
type replan struct {
	entryIndex    int
	densePosition int
}

// segmentResult is the outcome of validating the dense points between two table entries.
type segmentResult struct {
	joints []trajectory.JointPoint
	// dense position of the point that failed, -1 when every point passed.
	failed int
	err    error
}

// validateSegment interpolates joint poses between prev and next and asks every dense point
// strictly between them for its nearest feasible pose. It stops at the first infeasible point.
func (sp *SparsePlanner) validateSegment(seed []referenceframe.Input, prev, next SolutionEntry) segmentResult {
	res := segmentResult{failed: -1}
	model := sp.graph.Model()

	start, err := prev.Joint.NominalJointPose(seed, model)
	if err != nil {
		res.err = NewInterpolationPreconditionError(prev.DensePosition, err)
		return res
	}
	end, err := next.Joint.NominalJointPose(seed, model)
	if err != nil {
		res.err = NewInterpolationPreconditionError(next.DensePosition, err)
		return res
	}

	step := next.DensePosition - prev.DensePosition
	for j := 1; j < step; j++ {
		pos := prev.DensePosition + j
		guess, err := referenceframe.InterpolateInputs(start, end, float64(j)/float64(step))
		if err != nil {
			res.err = NewInterpolationPreconditionError(pos, err)
			return res
		}
		pt := sp.dense.at(pos)
		solution, err := pt.ClosestJointPose(guess, model)
		if err != nil {
			if !errors.Is(err, trajectory.ErrInfeasible) {
				res.err = NewInterpolationPreconditionError(pos, err)
				return res
			}
			sp.logger.Debugf("point %s at dense position %d failed validation: %v", pt.ID(), pos, err)
			res.failed = pos
			return res
		}
		res.joints = append(res.joints, trajectory.NewJointPoint(pt.ID(), solution))
	}
	return res
}

// validate checks every segment of the solution table and fills the joint point map. It returns
// the earliest failing dense point, or nil when all of them pass.
func (sp *SparsePlanner) validate(ctx context.Context) (*replan, error) {
	_, span := trace.StartSpan(ctx, "sparseplan::validate")
	defer span.End()
	defer sp.meta.DeferTiming("interpolate", time.Now())

	sp.jointPoints = make(map[trajectory.ID]trajectory.JointPoint, sp.dense.len())
	record := func(jp trajectory.JointPoint) {
		sp.jointPoints[jp.ID] = jp
	}
	if len(sp.solution) == 0 {
		return nil, nil
	}
	// Dense points outside the table ends lie in no segment, so the outermost one is promoted.
	if sp.solution[0].DensePosition > 0 {
		return &replan{entryIndex: 0, densePosition: 0}, nil
	}
	if len(sp.solution) == 1 {
		record(sp.solution[0].Joint)
	}

	seed := make([]referenceframe.Input, sp.graph.Model().DoF())
	segment := func(k int) segmentResult {
		return sp.validateSegment(seed, sp.solution[k-1], sp.solution[k])
	}

	// Segments are independent, so they may be validated concurrently. Results are still merged in
	// order so the earliest failure wins.
	if sp.opts.NumThreads > 1 && len(sp.solution) > 2 {
		results := make([]segmentResult, len(sp.solution))
		var g errgroup.Group
		g.SetLimit(sp.opts.NumThreads)
		for k := 1; k < len(sp.solution); k++ {
			k := k
			g.Go(func() error {
				results[k] = segment(k)
				return nil
			})
		}
		//nolint:errcheck
		g.Wait()
		segment = func(k int) segmentResult {
			return results[k]
		}
	}

	for k := 1; k < len(sp.solution); k++ {
		res := segment(k)
		if res.err != nil {
			return nil, res.err
		}
		record(sp.solution[k-1].Joint)
		for _, jp := range res.joints {
			record(jp)
		}
		if res.failed >= 0 {
			return &replan{entryIndex: k, densePosition: res.failed}, nil
		}
		record(sp.solution[k].Joint)
	}
	if last := sp.dense.len() - 1; sp.solution[len(sp.solution)-1].DensePosition < last {
		return &replan{entryIndex: len(sp.solution), densePosition: last}, nil
	}
	return nil, nil
}
