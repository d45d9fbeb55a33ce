package sparseplan

import (
	"context"
	"fmt"
	"time"

	"go.opencensus.io/trace"

	"go.viam.com/sparseplan/trajectory"
)

// refineState is a step of the refinement loop.
type refineState int

const (
	stateSampling refineState = iota
	stateSolving
	stateValidating
	statePromoting
	stateAccepted
	stateExhausted
	stateFailed
)

func (s refineState) String() string {
	switch s {
	case stateSampling:
		return "sampling"
	case stateSolving:
		return "solving"
	case stateValidating:
		return "validating"
	case statePromoting:
		return "promoting"
	case stateAccepted:
		return "accepted"
	case stateExhausted:
		return "exhausted"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("refineState(%d)", int(s))
	}
}

func (s refineState) terminal() bool {
	return s >= stateAccepted
}

// transition returns the state following current, given the error of current's step, whether
// validation asked for a promotion and whether promotions have passed the cap.
func transition(current refineState, err error, needsPromotion, exhausted bool) refineState {
	if current.terminal() {
		return current
	}
	if err != nil {
		return stateFailed
	}
	switch current {
	case stateSampling:
		return stateSolving
	case stateSolving:
		return stateValidating
	case stateValidating:
		if needsPromotion {
			return statePromoting
		}
		return stateAccepted
	case statePromoting:
		if exhausted {
			return stateExhausted
		}
		return stateSolving
	default:
		return stateFailed
	}
}

// sample replaces both the dense trajectory and the graph's contents with points. Nothing is
// committed unless the graph accepts the sparse subset.
func (sp *SparsePlanner) sample(points []trajectory.Point) error {
	dense, err := newDenseTrajectory(points)
	if err != nil {
		return err
	}
	positions, err := sampleTrajectory(sp.opts.Sampling, dense.points)
	if err != nil {
		return err
	}
	sparse := make([]trajectory.Point, 0, len(positions))
	for _, pos := range positions {
		sparse = append(sparse, dense.at(pos))
	}
	sp.logger.Infof("Sampled trajectory contains %d points from %d points in the dense trajectory",
		len(sparse), dense.len())

	if err := sp.graph.InsertGraph(sparse); err != nil {
		return NewGraphMutationError("insert", sparse[0].ID(), err)
	}
	sp.dense = dense
	sp.solution = nil
	sp.jointPoints = map[trajectory.ID]trajectory.JointPoint{}
	return nil
}

// promote moves the dense point named by rp into the graph, between the table entries bracketing
// the failed segment. A point outside the table ends is linked to the nearest end only.
func (sp *SparsePlanner) promote(rp replan) error {
	defer sp.meta.DeferTiming("promote", time.Now())

	pt := sp.dense.at(rp.densePosition)
	prevID, nextID := trajectory.NilID, trajectory.NilID
	if rp.entryIndex > 0 {
		prevID = sp.solution[rp.entryIndex-1].Point.ID()
	}
	if rp.entryIndex < len(sp.solution) {
		nextID = sp.solution[rp.entryIndex].Point.ID()
	}
	if err := sp.graph.AddTrajectory(pt, prevID, nextID); err != nil {
		return NewGraphMutationError("add", pt.ID(), err)
	}
	sp.solution = nil
	sp.jointPoints = map[trajectory.ID]trajectory.JointPoint{}
	sp.meta.Promotions++
	sp.logger.Debugf("promoted point %s at dense position %d between %s and %s",
		pt.ID(), rp.densePosition, prevID, nextID)
	return nil
}

// refine runs the refinement loop until the dense trajectory is fully solved or it gives up.
// A non-nil pending trajectory is sampled into the graph first.
func (sp *SparsePlanner) refine(ctx context.Context, pending []trajectory.Point) error {
	ctx, span := trace.StartSpan(ctx, "sparseplan::refine")
	defer span.End()

	sp.meta = NewPlanMeta()
	start := time.Now()
	defer func() {
		sp.meta.Duration = time.Since(start)
		sp.meta.AddTiming("plan", sp.meta.Duration)
	}()

	state := stateSolving
	if pending != nil {
		state = stateSampling
	}
	var (
		stepErr error
		rp      *replan
	)
	for !state.terminal() {
		exhausted := false
		switch state {
		case stateSampling:
			stepErr = sp.sample(pending)
		case stateSolving:
			sp.meta.Attempts++
			stepErr = sp.sparseSolution(ctx)
		case stateValidating:
			rp, stepErr = sp.validate(ctx)
		case statePromoting:
			stepErr = sp.promote(*rp)
			exhausted = sp.meta.Promotions > sp.opts.MaxReplanningAttempts
		case stateAccepted, stateExhausted, stateFailed:
		}
		next := transition(state, stepErr, rp != nil, exhausted)
		sp.logger.Debugf("refinement %s -> %s", state, next)
		state = next
	}

	switch state {
	case stateAccepted:
		sp.meta.Planned = len(sp.solution)
		sp.meta.Interpolated = sp.dense.len() - len(sp.solution)
		sp.logger.Infof("Sparse planning succeeded with %d planned and %d interpolated points",
			sp.meta.Planned, sp.meta.Interpolated)
		return nil
	case stateExhausted:
		return NewRetryExhaustedError(sp.meta.Promotions)
	default:
		return stepErr
	}
}
