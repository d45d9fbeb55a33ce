package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/sparseplan/kinematics"
	"go.viam.com/sparseplan/logging"
	"go.viam.com/sparseplan/planninggraph"
	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/sparseplan"
	"go.viam.com/sparseplan/trajectory"
)

// newModel returns one of the built-in demonstration models.
func newModel(name string) (kinematics.Model, error) {
	opts := kinematics.NewDefaultSolverOptions()
	switch name {
	case modelGantry:
		lim := referenceframe.Limit{Min: -1000, Max: 1000}
		return kinematics.NewGantry(modelGantry, lim, lim, lim, opts), nil
	case modelPlanar:
		lim := referenceframe.Limit{Min: -math.Pi, Max: math.Pi}
		return kinematics.NewPlanarArm(modelPlanar, []float64{300, 300, 100}, []referenceframe.Limit{lim, lim, lim}, opts)
	default:
		return nil, errors.Errorf("unknown model %q, expected %s or %s", name, modelGantry, modelPlanar)
	}
}

func readPoints(path string) ([]trajectory.Point, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		//nolint:errcheck
		f.Close()
	}()
	cfg, err := trajectory.ReadConfig(f)
	if err != nil {
		return nil, err
	}
	return cfg.BuildPoints()
}

// PlanAction plans the trajectory file given as the only argument.
func PlanAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("expected exactly one trajectory file")
	}
	logger, closeLogger := newLogger(c)
	defer func() {
		//nolint:errcheck
		closeLogger.Close()
	}()

	points, err := readPoints(c.Args().First())
	if err != nil {
		return err
	}
	model, err := newModel(c.String(planFlagModel))
	if err != nil {
		return err
	}

	opts := sparseplan.NewDefaultOptions()
	opts.Sampling = c.Float64(planFlagSampling)
	opts.MaxReplanningAttempts = c.Int(planFlagMaxAttempts)
	if c.IsSet(planFlagThreads) {
		opts.NumThreads = c.Int(planFlagThreads)
	}
	if float64(len(points)) <= opts.Sampling {
		warningf(c.App.ErrWriter, "sampling %v leaves nothing to interpolate in %d points", opts.Sampling, len(points))
		opts.Sampling = math.Max(float64(len(points)-1), 0.5)
	}

	graph := planninggraph.New(model, planninggraph.NewDefaultOptions(), logger.Sublogger("graph"))
	planner, err := sparseplan.NewSparsePlanner(graph, opts, logger.Sublogger("planner"))
	if err != nil {
		return err
	}
	if err := planner.SetTrajectory(c.Context, points); err != nil {
		return errors.Wrap(err, "planning failed")
	}
	path, err := planner.Path()
	if err != nil {
		return err
	}

	printf(c.App.Writer, "%s", renderPath(planner.SparseSolution(), path))
	meta := planner.PlanMeta()
	printf(c.App.Writer, "%d planned, %d interpolated, %d promotions, cost %.3f, took %v",
		meta.Planned, meta.Interpolated, meta.Promotions, meta.Cost, meta.Duration)
	if steps, err := summarizeSteps(path); err == nil {
		printf(c.App.Writer, "joint steps: max %.3f, mean %.3f, p95 %.3f", steps.max, steps.mean, steps.p95)
	}
	if c.Bool(planFlagTiming) {
		meta.OutputTiming(c.App.Writer)
	}
	if file := c.String(planFlagPlot); file != "" {
		if err := plotPath(path, file); err != nil {
			return errors.Wrap(err, "cannot plot joint path")
		}
		printf(c.App.Writer, "joint plot saved to %s", file)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger returns the logger selected by the global flags and a closer for its outputs.
func newLogger(c *cli.Context) (logging.Logger, io.Closer) {
	level := logging.INFO
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}
	if path := c.String(logFileFlag); path != "" {
		return logging.NewFileLogger("sparseplan", path, level)
	}
	if c.Bool(debugFlag) {
		return logging.NewDebugLogger("sparseplan"), nopCloser{}
	}
	return logging.NewBlankLogger("sparseplan"), nopCloser{}
}

type stepSummary struct {
	max, mean, p95 float64
}

// summarizeSteps describes the joint distances between consecutive points of the path.
func summarizeSteps(path []trajectory.JointPoint) (stepSummary, error) {
	steps := make(stats.Float64Data, 0, len(path))
	for i := 1; i < len(path); i++ {
		steps = append(steps, referenceframe.InputsL2Distance(path[i-1].Inputs, path[i].Inputs))
	}
	var summary stepSummary
	var err error
	if summary.max, err = stats.Max(steps); err != nil {
		return stepSummary{}, err
	}
	if summary.mean, err = stats.Mean(steps); err != nil {
		return stepSummary{}, err
	}
	if summary.p95, err = stats.Percentile(steps, 95); err != nil {
		return stepSummary{}, err
	}
	return summary, nil
}

// renderPath prints a table of the joint path, marking the sparse points.
func renderPath(sparse []sparseplan.SolutionEntry, path []trajectory.JointPoint) string {
	isSparse := lo.SliceToMap(sparse, func(entry sparseplan.SolutionEntry) (trajectory.ID, bool) {
		return entry.Point.ID(), true
	})
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "ID", "Sparse", "Joints"})
	for i, jp := range path {
		joints := lo.Map(jp.Floats(), func(v float64, _ int) string {
			return strconv.FormatFloat(v, 'f', 3, 64)
		})
		marker := ""
		if isSparse[jp.ID] {
			marker = "*"
		}
		t.AppendRow(table.Row{fmt.Sprintf("%d", i), jp.ID.String(), marker, strings.Join(joints, ", ")})
	}
	return t.Render()
}
