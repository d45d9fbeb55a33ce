package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/trajectory"
)

func writeTrajectory(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trajectory.json")
	test.That(t, os.WriteFile(path, []byte(body), 0o600), test.ShouldBeNil)
	return path
}

func lineTrajectory(n int) string {
	points := make([]string, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, fmt.Sprintf(`{"id": "p%d", "x": %d, "y": 100, "tolerance": 10}`, i, 10*i))
	}
	return `{"points": [` + strings.Join(points, ", ") + `]}`
}

func TestPlanAction(t *testing.T) {
	t.Run("gantry", func(t *testing.T) {
		var out, errOut bytes.Buffer
		path := writeTrajectory(t, lineTrajectory(10))
		err := NewApp(&out, &errOut).Run([]string{"sparseplan", "plan", "--sampling", "3", "--timing", path})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out.String(), test.ShouldContainSubstring, "4 planned, 6 interpolated, 0 promotions")
		test.That(t, out.String(), test.ShouldContainSubstring, "90.000, 100.000, 0.000")
		test.That(t, out.String(), test.ShouldContainSubstring, "sparseSolution:")
		test.That(t, out.String(), test.ShouldContainSubstring, "joint steps: max 10.000, mean 10.000")
		test.That(t, errOut.String(), test.ShouldBeEmpty)
	})

	t.Run("log file and plot", func(t *testing.T) {
		var out, errOut bytes.Buffer
		dir := t.TempDir()
		logFile := filepath.Join(dir, "plan.log")
		plotFile := filepath.Join(dir, "path.png")
		path := writeTrajectory(t, lineTrajectory(10))
		err := NewApp(&out, &errOut).Run([]string{
			"sparseplan", "--log-file", logFile, "plan", "--sampling", "3", "--plot", plotFile, path,
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out.String(), test.ShouldContainSubstring, "joint plot saved to "+plotFile)

		info, err := os.Stat(plotFile)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)

		//nolint:gosec
		logs, err := os.ReadFile(logFile)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, string(logs), test.ShouldContainSubstring, "Sparse planning succeeded with 4 planned and 6 interpolated points")
		test.That(t, string(logs), test.ShouldNotContainSubstring, "refinement")
	})

	t.Run("sampling is clamped to the trajectory", func(t *testing.T) {
		var out, errOut bytes.Buffer
		path := writeTrajectory(t, lineTrajectory(4))
		err := NewApp(&out, &errOut).Run([]string{"sparseplan", "plan", path})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, errOut.String(), test.ShouldContainSubstring, "Warning")
		test.That(t, out.String(), test.ShouldContainSubstring, "4 planned, 0 interpolated")
	})

	t.Run("bad input", func(t *testing.T) {
		var out, errOut bytes.Buffer
		err := NewApp(&out, &errOut).Run([]string{"sparseplan", "plan"})
		test.That(t, err, test.ShouldBeError, "expected exactly one trajectory file")

		path := writeTrajectory(t, lineTrajectory(10))
		err = NewApp(&out, &errOut).Run([]string{"sparseplan", "plan", "--model", "delta", path})
		test.That(t, err.Error(), test.ShouldContainSubstring, "unknown model")

		err = NewApp(&out, &errOut).Run([]string{"sparseplan", "plan", filepath.Join(t.TempDir(), "missing.json")})
		test.That(t, err, test.ShouldNotBeNil)

		path = writeTrajectory(t, `{"points": [{"type": "spline"}]}`)
		err = NewApp(&out, &errOut).Run([]string{"sparseplan", "plan", path})
		test.That(t, err.Error(), test.ShouldContainSubstring, "spline")
	})

	t.Run("unreachable point", func(t *testing.T) {
		var out, errOut bytes.Buffer
		path := writeTrajectory(t, `{"points": [{"x": 0}, {"x": 10}, {"x": 5000}]}`)
		err := NewApp(&out, &errOut).Run([]string{"sparseplan", "plan", "--sampling", "1", path})
		test.That(t, err.Error(), test.ShouldContainSubstring, "planning failed")
	})
}

func TestSchemaAction(t *testing.T) {
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run([]string{"sparseplan", "schema"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, `"points"`)
	test.That(t, out.String(), test.ShouldContainSubstring, `"tolerance"`)
	test.That(t, out.String(), test.ShouldContainSubstring, `"joints"`)
}

func TestSummarizeSteps(t *testing.T) {
	_, err := summarizeSteps(nil)
	test.That(t, err, test.ShouldNotBeNil)

	path := []trajectory.JointPoint{
		trajectory.NewJointPoint(trajectory.NilID, referenceframe.FloatsToInputs([]float64{0, 0})),
		trajectory.NewJointPoint(trajectory.NilID, referenceframe.FloatsToInputs([]float64{3, 4})),
		trajectory.NewJointPoint(trajectory.NilID, referenceframe.FloatsToInputs([]float64{4, 4})),
	}
	steps, err := summarizeSteps(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, steps.max, test.ShouldAlmostEqual, 5)
	test.That(t, steps.mean, test.ShouldAlmostEqual, 3)
}
