package sparseplan

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestNewOptionsFromExtra(t *testing.T) {
	opts, err := NewOptionsFromExtra(map[string]interface{}{
		"sampling":                "4.5",
		"max_replanning_attempts": 7,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.Sampling, test.ShouldEqual, 4.5)
	test.That(t, opts.MaxReplanningAttempts, test.ShouldEqual, 7)
	test.That(t, opts.NumThreads, test.ShouldEqual, defaultNumThreads)

	_, err = NewOptionsFromExtra(map[string]interface{}{"samples": 4})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewOptionsFromExtra(map[string]interface{}{"sampling": -1})
	test.That(t, errors.Is(err, ErrInvalidSamplingParameter), test.ShouldBeTrue)

	_, err = NewOptionsFromExtra(map[string]interface{}{"max_replanning_attempts": -1})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewSparsePlanner(newFakeGraph(t), &Options{}, nil)
	test.That(t, errors.Is(err, ErrInvalidSamplingParameter), test.ShouldBeTrue)
}

func TestPlanMetaTiming(t *testing.T) {
	pm := NewPlanMeta()
	pm.AddTiming("interpolate", time.Second)
	pm.AddTiming("interpolate", 3*time.Second)
	test.That(t, pm.Timing["interpolate"].Calls(), test.ShouldEqual, int64(2))
	test.That(t, pm.Timing["interpolate"].Average(), test.ShouldEqual, 2*time.Second)

	var missing *InvocationCounters
	test.That(t, missing.Calls(), test.ShouldEqual, int64(0))
	test.That(t, missing.Average(), test.ShouldEqual, time.Duration(0))

	var buf bytes.Buffer
	pm.OutputTiming(&buf)
	test.That(t, buf.String(), test.ShouldContainSubstring, "Calls:   2")
}
