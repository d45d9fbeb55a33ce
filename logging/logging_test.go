package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestObservedLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)

	logger.Debug("debug", " message")
	logger.Infof("planned %d points", 4)
	logger.Warnw("promoting point", "position", 5, "attempt", 1)

	test.That(t, logs.Len(), test.ShouldEqual, 3)
	entries := logs.All()
	test.That(t, entries[0].Message, test.ShouldEqual, "debug message")
	test.That(t, entries[0].Level, test.ShouldEqual, zapcore.DebugLevel)
	test.That(t, entries[1].Message, test.ShouldEqual, "planned 4 points")
	test.That(t, entries[2].Level, test.ShouldEqual, zapcore.WarnLevel)
	test.That(t, entries[2].ContextMap()["position"], test.ShouldEqual, int64(5))
	test.That(t, entries[2].ContextMap()["attempt"], test.ShouldEqual, int64(1))
}

func TestLevelFiltering(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.SetLevel(WARN)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")
	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
}

func TestSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("graph").Sublogger("solve")

	sub.Info("hello")
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	test.That(t, logs.All()[0].LoggerName, test.ShouldEqual, "graph.solve")

	// Sublogger levels are independent of their parent once created.
	sub.SetLevel(ERROR)
	sub.Info("dropped")
	logger.Info("kept")
	test.That(t, logs.Len(), test.ShouldEqual, 2)
}

func TestUnpairedKey(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Infow("msg", "key")
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	_, ok := logs.All()[0].ContextMap()["key"]
	test.That(t, ok, test.ShouldBeTrue)
}

func TestLevelFromString(t *testing.T) {
	for str, expected := range map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warn":    WARN,
		"warning": WARN,
		"error":   ERROR,
	} {
		level, err := LevelFromString(str)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, expected)
	}

	_, err := LevelFromString("verbose")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLevelJSON(t *testing.T) {
	data, err := WARN.MarshalJSON()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, `"warn"`)

	var level Level
	test.That(t, level.UnmarshalJSON([]byte(`"error"`)), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, ERROR)
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.log")
	logger, closer := NewFileLogger("sparseplan", path, INFO)
	defer func() {
		test.That(t, closer.Close(), test.ShouldBeNil)
	}()

	logger.Debug("dropped")
	logger.Sublogger("planner").Infow("sampled", "points", 4)
	test.That(t, logger.Sync(), test.ShouldBeNil)

	//nolint:gosec
	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	test.That(t, len(lines), test.ShouldEqual, 1)
	test.That(t, lines[0], test.ShouldContainSubstring, `"logger":"sparseplan.planner"`)
	test.That(t, lines[0], test.ShouldContainSubstring, `"msg":"sampled"`)
	test.That(t, lines[0], test.ShouldContainSubstring, `"points":4`)
}
