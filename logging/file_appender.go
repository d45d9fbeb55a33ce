package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings for file loggers. Sizes are in megabytes.
const (
	fileMaxSize    = 100
	fileMaxBackups = 2
)

// newFileCore returns a core writing JSON lines to a size-rotated file.
func newFileCore(path string) (zapcore.Core, io.Closer) {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSize,
		MaxBackups: fileMaxBackups,
		Compress:   true,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(NewEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(rotator)),
		zap.LevelEnablerFunc(func(zapcore.Level) bool { return true }),
	)
	return core, rotator
}

// NewFileLogger returns a logger that writes level+ logs as JSON lines to path, rotating the file
// when it grows too large. The returned closer releases the file.
func NewFileLogger(name, path string, level Level) (Logger, io.Closer) {
	const inUTC = true
	core, closer := newFileCore(path)
	return &impl{name, NewAtomicLevelAt(level), inUTC, []zapcore.Core{core}}, closer
}
