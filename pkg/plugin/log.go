package plugin

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerTo builds a console logger writing to w. Levels are colored only
// when w is a terminal.
func LoggerTo(w io.Writer, level zapcore.LevelEnabler) *zap.Logger {
	return newLogger(w, level, isTerminal(w))
}

// Logger logs to stderr.
func Logger(level zapcore.LevelEnabler) *zap.Logger {
	return newLogger(colorable.NewColorableStderr(), level, isTerminal(os.Stderr))
}

func newLogger(w io.Writer, level zapcore.LevelEnabler, color bool) *zap.Logger {
	zapcfg := zap.NewDevelopmentEncoderConfig()
	zapcfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	if color {
		zapcfg.EncodeLevel = zapcore.LowercaseColorLevelEncoder
	}
	zapcfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("15:04:05.000"))
	}

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zapcfg),
		zapcore.AddSync(w),
		level,
	))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
