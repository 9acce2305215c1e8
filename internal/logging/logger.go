package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a leveled, structured logger writing to stderr so reports on
// stdout stay clean.
type Logger struct {
	*zap.SugaredLogger
}

func NewLogger(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.TimeKey = ""
	if verbose {
		encoderCfg.TimeKey = "T"
		encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return New(zap.New(core))
}

// wraps an existing zap logger
func New(l *zap.Logger) *Logger {
	return &Logger{SugaredLogger: l.Sugar()}
}

// discards everything
func NewNop() *Logger {
	return New(zap.NewNop())
}

// returns a child logger tagged with the given file
func (l *Logger) ForFile(path string) *Logger {
	return &Logger{SugaredLogger: l.With("file", path)}
}
