package logger

import (
	"os"

	config "github.com/inference-gateway/costgate/config"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	sinks  []*os.File
)

// Init initializes the logger with the specified verbose level.
// Logs always go to stderr: stdout carries the MCP stdio stream.
func Init(verbose bool, cfg *config.Config) {
	level := zapcore.WarnLevel
	if verbose || (cfg != nil && cfg.Logging.Debug) {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	writers := []zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}
	if cfg != nil && cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			sinks = append(sinks, f)
			writers = append(writers, zapcore.AddSync(f))
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(writers...),
		zap.NewAtomicLevelAt(level),
	)

	base := zap.New(core)
	zap.ReplaceGlobals(base)
	logger = base.Sugar()
}

// Close flushes buffered entries and releases file sinks.
func Close() {
	if logger != nil {
		_ = logger.Sync()
	}
	for _, f := range sinks {
		_ = f.Close()
	}
	sinks = nil
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if logger != nil {
		logger.Debugw(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if logger != nil {
		logger.Infow(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if logger != nil {
		logger.Warnw(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	if logger != nil {
		logger.Errorw(msg, args...)
	}
}
