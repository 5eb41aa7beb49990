package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger writing to stderr. level is one of
// debug / info / warn / error; json switches the console encoder for the
// production JSON one. The returned func flushes buffered entries.
func New(level string, json bool) (*zap.Logger, func()) {
	enc := consoleEncoder()
	if json {
		enc = jsonEncoder()
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), levelFromString(level))
	l := zap.New(core, zap.AddCaller())
	return l, func() { _ = l.Sync() }
}

func levelFromString(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}
