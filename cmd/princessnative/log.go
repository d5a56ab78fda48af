package main

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"github.com/Lymia/PrincessEdit/native/config"
)

// newLogger builds a zap-backed slog logger writing to stderr.
func newLogger(cfg config.LogConfig) (*slog.Logger, error) {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel(lvl))
	zcfg.Sampling = nil
	if cfg.Format == "console" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zl, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return slog.New(zapslog.NewHandler(zl.Core(),
		zapslog.WithName("princess-native"),
		zapslog.WithCaller(true),
		zapslog.AddStacktraceAt(slog.LevelError),
	)), nil
}

func zapLevel(l slog.Level) zapcore.Level {
	switch {
	case l >= slog.LevelError:
		return zapcore.ErrorLevel
	case l >= slog.LevelWarn:
		return zapcore.WarnLevel
	case l >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
