// Package logger собирает zap-логгер сервиса и симулятора.
package logger

import (
	"fmt"

	"genesis_reels/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New строит логгер по конфигурации. В режиме разработки вывод консольный
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level())
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development() {
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zc.Build()
}

// Must - New для точек входа
func Must(cfg config.LogConfig) *zap.Logger {
	l, err := New(cfg)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	return l
}
