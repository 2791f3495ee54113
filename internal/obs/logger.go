// Package obs builds the process logger and holds the Prometheus metrics
// shared by the server packages.
package obs

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger returns a production logger when APP_ENV=production and a
// development logger otherwise. Debug enables debug output in production.
func NewLogger(debug bool) *zap.Logger {
	if os.Getenv("APP_ENV") != "production" {
		return zap.Must(zap.NewDevelopment())
	}

	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.Must(cfg.Build())
}

// DefaultLogger is what components fall back to when their params carry no
// logger.
func DefaultLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.Must(zap.NewDevelopment())
	}
	return logger
}
