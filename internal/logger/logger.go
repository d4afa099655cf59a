// Package logger holds the one zap logger every package writes through.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init picks an encoder by env: JSON for "production", a no-op sink for
// "test", console output otherwise. Later calls are ignored.
func Init(env string) {
	once.Do(func() {
		base, err := build(env)
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar().With("service", "stock-trading-api")
	})
}

func build(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "test":
		return zap.NewNop(), nil
	default:
		return zap.NewDevelopment()
	}
}

// Get hands out the shared logger. Code that runs before main calls Init,
// such as package tests, gets console output.
func Get() *zap.SugaredLogger {
	Init("development")
	return sugar
}

// Sync is deferred by main so JSON entries reach stdout on shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
