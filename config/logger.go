package config

import (
	"sync"

	"go.uber.org/zap"
)

var (
	appLogger  *zap.Logger
	onceLogger sync.Once
)

// Logger returns the process-wide zap logger. Request logging stays with
// gin's middleware; this one is for service-side events.
func Logger() *zap.Logger {
	onceLogger.Do(func() {
		var err error
		if IsProduction() {
			appLogger, err = zap.NewProduction()
		} else {
			appLogger, err = zap.NewDevelopment()
		}
		if err != nil {
			appLogger = zap.NewNop()
		}
	})
	return appLogger
}
