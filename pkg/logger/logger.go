package logger

import (
	"log"

	"go.uber.org/zap"
)

// New builds the application logger for the given environment. Development
// gets the human-readable console encoder with debug level, everything else
// the production JSON encoder.
func New(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	switch env {
	case "development":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to build zap logger: %v", err)
	}

	return logger
}
