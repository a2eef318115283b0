package log

import (
	"log"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Setup builds the process-wide logger. Handlers and repositories log through
// otelzap so entries carry the active trace context.
func Setup() *otelzap.Logger {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to setup logger: %v", err)
	}

	logger := otelzap.New(zapLogger, otelzap.WithMinLevel(zap.InfoLevel))
	otelzap.ReplaceGlobals(logger)

	return logger
}
