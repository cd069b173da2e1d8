package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/config"
)

// NewZapLogger builds the application logger. Output is JSON on every
// environment so log shipping sees one schema; production additionally
// writes to the configured files.
func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	env := internalConfig.App.Env
	if env == "test" {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(driverConfig.Logger.Level))
	cfg.Development = env == "development"
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cfg.InitialFields = map[string]interface{}{
		"service": internalConfig.App.Name,
		"version": internalConfig.App.Version,
		"env":     env,
	}

	if env == "production" {
		if driverConfig.Logger.OutputFileName != "" {
			cfg.OutputPaths = []string{driverConfig.Logger.OutputFileName}
		}
		if driverConfig.Logger.OutputErrorFileName != "" {
			cfg.ErrorOutputPaths = append(cfg.ErrorOutputPaths, driverConfig.Logger.OutputErrorFileName)
		}
	}

	zapLogger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	return zapLogger
}

func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.InfoLevel
	}
	return parsed
}
