package logger

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/config"
)

// NewLogrusLogger builds the audit trail logger: one JSON line per
// AuditEvent, appended to the audit file when one is configured.
func NewLogrusLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if driverConfig.Logger.AuditFileName != "" && internalConfig.App.Env == "production" {
		file, err := os.OpenFile(driverConfig.Logger.AuditFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logger.SetOutput(file)
		} else {
			logger.Info("Failed to log to file, using default stdout")
		}
	}
	return logger
}
