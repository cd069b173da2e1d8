package middlewares

import (
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/config"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}
}
