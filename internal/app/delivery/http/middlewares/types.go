package middlewares

import (
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/services/shared/metrics"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	SessionService contracts.SessionService
	HTTPMetrics    *metrics.HTTPMetrics
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(
	logger *zap.Logger,
	sessionService contracts.SessionService,
	httpMetrics *metrics.HTTPMetrics,
	internalConfig *config.InternalConfig,
) *Middlewares {
	return &Middlewares{
		Log:            logger,
		SessionService: sessionService,
		HTTPMetrics:    httpMetrics,
		InternalConfig: internalConfig,
	}
}
