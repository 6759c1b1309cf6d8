package ratelimiter

import (
	"context"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// OutboundLimiter paces calls to one upstream API with a token bucket.
type OutboundLimiter struct {
	upstream string
	limiter  *rate.Limiter
	log      *zap.Logger
}

// NewOutboundLimiter builds a limiter allowing requestsPerSecond with the
// given burst. A non positive rate disables limiting.
func NewOutboundLimiter(upstream string, requestsPerSecond float64, burst int, log *zap.Logger) *OutboundLimiter {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &OutboundLimiter{
		upstream: upstream,
		limiter:  rate.NewLimiter(limit, burst),
		log:      log,
	}
}

// Wait blocks until a token is available or ctx is done.
func (l *OutboundLimiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		l.log.Warn("OutboundLimiter.Wait error waiting for token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEndpointKey, l.upstream),
			zap.Error(err),
		)
		return exceptions.ErrRateLimitWait(err)
	}
	return nil
}
