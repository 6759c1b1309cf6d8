package controllers

import (
	"context"
	"errors"
	"net/http"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

func sessionFromRequest(r *http.Request) (*models.Session, error) {
	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || session == nil {
		return nil, exceptions.ErrSessionNotFound(nil)
	}
	return session, nil
}

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(seconds) * time.Second
}

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
