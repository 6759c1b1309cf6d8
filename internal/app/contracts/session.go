package contracts

import (
	"context"
	"theracare-service/internal/app/models"
	"time"
)

type SessionService interface {
	CreateSession(ctx context.Context, user *models.User, ttl time.Duration) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
