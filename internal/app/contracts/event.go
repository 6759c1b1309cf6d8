package contracts

import (
	"context"
	"theracare-service/internal/app/models"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *models.Event) error
}
