package contracts

import (
	"context"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, session *models.Session) (*responses.Profile, error)
	UpsertProfile(ctx context.Context, session *models.Session, request *requests.UpsertProfile) (*responses.Profile, error)
	ImportProfile(ctx context.Context, session *models.Session, patientID string) (*responses.Profile, error)
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
}
