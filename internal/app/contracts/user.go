package contracts

import (
	"context"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/dto/responses"
)

type UserUsecase interface {
	GetUserData(ctx context.Context, session *models.Session) (*responses.UserData, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
}
