package contracts

import (
	"context"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	RegisterUser(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error)
	LoginUser(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error)
	LogoutUser(ctx context.Context, session *models.Session) error
}
