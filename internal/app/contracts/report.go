package contracts

import (
	"context"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
)

type ReportUsecase interface {
	GenerateReport(ctx context.Context, session *models.Session, request *requests.GenerateReport) (*responses.ReportGenerated, error)
}
