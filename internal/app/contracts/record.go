package contracts

import (
	"context"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
)

type RecordUsecase interface {
	GetRecords(ctx context.Context, session *models.Session, category string) (*responses.Records, error)
	GetConditionSummary(ctx context.Context, session *models.Session, year string) (*responses.ConditionSummary, error)
	GetFamilyHistorySummary(ctx context.Context, session *models.Session) (*responses.FamilyHistorySummary, error)
	ImportRecords(ctx context.Context, session *models.Session, category string) (*responses.SaveRecords, error)
	SaveBatch(ctx context.Context, session *models.Session, category string, request *requests.SaveRecordsBatch) (*responses.SaveRecords, error)
	AddManualCondition(ctx context.Context, session *models.Session, request *requests.ManualCondition) (*responses.SaveRecords, error)
	AddManualFamilyHistory(ctx context.Context, session *models.Session, request *requests.ManualFamilyHistory) (*responses.SaveRecords, error)
}

// RecordRepository returns a nil collection without error when nothing
// has been stored yet. Put replaces the whole stored document.
type RecordRepository interface {
	Get(ctx context.Context, userID string, category dedup.Category) (*models.RecordCollection, error)
	Put(ctx context.Context, collection *models.RecordCollection) error
}
