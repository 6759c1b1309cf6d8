package records

import (
	"context"
	"database/sql"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/queries"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type recordPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	recordPostgresRepositoryInstance contracts.RecordRepository
	onceRecordPostgresRepository     sync.Once
)

func NewRecordPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.RecordRepository {
	onceRecordPostgresRepository.Do(func() {
		recordPostgresRepositoryInstance = &recordPostgresRepository{
			DB:  db,
			Log: logger,
		}
	})
	return recordPostgresRepositoryInstance
}

func (r *recordPostgresRepository) Get(ctx context.Context, userID string, category dedup.Category) (*models.RecordCollection, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("recordPostgresRepository.Get called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingCategoryKey, string(category)),
	)

	var (
		collection models.RecordCollection
		gorillaID  sql.NullString
		entries    []byte
	)
	err := r.DB.QueryRowContext(ctx, queries.FindRecordCollectionQuery, userID, string(category)).Scan(
		&collection.UserID, &collection.Category, &gorillaID, &entries, &collection.CreatedAt, &collection.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("recordPostgresRepository.Get no rows found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return nil, nil
		}
		r.Log.Error("recordPostgresRepository.Get error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	if gorillaID.Valid {
		collection.GorillaID = &gorillaID.String
	}
	collection.Entries = dedup.Entries(entries)

	r.Log.Info("recordPostgresRepository.Get succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntriesCountKey, len(collection.Entries)),
	)
	return &collection, nil
}

func (r *recordPostgresRepository) Put(ctx context.Context, collection *models.RecordCollection) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("recordPostgresRepository.Put called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, collection.UserID),
		zap.String(constvars.LoggingCategoryKey, collection.Category),
	)

	entries := collection.Entries
	if entries == nil {
		entries = []json.RawMessage{}
	}
	document, err := json.Marshal(entries)
	if err != nil {
		r.Log.Error("recordPostgresRepository.Put error marshalling entries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	var gorillaID sql.NullString
	if collection.GorillaID != nil {
		gorillaID = sql.NullString{String: *collection.GorillaID, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, queries.ReplaceRecordCollectionQuery,
		collection.UserID, collection.Category, gorillaID, document,
	)
	if err != nil {
		r.Log.Error("recordPostgresRepository.Put error replacing collection",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpsertData(err)
	}

	r.Log.Info("recordPostgresRepository.Put succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntriesCountKey, len(entries)),
	)
	return nil
}
