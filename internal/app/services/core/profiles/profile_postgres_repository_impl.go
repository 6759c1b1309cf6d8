package profiles

import (
	"context"
	"database/sql"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/queries"

	"go.uber.org/zap"
)

type profilePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	profilePostgresRepositoryInstance contracts.ProfileRepository
	onceProfilePostgresRepository     sync.Once
)

func NewProfilePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ProfileRepository {
	onceProfilePostgresRepository.Do(func() {
		profilePostgresRepositoryInstance = &profilePostgresRepository{
			DB:  db,
			Log: logger,
		}
	})
	return profilePostgresRepositoryInstance
}

func (r *profilePostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("profilePostgresRepository.FindByUserID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	var (
		profile     models.Profile
		gorillaID   sql.NullString
		profileData []byte
	)
	err := r.DB.QueryRowContext(ctx, queries.FindProfileByUserIDQuery, userID).Scan(
		&profile.UserID, &gorillaID, &profileData, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("profilePostgresRepository.FindByUserID no rows found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return nil, nil
		}
		r.Log.Error("profilePostgresRepository.FindByUserID error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	if gorillaID.Valid {
		profile.GorillaID = &gorillaID.String
	}
	profile.ProfileData = profileData

	r.Log.Info("profilePostgresRepository.FindByUserID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &profile, nil
}

func (r *profilePostgresRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("profilePostgresRepository.Upsert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, profile.UserID),
	)

	var gorillaID sql.NullString
	if profile.GorillaID != nil && *profile.GorillaID != "" {
		gorillaID = sql.NullString{String: *profile.GorillaID, Valid: true}
	}

	err := r.DB.QueryRowContext(ctx, queries.UpsertProfileQuery,
		profile.UserID, gorillaID, []byte(profile.ProfileData),
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		r.Log.Error("profilePostgresRepository.Upsert error upserting profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpsertData(err)
	}

	r.Log.Info("profilePostgresRepository.Upsert succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}
