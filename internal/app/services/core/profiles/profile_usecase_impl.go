package profiles

import (
	"context"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type profileUsecase struct {
	ProfileRepository contracts.ProfileRepository
	GatewayUsecase    contracts.GatewayUsecase
	Log               *zap.Logger
}

var (
	profileUsecaseInstance contracts.ProfileUsecase
	onceProfileUsecase     sync.Once
)

func NewProfileUsecase(
	profileRepository contracts.ProfileRepository,
	gatewayUsecase contracts.GatewayUsecase,
	logger *zap.Logger,
) contracts.ProfileUsecase {
	onceProfileUsecase.Do(func() {
		profileUsecaseInstance = &profileUsecase{
			ProfileRepository: profileRepository,
			GatewayUsecase:    gatewayUsecase,
			Log:               logger,
		}
	})
	return profileUsecaseInstance
}

func (uc *profileUsecase) GetProfile(ctx context.Context, session *models.Session) (*responses.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("profileUsecase.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	profile, err := uc.ProfileRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrProfileNotExist(nil)
	}

	return utils.BuildProfileResponse(profile), nil
}

func (uc *profileUsecase) UpsertProfile(ctx context.Context, session *models.Session, request *requests.UpsertProfile) (*responses.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("profileUsecase.UpsertProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	profile := &models.Profile{
		UserID:      session.UserID,
		GorillaID:   request.GorillaID,
		ProfileData: request.ProfileData,
	}
	if err := uc.ProfileRepository.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	uc.Log.Info("profileUsecase.UpsertProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("is_imported", profile.IsImported()),
	)
	return utils.BuildProfileResponse(profile), nil
}

// ImportProfile replaces the stored profile with the gateway Patient and
// links it through the patient id.
func (uc *profileUsecase) ImportProfile(ctx context.Context, session *models.Session, patientID string) (*responses.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("profileUsecase.ImportProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.GatewayUsecase.GetPatient(ctx, patientID)
	if err != nil {
		uc.Log.Error("profileUsecase.ImportProfile error fetching patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	gorillaID := patientID
	profile := &models.Profile{
		UserID:      session.UserID,
		GorillaID:   &gorillaID,
		ProfileData: patient,
	}
	if err := uc.ProfileRepository.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "profile_imported", requestID,
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingGorillaIDKey, gorillaID),
	)
	return utils.BuildProfileResponse(profile), nil
}
