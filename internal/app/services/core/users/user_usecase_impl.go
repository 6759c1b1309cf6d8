package users

import (
	"context"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository    contracts.UserRepository
	ProfileRepository contracts.ProfileRepository
	RecordRepository  contracts.RecordRepository
	Log               *zap.Logger
}

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

func NewUserUsecase(
	userRepository contracts.UserRepository,
	profileRepository contracts.ProfileRepository,
	recordRepository contracts.RecordRepository,
	logger *zap.Logger,
) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		userUsecaseInstance = &userUsecase{
			UserRepository:    userRepository,
			ProfileRepository: profileRepository,
			RecordRepository:  recordRepository,
			Log:               logger,
		}
	})
	return userUsecaseInstance
}

func (uc *userUsecase) GetUserData(ctx context.Context, session *models.Session) (*responses.UserData, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.GetUserData called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	user, err := uc.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		uc.Log.Error("userUsecase.GetUserData error finding user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	profile, err := uc.ProfileRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		uc.Log.Error("userUsecase.GetUserData error finding profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := &responses.UserData{
		UserInfo:      utils.BuildUserInfoResponse(user),
		Profile:       utils.BuildProfileResponse(profile),
		Conditions:    uc.loadEntries(ctx, session.UserID, dedup.CategoryConditions),
		FamilyHistory: uc.loadEntries(ctx, session.UserID, dedup.CategoryFamilyHistory),
	}

	uc.Log.Info("userUsecase.GetUserData succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntriesCountKey, len(response.Conditions)+len(response.FamilyHistory)),
	)
	return response, nil
}

// loadEntries treats an unreadable collection as empty.
func (uc *userUsecase) loadEntries(ctx context.Context, userID string, category dedup.Category) []json.RawMessage {
	collection, err := uc.RecordRepository.Get(ctx, userID, category)
	if err != nil {
		uc.Log.Warn("userUsecase.loadEntries error reading collection, using empty",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCategoryKey, string(category)),
			zap.Error(err),
		)
		return []json.RawMessage{}
	}
	if collection == nil || collection.Entries == nil {
		return []json.RawMessage{}
	}
	return collection.Entries
}
