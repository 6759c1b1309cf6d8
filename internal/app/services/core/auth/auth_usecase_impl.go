package auth

import (
	"context"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const tokenTypeBearer = "Bearer"

type authUsecase struct {
	UserRepository contracts.UserRepository
	SessionService contracts.SessionService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = &authUsecase{
			UserRepository: userRepository,
			SessionService: sessionService,
			InternalConfig: internalConfig,
			Log:            logger,
		}
	})
	return authUsecaseInstance
}

func (uc *authUsecase) RegisterUser(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUsernameKey, request.Username),
	)

	// Check if email or username already exists
	existingUser, err := uc.UserRepository.FindByEmailOrUsername(ctx, request.Email, request.Username)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		if existingUser.Username == request.Username {
			return nil, exceptions.ErrUsernameAlreadyExist(nil)
		}
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterUser error hashing password",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: hashedPassword,
	}

	err = uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "user_registered", requestID,
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)

	return &responses.RegisterUser{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (uc *authUsecase) LoginUser(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LoginUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUsernameKey, request.Username),
	)

	user, err := uc.UserRepository.FindByUsername(ctx, request.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.PasswordHash) {
		uc.Log.Warn("authUsecase.LoginUser invalid credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUsernameKey, request.Username),
		)
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	expiryInHour := uc.InternalConfig.JWT.ExpTimeInHour
	session, err := uc.SessionService.CreateSession(ctx, user, time.Duration(expiryInHour)*time.Hour)
	if err != nil {
		return nil, err
	}

	tokenString, err := utils.GenerateSessionJWT(session.SessionID, user.Username, uc.InternalConfig.JWT.Secret, expiryInHour)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.LoginUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)

	return &responses.LoginUser{
		Token:     tokenString,
		TokenType: tokenTypeBearer,
		ExpiresIn: expiryInHour * 3600,
	}, nil
}

func (uc *authUsecase) LogoutUser(ctx context.Context, session *models.Session) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LogoutUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)
	return uc.SessionService.DeleteSession(ctx, session.SessionID)
}
