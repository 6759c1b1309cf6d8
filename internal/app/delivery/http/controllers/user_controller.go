package controllers

import (
	"context"
	"net/http"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type UserController struct {
	Log            *zap.Logger
	UserUsecase    contracts.UserUsecase
	InternalConfig *config.InternalConfig
}

var (
	userControllerInstance *UserController
	onceUserController     sync.Once
)

func NewUserController(logger *zap.Logger, userUsecase contracts.UserUsecase, internalConfig *config.InternalConfig) *UserController {
	onceUserController.Do(func() {
		instance := &UserController{
			Log:            logger,
			UserUsecase:    userUsecase,
			InternalConfig: internalConfig,
		}
		userControllerInstance = instance
	})
	return userControllerInstance
}

func (ctrl *UserController) GetUserData(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("UserController.GetUserData called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		ctrl.Log.Error("UserController.GetUserData session not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.UserUsecase.GetUserData(ctx, session)
	if err != nil {
		ctrl.Log.Error("UserController.GetUserData error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("UserController.GetUserData succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UserDataGetSuccessMessage, result)
}
