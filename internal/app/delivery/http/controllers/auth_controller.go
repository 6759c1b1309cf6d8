package controllers

import (
	"context"
	"net/http"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AuthController struct {
	Log            *zap.Logger
	AuthUsecase    contracts.AuthUsecase
	InternalConfig *config.InternalConfig
}

var (
	authControllerInstance *AuthController
	onceAuthController     sync.Once
)

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase, internalConfig *config.InternalConfig) *AuthController {
	onceAuthController.Do(func() {
		authControllerInstance = &AuthController{
			Log:            logger,
			AuthUsecase:    authUsecase,
			InternalConfig: internalConfig,
		}
	})
	return authControllerInstance
}

func (ctrl *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.RegisterUser)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	// Sanitize request
	utils.SanitizeRegisterUserRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	// Send it to be processed by usecase
	result, err := ctrl.AuthUsecase.RegisterUser(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SignupSuccessMessage, result)
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	request := new(requests.LoginUser)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeLoginUserRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.AuthUsecase.LoginUser(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccessMessage, result)
}

func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	err = ctrl.AuthUsecase.LogoutUser(ctx, session)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LogoutSuccessMessage, nil)
}
