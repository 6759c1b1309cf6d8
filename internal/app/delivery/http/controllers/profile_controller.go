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

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ProfileController struct {
	Log            *zap.Logger
	ProfileUsecase contracts.ProfileUsecase
	InternalConfig *config.InternalConfig
}

var (
	profileControllerInstance *ProfileController
	onceProfileController     sync.Once
)

func NewProfileController(logger *zap.Logger, profileUsecase contracts.ProfileUsecase, internalConfig *config.InternalConfig) *ProfileController {
	onceProfileController.Do(func() {
		profileControllerInstance = &ProfileController{
			Log:            logger,
			ProfileUsecase: profileUsecase,
			InternalConfig: internalConfig,
		}
	})
	return profileControllerInstance
}

func (ctrl *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.ProfileUsecase.GetProfile(ctx, session)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileGetSuccessMessage, result)
}

func (ctrl *ProfileController) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpsertProfile)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.ProfileUsecase.UpsertProfile(ctx, session, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileSavedSuccessMessage, result)
}

func (ctrl *ProfileController) ImportProfile(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	err = utils.ValidateVar(patientID, "required")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamPatientID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.HealthGorilla.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.ProfileUsecase.ImportProfile(ctx, session, patientID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileImportedSuccessMessage, result)
}
