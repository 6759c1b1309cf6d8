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
	"go.uber.org/zap"
)

type GatewayController struct {
	Log            *zap.Logger
	GatewayUsecase contracts.GatewayUsecase
	InternalConfig *config.InternalConfig
}

var (
	gatewayControllerInstance *GatewayController
	onceGatewayController     sync.Once
)

func NewGatewayController(logger *zap.Logger, gatewayUsecase contracts.GatewayUsecase, internalConfig *config.InternalConfig) *GatewayController {
	onceGatewayController.Do(func() {
		gatewayControllerInstance = &GatewayController{
			Log:            logger,
			GatewayUsecase: gatewayUsecase,
			InternalConfig: internalConfig,
		}
	})
	return gatewayControllerInstance
}

func (ctrl *GatewayController) SearchPatients(w http.ResponseWriter, r *http.Request) {
	request := &requests.PatientSearch{
		Given:     r.URL.Query().Get(constvars.URLQueryParamGiven),
		Family:    r.URL.Query().Get(constvars.URLQueryParamFamily),
		Birthdate: r.URL.Query().Get(constvars.URLQueryParamBirthdate),
	}
	utils.SanitizePatientSearchRequest(request)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.HealthGorilla.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.GatewayUsecase.SearchPatients(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GatewaySearchSuccessMessage, result)
}

func (ctrl *GatewayController) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamID)
	err := utils.ValidateVar(patientID, "required")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.HealthGorilla.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.GatewayUsecase.GetPatient(ctx, patientID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GatewayPatientSuccessMessage, result)
}

func (ctrl *GatewayController) GetResources(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	err := utils.ValidateVar(patientID, "required")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamPatientID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.HealthGorilla.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.GatewayUsecase.GetResources(ctx, chi.URLParam(r, constvars.URLParamResource), patientID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GatewayResourceSuccessMessage, result)
}
