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

type RecordController struct {
	Log            *zap.Logger
	RecordUsecase  contracts.RecordUsecase
	InternalConfig *config.InternalConfig
}

var (
	recordControllerInstance *RecordController
	onceRecordController     sync.Once
)

func NewRecordController(logger *zap.Logger, recordUsecase contracts.RecordUsecase, internalConfig *config.InternalConfig) *RecordController {
	onceRecordController.Do(func() {
		recordControllerInstance = &RecordController{
			Log:            logger,
			RecordUsecase:  recordUsecase,
			InternalConfig: internalConfig,
		}
	})
	return recordControllerInstance
}

func (ctrl *RecordController) GetRecords(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.RecordUsecase.GetRecords(ctx, session, chi.URLParam(r, constvars.URLParamCategory))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordsGetSuccessMessage, result)
}

// GetSummary serves the display view of a category. Only conditions can be
// narrowed down by year.
func (ctrl *RecordController) GetSummary(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	year := r.URL.Query().Get(constvars.URLQueryYear)
	err = utils.ValidateVar(year, "omitempty,year")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLQueryYear))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	var result interface{}
	switch category := chi.URLParam(r, constvars.URLParamCategory); category {
	case constvars.RecordCategoryConditions:
		result, err = ctrl.RecordUsecase.GetConditionSummary(ctx, session, year)
	case constvars.RecordCategoryFamilyHistory:
		result, err = ctrl.RecordUsecase.GetFamilyHistorySummary(ctx, session)
	default:
		err = exceptions.ErrUnknownRecordCategory(nil, category)
	}
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordsSummarySuccessMessage, result)
}

func (ctrl *RecordController) ImportRecords(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.HealthGorilla.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.RecordUsecase.ImportRecords(ctx, session, chi.URLParam(r, constvars.URLParamCategory))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordsSavedSuccessMessage, result)
}

func (ctrl *RecordController) SaveBatch(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SaveRecordsBatch)
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

	result, err := ctrl.RecordUsecase.SaveBatch(ctx, session, chi.URLParam(r, constvars.URLParamCategory), request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordsSavedSuccessMessage, result)
}

func (ctrl *RecordController) AddManualCondition(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ManualCondition)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeManualConditionRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// tokenization goes out to IMO before the save
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.IMO.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.RecordUsecase.AddManualCondition(ctx, session, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordsSavedSuccessMessage, result)
}

func (ctrl *RecordController) AddManualFamilyHistory(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ManualFamilyHistory)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeManualFamilyHistoryRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.RecordUsecase.AddManualFamilyHistory(ctx, session, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordsSavedSuccessMessage, result)
}
