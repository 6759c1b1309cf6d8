package controllers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ReportController struct {
	Log            *zap.Logger
	ReportUsecase  contracts.ReportUsecase
	InternalConfig *config.InternalConfig
}

var (
	reportControllerInstance *ReportController
	onceReportController     sync.Once
)

func NewReportController(logger *zap.Logger, reportUsecase contracts.ReportUsecase, internalConfig *config.InternalConfig) *ReportController {
	onceReportController.Do(func() {
		reportControllerInstance = &ReportController{
			Log:            logger,
			ReportUsecase:  reportUsecase,
			InternalConfig: internalConfig,
		}
	})
	return reportControllerInstance
}

// GenerateReport accepts an optional JSON body. The narrative query param
// overrides include_narrative when present.
func (ctrl *ReportController) GenerateReport(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.GenerateReport)
	if r.ContentLength > 0 {
		err = json.NewDecoder(r.Body).Decode(request)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
	}
	if narrative := r.URL.Query().Get(constvars.URLQueryParamNarrative); narrative != "" {
		request.IncludeNarrative, err = strconv.ParseBool(narrative)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLQueryParamNarrative))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout(request.IncludeNarrative))
	defer cancel()

	result, err := ctrl.ReportUsecase.GenerateReport(ctx, session, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ReportGeneratedSuccessMessage, result)
}

// timeout leaves room for every narrative attempt and the delays between them.
func (ctrl *ReportController) timeout(includeNarrative bool) time.Duration {
	timeout := requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	if !includeNarrative {
		return timeout
	}

	openAI := ctrl.InternalConfig.OpenAI
	attempts := openAI.ReportMaxRetries
	if attempts <= 0 {
		attempts = 1
	}
	perAttempt := requestTimeout(openAI.RequestTimeoutInSeconds)
	delay := time.Duration(openAI.ReportRetryDelayInSeconds) * time.Second
	return timeout + time.Duration(attempts)*perAttempt + time.Duration(attempts-1)*delay
}
