package controllers

import (
	"context"
	"net/http"
	"strings"
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

type TerminologyController struct {
	Log                *zap.Logger
	TerminologyUsecase contracts.TerminologyUsecase
	InternalConfig     *config.InternalConfig
}

var (
	terminologyControllerInstance *TerminologyController
	onceTerminologyController     sync.Once
)

func NewTerminologyController(logger *zap.Logger, terminologyUsecase contracts.TerminologyUsecase, internalConfig *config.InternalConfig) *TerminologyController {
	onceTerminologyController.Do(func() {
		terminologyControllerInstance = &TerminologyController{
			Log:                logger,
			TerminologyUsecase: terminologyUsecase,
			InternalConfig:     internalConfig,
		}
	})
	return terminologyControllerInstance
}

func (ctrl *TerminologyController) Search(w http.ResponseWriter, r *http.Request) {
	request := &requests.TerminologySearch{
		Text:   r.URL.Query().Get(constvars.URLQueryParamText),
		Domain: r.URL.Query().Get(constvars.URLQueryParamDomain),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.IMO.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.TerminologyUsecase.Search(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TerminologySearchSuccessMessage, result)
}

func (ctrl *TerminologyController) Tokenize(w http.ResponseWriter, r *http.Request) {
	request, err := bindTokenizeRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.IMO.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.TerminologyUsecase.Tokenize(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TerminologyTokenizeSuccessMessage, result)
}

// bindTokenizeRequest reads the text from the query string first, then from
// a JSON or form body.
func bindTokenizeRequest(r *http.Request) (*requests.Tokenize, error) {
	request := &requests.Tokenize{Text: r.URL.Query().Get(constvars.URLQueryParamText)}
	if request.Text != "" || r.Method != constvars.MethodPost {
		return request, nil
	}

	contentType := r.Header.Get(constvars.HeaderContentType)
	switch {
	case strings.HasPrefix(contentType, constvars.MIMEApplicationJSON):
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
	case strings.HasPrefix(contentType, constvars.MIMEApplicationForm):
		if err := r.ParseForm(); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		request.Text = r.PostForm.Get(constvars.FormFieldText)
	}
	return request, nil
}
