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

const multipartMemoryLimit = 10 << 20

type AssistantController struct {
	Log              *zap.Logger
	AssistantUsecase contracts.AssistantUsecase
	InternalConfig   *config.InternalConfig
}

var (
	assistantControllerInstance *AssistantController
	onceAssistantController     sync.Once
)

func NewAssistantController(logger *zap.Logger, assistantUsecase contracts.AssistantUsecase, internalConfig *config.InternalConfig) *AssistantController {
	onceAssistantController.Do(func() {
		assistantControllerInstance = &AssistantController{
			Log:              logger,
			AssistantUsecase: assistantUsecase,
			InternalConfig:   internalConfig,
		}
	})
	return assistantControllerInstance
}

func (ctrl *AssistantController) TranscribeAudio(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	err = r.ParseMultipartForm(multipartMemoryLimit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, header, err := r.FormFile(constvars.FormFieldAudio)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}
	request := &requests.TranscribeAudio{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Audio:       file,
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.OpenAI.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.AssistantUsecase.TranscribeAudio(ctx, session, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AssistantTranscribeSuccessMessage, result)
}

func (ctrl *AssistantController) ExtractCondition(w http.ResponseWriter, r *http.Request) {
	request, err := bindExtractInformationRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.OpenAI.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.AssistantUsecase.ExtractCondition(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AssistantExtractSuccessMessage, result)
}

func (ctrl *AssistantController) ExtractFamilyHistory(w http.ResponseWriter, r *http.Request) {
	request, err := bindExtractInformationRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.OpenAI.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.AssistantUsecase.ExtractFamilyHistory(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AssistantExtractSuccessMessage, result)
}

func bindExtractInformationRequest(r *http.Request) (*requests.ExtractInformation, error) {
	request := new(requests.ExtractInformation)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	utils.SanitizeExtractInformationRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return request, nil
}
