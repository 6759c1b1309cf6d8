package assistant

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const defaultAudioMaxUploadSizeInMB = 25

type assistantUsecase struct {
	OpenAIClient   contracts.OpenAIClient
	Storage        contracts.Storage
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	assistantUsecaseInstance contracts.AssistantUsecase
	onceAssistantUsecase     sync.Once
)

func NewAssistantUsecase(
	openAIClient contracts.OpenAIClient,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AssistantUsecase {
	onceAssistantUsecase.Do(func() {
		assistantUsecaseInstance = &assistantUsecase{
			OpenAIClient:   openAIClient,
			Storage:        storage,
			InternalConfig: internalConfig,
			Log:            logger,
		}
	})
	return assistantUsecaseInstance
}

// TranscribeAudio archives the uploaded audio and returns its transcription.
// A failed upload is logged and does not stop the transcription.
func (uc *assistantUsecase) TranscribeAudio(ctx context.Context, session *models.Session, request *requests.TranscribeAudio) (*responses.Transcription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assistantUsecase.TranscribeAudio called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if !uc.OpenAIClient.IsConfigured() {
		return nil, exceptions.ErrOpenAINotConfigured(nil)
	}

	maxBytes := uc.maxAudioBytes()
	audio, err := io.ReadAll(io.LimitReader(request.Audio, maxBytes+1))
	if err != nil {
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}
	if int64(len(audio)) > maxBytes {
		return nil, exceptions.ErrAudioTooLarge(nil, maxBytes)
	}

	result := &responses.Transcription{}
	objectName := utils.GenerateAudioObjectName(session.UserID, filepath.Ext(request.FileName))
	_, err = uc.Storage.PutObject(ctx, uc.InternalConfig.Minio.BucketName, objectName, bytes.NewReader(audio), int64(len(audio)), request.ContentType)
	if err != nil {
		uc.Log.Warn("assistantUsecase.TranscribeAudio error archiving audio",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else {
		result.ObjectName = objectName
	}

	text, err := uc.OpenAIClient.Transcribe(ctx, request.FileName, bytes.NewReader(audio))
	if err != nil {
		return nil, err
	}
	result.Text = text

	uc.Log.Info("assistantUsecase.TranscribeAudio succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, result.ObjectName),
	)
	return result, nil
}

func (uc *assistantUsecase) ExtractCondition(ctx context.Context, request *requests.ExtractInformation) (*responses.ExtractedCondition, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assistantUsecase.ExtractCondition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	answer, err := uc.extract(ctx, conditionExtractionPrompt, request.Text, conditionFields)
	if err != nil {
		return nil, err
	}

	result := &responses.ExtractedCondition{
		ConditionName:     nullableString(answer.Get("condition_name")),
		ConditionText:     nullableString(answer.Get("condition_text")),
		RecordedDate:      nullableString(answer.Get("recorded_date")),
		ClinicalStatus:    nullableString(answer.Get("clinical_status")),
		Category:          nullableString(answer.Get("category")),
		OnsetDate:         nullableString(answer.Get("onset_date")),
		IsRelevant:        true,
		RelevanceFeedback: answer.Get("relevance_feedback").String(),
	}

	uc.Log.Info("assistantUsecase.ExtractCondition succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return result, nil
}

func (uc *assistantUsecase) ExtractFamilyHistory(ctx context.Context, request *requests.ExtractInformation) (*responses.ExtractedFamilyHistory, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assistantUsecase.ExtractFamilyHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	answer, err := uc.extract(ctx, familyHistoryExtractionPrompt, request.Text, familyHistoryFields)
	if err != nil {
		return nil, err
	}

	result := &responses.ExtractedFamilyHistory{
		Relationship:      nullableString(answer.Get("relationship")),
		Gender:            nullableString(answer.Get("gender")),
		BirthYear:         nullableString(answer.Get("birth_year")),
		Conditions:        []responses.ExtractedFamilyCondition{},
		Notes:             nullableString(answer.Get("notes")),
		IsRelevant:        true,
		RelevanceFeedback: answer.Get("relevance_feedback").String(),
	}
	for _, condition := range answer.Get("conditions").Array() {
		if err := checkFields(condition, familyConditionFields); err != nil {
			uc.Log.Error("assistantUsecase.ExtractFamilyHistory error invalid condition",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrOpenAIInvalidPayload(err)
		}
		extracted := responses.ExtractedFamilyCondition{
			Name:           condition.Get("name").String(),
			IsCauseOfDeath: condition.Get("is_cause_of_death").Bool(),
		}
		if age := condition.Get("age_at_onset"); age.Type == gjson.Number {
			value := int(age.Int())
			extracted.AgeAtOnset = &value
		}
		result.Conditions = append(result.Conditions, extracted)
	}

	uc.Log.Info("assistantUsecase.ExtractFamilyHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntriesCountKey, len(result.Conditions)),
	)
	return result, nil
}

// extract asks the model for a JSON answer and checks it against rules. An
// answer marked as not relevant is returned as an error carrying the model
// feedback.
func (uc *assistantUsecase) extract(ctx context.Context, systemPrompt, text string, rules []fieldRule) (gjson.Result, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if strings.TrimSpace(text) == "" {
		return gjson.Result{}, exceptions.ErrMissingText(nil)
	}

	model := uc.InternalConfig.OpenAI.ExtractionModel
	if model == "" {
		model = constvars.OpenAIModelExtraction
	}
	content, err := uc.OpenAIClient.ChatCompletion(ctx, &contracts.ChatCompletionInput{
		Model:        model,
		SystemPrompt: systemPrompt,
		UserPrompt:   text,
		Temperature:  constvars.OpenAITemperature,
	})
	if err != nil {
		return gjson.Result{}, err
	}

	content = stripCodeFences(content)
	if !gjson.Valid(content) {
		uc.Log.Error("assistantUsecase.extract error answer is not JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return gjson.Result{}, exceptions.ErrOpenAIInvalidPayload(nil)
	}
	answer := gjson.Parse(content)

	if relevant := answer.Get("is_relevant"); relevant.IsBool() && !relevant.Bool() {
		feedback := answer.Get("relevance_feedback").String()
		if feedback == "" {
			feedback = constvars.ErrClientAssistantCannotUnderstand
		}
		uc.Log.Info("assistantUsecase.extract input not relevant",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return gjson.Result{}, exceptions.ErrOpenAIInputNotRelevant(nil, feedback)
	}

	if err := checkFields(answer, rules); err != nil {
		uc.Log.Error("assistantUsecase.extract error invalid answer",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return gjson.Result{}, exceptions.ErrOpenAIInvalidPayload(err)
	}
	return answer, nil
}

func (uc *assistantUsecase) maxAudioBytes() int64 {
	megabytes := uc.InternalConfig.Minio.AudioMaxUploadSizeInMB
	if megabytes <= 0 {
		megabytes = defaultAudioMaxUploadSizeInMB
	}
	return int64(megabytes) << 20
}

func nullableString(value gjson.Result) *string {
	if value.Type != gjson.String {
		return nil
	}
	text := value.Str
	return &text
}
