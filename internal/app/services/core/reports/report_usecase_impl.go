package reports

import (
	"bytes"
	"context"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	defaultReportModel         = "gpt-4o-mini"
	defaultReportTemperature   = 0.7
	defaultReportMaxRetries    = 3
	defaultReportRetryDelay    = 5 * time.Second
	defaultReportURLExpiryTime = 24 * time.Hour
)

type reportUsecase struct {
	UserRepository    contracts.UserRepository
	ProfileRepository contracts.ProfileRepository
	RecordRepository  contracts.RecordRepository
	OpenAIClient      contracts.OpenAIClient
	Storage           contracts.Storage
	EventPublisher    contracts.EventPublisher
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
	now               func() time.Time
	sleep             func(ctx context.Context, d time.Duration) error
}

var (
	reportUsecaseInstance contracts.ReportUsecase
	onceReportUsecase     sync.Once
)

func NewReportUsecase(
	userRepository contracts.UserRepository,
	profileRepository contracts.ProfileRepository,
	recordRepository contracts.RecordRepository,
	openAIClient contracts.OpenAIClient,
	storage contracts.Storage,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ReportUsecase {
	onceReportUsecase.Do(func() {
		reportUsecaseInstance = &reportUsecase{
			UserRepository:    userRepository,
			ProfileRepository: profileRepository,
			RecordRepository:  recordRepository,
			OpenAIClient:      openAIClient,
			Storage:           storage,
			EventPublisher:    eventPublisher,
			InternalConfig:    internalConfig,
			Log:               logger,
			now:               time.Now,
			sleep:             sleepContext,
		}
	})
	return reportUsecaseInstance
}

// GenerateReport builds the health report of the user, stores it as a JSON
// document and returns it together with a presigned download URL.
func (uc *reportUsecase) GenerateReport(ctx context.Context, session *models.Session, request *requests.GenerateReport) (*responses.ReportGenerated, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reportUsecase.GenerateReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if request.IncludeNarrative && !uc.OpenAIClient.IsConfigured() {
		return nil, exceptions.ErrOpenAINotConfigured(nil)
	}

	user, err := uc.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}
	profile, err := uc.ProfileRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	report := &responses.HealthReport{
		GeneratedAt:   uc.now().UTC(),
		Patient:       buildReportPatient(user, profile),
		Conditions:    buildReportConditions(uc.loadEntries(ctx, session.UserID, dedup.CategoryConditions)),
		FamilyHistory: buildReportFamilyHistory(uc.loadEntries(ctx, session.UserID, dedup.CategoryFamilyHistory)),
	}
	report.TotalConditions = len(report.Conditions)
	if report.TotalConditions == 0 && len(report.FamilyHistory) == 0 {
		return nil, exceptions.ErrReportWithoutData(nil)
	}

	if request.IncludeNarrative {
		narrative, err := uc.generateNarrative(ctx, report)
		if err != nil {
			return nil, err
		}
		report.Narrative = narrative
	}

	document, err := json.Marshal(report)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	bucketName := uc.InternalConfig.Minio.BucketName
	objectName := utils.GenerateReportObjectName(session.UserID, report.GeneratedAt)
	_, err = uc.Storage.PutObject(ctx, bucketName, objectName, bytes.NewReader(document), int64(len(document)), constvars.MIMEApplicationJSON)
	if err != nil {
		return nil, err
	}

	expiry := uc.urlExpiry()
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, expiry)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Type:   constvars.EventReportGenerated,
		UserID: session.UserID,
		Payload: map[string]interface{}{
			"object_name":      objectName,
			"total_conditions": report.TotalConditions,
			"family_members":   len(report.FamilyHistory),
			"narrative":        report.Narrative != "",
		},
	}
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Warn("reportUsecase.GenerateReport error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "report_generated", requestID,
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return &responses.ReportGenerated{
		ObjectName:   objectName,
		URL:          url,
		URLExpiresAt: report.GeneratedAt.Add(expiry),
		Report:       report,
	}, nil
}

// generateNarrative retries the completion with a fixed delay between
// attempts and returns the last error once the attempts are used up.
func (uc *reportUsecase) generateNarrative(ctx context.Context, report *responses.HealthReport) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cfg := uc.InternalConfig.OpenAI

	input := &contracts.ChatCompletionInput{
		Model:        cfg.ReportModel,
		SystemPrompt: narrativeSystemPrompt,
		UserPrompt:   buildNarrativePrompt(report),
		Temperature:  float32(cfg.ReportTemperature),
	}
	if input.Model == "" {
		input.Model = defaultReportModel
	}
	if input.Temperature <= 0 {
		input.Temperature = defaultReportTemperature
	}
	attempts := cfg.ReportMaxRetries
	if attempts <= 0 {
		attempts = defaultReportMaxRetries
	}
	delay := time.Duration(cfg.ReportRetryDelayInSeconds) * time.Second
	if delay <= 0 {
		delay = defaultReportRetryDelay
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		narrative, err := uc.OpenAIClient.ChatCompletion(ctx, input)
		if err == nil {
			return narrative, nil
		}
		lastErr = err
		uc.Log.Warn("reportUsecase.generateNarrative attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < attempts {
			if err := uc.sleep(ctx, delay); err != nil {
				return "", exceptions.ErrServerDeadlineExceeded(err)
			}
		}
	}
	return "", lastErr
}

func (uc *reportUsecase) loadEntries(ctx context.Context, userID string, category dedup.Category) []json.RawMessage {
	collection, err := uc.RecordRepository.Get(ctx, userID, category)
	if err != nil {
		uc.Log.Warn("reportUsecase.loadEntries read failed, using empty collection",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCategoryKey, string(category)),
			zap.Error(err),
		)
		return nil
	}
	if collection == nil {
		return nil
	}
	return collection.Entries
}

func (uc *reportUsecase) urlExpiry() time.Duration {
	hours := uc.InternalConfig.Minio.MinioPreSignedUrlObjectExpiryTimeInHours
	if hours <= 0 {
		return defaultReportURLExpiryTime
	}
	return time.Duration(hours) * time.Hour
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
