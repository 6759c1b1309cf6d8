package records

import (
	"context"
	"fmt"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/fhir_dto"
	"theracare-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	defaultRecordLockExpiry = 10 * time.Second
	recordUnlockTimeout     = 3 * time.Second
)

type recordUsecase struct {
	RecordRepository    contracts.RecordRepository
	ProfileRepository   contracts.ProfileRepository
	ClinicalDataFetcher contracts.ClinicalDataFetcher
	TerminologyUsecase  contracts.TerminologyUsecase
	LockerService       contracts.LockerService
	EventPublisher      contracts.EventPublisher
	RecordMetrics       contracts.RecordMetrics
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

var (
	recordUsecaseInstance contracts.RecordUsecase
	onceRecordUsecase     sync.Once
)

func NewRecordUsecase(
	recordRepository contracts.RecordRepository,
	profileRepository contracts.ProfileRepository,
	clinicalDataFetcher contracts.ClinicalDataFetcher,
	terminologyUsecase contracts.TerminologyUsecase,
	lockerService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	recordMetrics contracts.RecordMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.RecordUsecase {
	onceRecordUsecase.Do(func() {
		recordUsecaseInstance = &recordUsecase{
			RecordRepository:    recordRepository,
			ProfileRepository:   profileRepository,
			ClinicalDataFetcher: clinicalDataFetcher,
			TerminologyUsecase:  terminologyUsecase,
			LockerService:       lockerService,
			EventPublisher:      eventPublisher,
			RecordMetrics:       recordMetrics,
			InternalConfig:      internalConfig,
			Log:                 logger,
		}
	})
	return recordUsecaseInstance
}

func (uc *recordUsecase) GetRecords(ctx context.Context, session *models.Session, category string) (*responses.Records, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("recordUsecase.GetRecords called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingCategoryKey, category),
	)

	recordCategory, ok := dedup.ParseCategory(category)
	if !ok {
		return nil, exceptions.ErrUnknownRecordCategory(nil, category)
	}

	collection := uc.loadCollection(ctx, session.UserID, recordCategory)
	result := &responses.Records{
		Category:  category,
		GorillaID: collection.GorillaID,
	}
	if recordCategory == dedup.CategoryFamilyHistory {
		result.Bundle = fhir_dto.FHIRBundle{
			ResourceType: constvars.ResourceBundle,
			Type:         constvars.FhirBundleTypeSearchset,
			Total:        len(collection.Entries),
			Entry:        nonNilEntries(collection.Entries),
		}
	} else {
		result.Entries = nonNilEntries(collection.Entries)
	}

	uc.Log.Info("recordUsecase.GetRecords succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntriesCountKey, len(collection.Entries)),
	)
	return result, nil
}

func (uc *recordUsecase) GetConditionSummary(ctx context.Context, session *models.Session, year string) (*responses.ConditionSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("recordUsecase.GetConditionSummary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	collection := uc.loadCollection(ctx, session.UserID, dedup.CategoryConditions)
	return buildConditionSummary(collection.Entries, year), nil
}

func (uc *recordUsecase) GetFamilyHistorySummary(ctx context.Context, session *models.Session) (*responses.FamilyHistorySummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("recordUsecase.GetFamilyHistorySummary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	collection := uc.loadCollection(ctx, session.UserID, dedup.CategoryFamilyHistory)
	return buildFamilyHistorySummary(collection.Entries), nil
}

// ImportRecords pulls the category from the clinical data gateway for the
// patient linked to the profile and saves it with deduplication.
func (uc *recordUsecase) ImportRecords(ctx context.Context, session *models.Session, category string) (*responses.SaveRecords, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("recordUsecase.ImportRecords called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingCategoryKey, category),
	)

	recordCategory, ok := dedup.ParseCategory(category)
	if !ok {
		return nil, exceptions.ErrUnknownRecordCategory(nil, category)
	}

	profile, err := uc.ProfileRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrProfileNotExist(nil)
	}
	if !profile.IsImported() {
		return nil, exceptions.ErrProfileNotImported(nil)
	}

	batch := uc.ClinicalDataFetcher.FetchEntries(ctx, *profile.GorillaID, recordCategory)
	return uc.saveBatch(ctx, session.UserID, profile.GorillaID, recordCategory, batch)
}

func (uc *recordUsecase) SaveBatch(ctx context.Context, session *models.Session, category string, request *requests.SaveRecordsBatch) (*responses.SaveRecords, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("recordUsecase.SaveBatch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingCategoryKey, category),
	)

	recordCategory, ok := dedup.ParseCategory(category)
	if !ok {
		return nil, exceptions.ErrUnknownRecordCategory(nil, category)
	}
	return uc.saveBatch(ctx, session.UserID, nil, recordCategory, request.Entries)
}

func (uc *recordUsecase) AddManualCondition(ctx context.Context, session *models.Session, request *requests.ManualCondition) (*responses.SaveRecords, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("recordUsecase.AddManualCondition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	var tokenized json.RawMessage
	if request.ConditionText != "" {
		tokenized = uc.tokenize(ctx, request.ConditionText)
	}

	entry, err := json.Marshal(buildConditionEntry(request, tokenized))
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return uc.saveBatch(ctx, session.UserID, nil, dedup.CategoryConditions, []json.RawMessage{entry})
}

func (uc *recordUsecase) AddManualFamilyHistory(ctx context.Context, session *models.Session, request *requests.ManualFamilyHistory) (*responses.SaveRecords, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("recordUsecase.AddManualFamilyHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	history, err := buildFamilyHistoryEntry(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	entry, err := json.Marshal(history)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return uc.saveBatch(ctx, session.UserID, nil, dedup.CategoryFamilyHistory, []json.RawMessage{entry})
}

// saveBatch runs the deduplicating read-modify-write of one collection under
// a per user and category lock.
func (uc *recordUsecase) saveBatch(ctx context.Context, userID string, gorillaID *string, category dedup.Category, batch []json.RawMessage) (*responses.SaveRecords, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	lockKey := fmt.Sprintf(constvars.RedisRecordLockKeyFormat, userID, category)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, uc.lockExpiry())
	if err != nil {
		return nil, err
	}
	if !acquired {
		uc.Log.Warn("recordUsecase.saveBatch another save in progress",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
		)
		return nil, exceptions.ErrRecordSaveInProgress(nil, lockKey)
	}
	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordUnlockTimeout)
		defer cancel()
		if err := uc.LockerService.Unlock(unlockCtx, lockKey, lockValue); err != nil {
			uc.Log.Warn("recordUsecase.saveBatch error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	collection := uc.loadCollection(ctx, userID, category)
	partition := dedup.PartitionBatch(collection.Entries, batch, category)
	for _, duplicate := range partition.Duplicates {
		uc.Log.Debug("recordUsecase.saveBatch skipping duplicate entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Any(constvars.LoggingDuplicateKeyKey, dedup.ExtractKey(duplicate, category).Map()),
		)
	}
	result := &responses.SaveRecords{
		Category:   string(category),
		Duplicates: len(partition.Duplicates),
		Added:      len(partition.New),
		Total:      len(collection.Entries),
	}

	if len(partition.New) > 0 {
		collection.Entries = dedup.Merge(collection.Entries, partition.New)
		if gorillaID != nil {
			collection.GorillaID = gorillaID
		}
		collection.SetUpdatedAt()
		if err := uc.RecordRepository.Put(ctx, collection); err != nil {
			uc.Log.Error("recordUsecase.saveBatch error writing collection",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		result.Total = len(collection.Entries)
	}

	uc.RecordMetrics.ObserveSave(string(category), result.Duplicates, result.Added)
	if result.Added > 0 {
		uc.publish(ctx, &models.Event{
			Type:   constvars.EventRecordsSaved,
			UserID: userID,
			Payload: map[string]interface{}{
				"category":   result.Category,
				"duplicates": result.Duplicates,
				"added":      result.Added,
				"total":      result.Total,
			},
		})
	}

	utils.LogBusinessEvent(uc.Log, "records_saved", requestID,
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingCategoryKey, result.Category),
		zap.Int(constvars.LoggingDuplicatesCountKey, result.Duplicates),
		zap.Int(constvars.LoggingAddedCountKey, result.Added),
	)
	return result, nil
}

// loadCollection never fails: an absent collection and a failed read both
// give an empty one for the user and category.
func (uc *recordUsecase) loadCollection(ctx context.Context, userID string, category dedup.Category) *models.RecordCollection {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	collection, err := uc.RecordRepository.Get(ctx, userID, category)
	if err != nil {
		uc.Log.Warn("recordUsecase.loadCollection read failed, using empty collection",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCategoryKey, string(category)),
			zap.Error(err),
		)
		collection = nil
	}
	if collection == nil {
		collection = &models.RecordCollection{UserID: userID, Category: string(category)}
		collection.SetCreatedAtUpdatedAt()
	}
	return collection
}

func (uc *recordUsecase) tokenize(ctx context.Context, text string) json.RawMessage {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	entities, err := uc.TerminologyUsecase.Tokenize(ctx, &requests.Tokenize{Text: text})
	if err != nil {
		uc.Log.Warn("recordUsecase.tokenize failed, saving without tokenized data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil
	}
	data, err := json.Marshal(entities)
	if err != nil {
		return nil
	}
	return data
}

func (uc *recordUsecase) publish(ctx context.Context, event *models.Event) {
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Warn("recordUsecase.publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventKey, event.Type),
			zap.Error(err),
		)
	}
}

func (uc *recordUsecase) lockExpiry() time.Duration {
	if uc.InternalConfig == nil || uc.InternalConfig.Records.LockExpiryInSeconds <= 0 {
		return defaultRecordLockExpiry
	}
	return time.Duration(uc.InternalConfig.Records.LockExpiryInSeconds) * time.Second
}

func nonNilEntries(entries []json.RawMessage) []json.RawMessage {
	if entries == nil {
		return []json.RawMessage{}
	}
	return entries
}
