package records

import (
	"context"
	"errors"
	"testing"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/fhir_dto"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memoryRecordRepository struct {
	collections map[string]*models.RecordCollection
	getErr      error
	putErr      error
	puts        int
}

func newMemoryRecordRepository() *memoryRecordRepository {
	return &memoryRecordRepository{collections: map[string]*models.RecordCollection{}}
}

func (r *memoryRecordRepository) Get(ctx context.Context, userID string, category dedup.Category) (*models.RecordCollection, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	stored, ok := r.collections[userID+"/"+string(category)]
	if !ok {
		return nil, nil
	}
	copied := *stored
	copied.Entries = append([]json.RawMessage(nil), stored.Entries...)
	return &copied, nil
}

func (r *memoryRecordRepository) Put(ctx context.Context, collection *models.RecordCollection) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.puts++
	copied := *collection
	copied.Entries = append([]json.RawMessage(nil), collection.Entries...)
	r.collections[collection.UserID+"/"+collection.Category] = &copied
	return nil
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockClinicalDataFetcher struct {
	mock.Mock
}

func (m *MockClinicalDataFetcher) FetchEntries(ctx context.Context, patientID string, category dedup.Category) []json.RawMessage {
	args := m.Called(ctx, patientID, category)
	entries, _ := args.Get(0).([]json.RawMessage)
	return entries
}

type MockTerminologyUsecase struct {
	mock.Mock
}

func (m *MockTerminologyUsecase) Search(ctx context.Context, request *requests.TerminologySearch) (json.RawMessage, error) {
	args := m.Called(ctx, request)
	items, _ := args.Get(0).(json.RawMessage)
	return items, args.Error(1)
}

func (m *MockTerminologyUsecase) Tokenize(ctx context.Context, request *requests.Tokenize) ([]responses.TokenizedEntity, error) {
	args := m.Called(ctx, request)
	entities, _ := args.Get(0).([]responses.TokenizedEntity)
	return entities, args.Error(1)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRecordMetrics struct {
	mock.Mock
}

func (m *MockRecordMetrics) ObserveSave(category string, duplicates, added int) {
	m.Called(category, duplicates, added)
}

func (m *MockRecordMetrics) ObserveFetchFailure(category string) {
	m.Called(category)
}

type recordUsecaseFixture struct {
	usecase     *recordUsecase
	repository  *memoryRecordRepository
	profiles    *MockProfileRepository
	fetcher     *MockClinicalDataFetcher
	terminology *MockTerminologyUsecase
	locker      *MockLockerService
	publisher   *MockEventPublisher
	metrics     *MockRecordMetrics
	session     *models.Session
}

func newRecordUsecaseFixture() *recordUsecaseFixture {
	f := &recordUsecaseFixture{
		repository:  newMemoryRecordRepository(),
		profiles:    new(MockProfileRepository),
		fetcher:     new(MockClinicalDataFetcher),
		terminology: new(MockTerminologyUsecase),
		locker:      new(MockLockerService),
		publisher:   new(MockEventPublisher),
		metrics:     new(MockRecordMetrics),
		session:     &models.Session{SessionID: "s1", UserID: "u1", Username: "jdoe"},
	}
	f.usecase = &recordUsecase{
		RecordRepository:    f.repository,
		ProfileRepository:   f.profiles,
		ClinicalDataFetcher: f.fetcher,
		TerminologyUsecase:  f.terminology,
		LockerService:       f.locker,
		EventPublisher:      f.publisher,
		RecordMetrics:       f.metrics,
		InternalConfig:      &config.InternalConfig{Records: config.AppRecords{LockExpiryInSeconds: 5}},
		Log:                 zap.NewNop(),
	}
	f.locker.On("TryLock", mock.Anything, mock.Anything, 5*time.Second).Return(true, "lock-value", nil)
	f.locker.On("Unlock", mock.Anything, mock.Anything, "lock-value").Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f.metrics.On("ObserveSave", mock.Anything, mock.Anything, mock.Anything).Return()
	return f
}

func rawEntries(entries ...string) []json.RawMessage {
	result := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		result = append(result, json.RawMessage(entry))
	}
	return result
}

const asthmaEntry = `{"resource":{"resourceType":"Condition","code":{"text":"Asthma"},"assertedDate":"2020-01-01","clinicalStatus":"active"}}`

func TestRecordUsecase_SaveBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("identical entries of one batch are all added", func(t *testing.T) {
		f := newRecordUsecaseFixture()

		result, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry, asthmaEntry, asthmaEntry)})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Duplicates)
		assert.Equal(t, 3, result.Added)
		assert.Equal(t, 3, result.Total)
		f.metrics.AssertCalled(t, "ObserveSave", "conditions", 0, 3)
	})

	t.Run("date differs only in time part", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		_, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})
		require.NoError(t, err)

		result, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(
				asthmaEntry,
				`{"resource":{"resourceType":"Condition","code":{"text":"Asthma"},"assertedDate":"2020-01-01T00:00:00Z","clinicalStatus":"active"}}`,
			)})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Duplicates)
		assert.Equal(t, 1, result.Added)
		assert.Equal(t, 2, result.Total)
	})

	t.Run("family history key", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		father := `{"resource":{"resourceType":"FamilyMemberHistory","relationship":{"coding":[{"display":"Father"}]},"gender":"male","bornDate":"1950"}}`
		_, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryFamilyHistory,
			&requests.SaveRecordsBatch{Entries: rawEntries(father)})
		require.NoError(t, err)

		result, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryFamilyHistory,
			&requests.SaveRecordsBatch{Entries: rawEntries(
				`{"resourceType":"FamilyMemberHistory","relationship":{"text":"Father"},"gender":"male","bornDate":"1950"}`,
				`{"resourceType":"FamilyMemberHistory","relationship":{"text":"Father"},"gender":"male","bornDate":"1951"}`,
			)})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Duplicates)
		assert.Equal(t, 1, result.Added)
	})

	t.Run("nothing new is not written", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		_, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})
		require.NoError(t, err)

		result, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Duplicates)
		assert.Equal(t, 0, result.Added)
		assert.Equal(t, 1, f.repository.puts)
		f.publisher.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("saved collection is a superset", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		first := rawEntries(
			`{"code":{"text":"Asthma"},"assertedDate":"2020-01-01","clinicalStatus":"active"}`,
			`{"code":{"text":"Diabetes"},"assertedDate":"2019-03-02","clinicalStatus":"inactive"}`,
		)
		second := rawEntries(
			`{"code":{"text":"Diabetes"},"assertedDate":"2019-03-02","clinicalStatus":"inactive"}`,
			`{"code":{"text":"Migraine"},"assertedDate":"2021-07-09","clinicalStatus":"active"}`,
		)
		_, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions, &requests.SaveRecordsBatch{Entries: first})
		require.NoError(t, err)
		_, err = f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions, &requests.SaveRecordsBatch{Entries: second})
		require.NoError(t, err)

		stored, err := f.repository.Get(ctx, "u1", dedup.CategoryConditions)
		require.NoError(t, err)
		require.Len(t, stored.Entries, 3)
		counts := map[dedup.Key]int{}
		for _, entry := range stored.Entries {
			counts[dedup.ExtractKey(entry, dedup.CategoryConditions)]++
		}
		for _, entry := range append(first, second...) {
			assert.Equal(t, 1, counts[dedup.ExtractKey(entry, dedup.CategoryConditions)])
		}
	})

	t.Run("lock held by another save", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		locker := new(MockLockerService)
		locker.On("TryLock", mock.Anything, "lock:records:u1:conditions", 5*time.Second).Return(false, "", nil)
		f.usecase.LockerService = locker

		_, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusConflict, err.(*exceptions.CustomError).StatusCode)
		assert.Equal(t, 0, f.repository.puts)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed read counts as empty collection", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		f.repository.getErr = errors.New("connection refused")

		result, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Added)
	})

	t.Run("failed write is reported", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		f.repository.putErr = exceptions.ErrPostgresDBUpsertData(errors.New("disk full"))

		_, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})

		assert.Error(t, err)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		f.locker.AssertCalled(t, "Unlock", mock.Anything, "lock:records:u1:conditions", "lock-value")
	})

	t.Run("event publish failure does not fail the save", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		publisher := new(MockEventPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("channel closed"))
		f.usecase.EventPublisher = publisher

		result, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Added)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newRecordUsecaseFixture()

		_, err := f.usecase.SaveBatch(ctx, f.session, "allergies", &requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, err.(*exceptions.CustomError).StatusCode)
	})
}

func TestRecordUsecase_SaveBatchLockRelease(t *testing.T) {
	t.Run("unlocks after the request context is cancelled", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		locker := new(MockLockerService)
		locker.On("TryLock", mock.Anything, "lock:records:u1:conditions", 5*time.Second).
			Run(func(mock.Arguments) { cancel() }).
			Return(true, "lock-value", nil)
		locker.On("Unlock", mock.MatchedBy(func(unlockCtx context.Context) bool {
			return unlockCtx.Err() == nil
		}), "lock:records:u1:conditions", "lock-value").Return(nil)
		f.usecase.LockerService = locker

		_, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
			&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})

		require.NoError(t, err)
		locker.AssertExpectations(t)
	})
}

func TestRecordUsecase_SaveBatchLogsDuplicateKeys(t *testing.T) {
	f := newRecordUsecaseFixture()
	core, logs := observer.New(zapcore.DebugLevel)
	f.usecase.Log = zap.New(core)
	ctx := context.Background()

	_, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
		&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})
	require.NoError(t, err)
	_, err = f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryConditions,
		&requests.SaveRecordsBatch{Entries: rawEntries(asthmaEntry)})
	require.NoError(t, err)

	skipped := logs.FilterMessage("recordUsecase.saveBatch skipping duplicate entry").All()
	require.Len(t, skipped, 1)
	assert.Equal(t,
		map[string]string{"name": "Asthma", "date": "2020-01-01", "status": "active"},
		skipped[0].ContextMap()[constvars.LoggingDuplicateKeyKey],
	)
}

func TestRecordUsecase_ImportRecords(t *testing.T) {
	ctx := context.Background()
	gorillaID := "hg-1"

	t.Run("imports gateway entries", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		f.profiles.On("FindByUserID", ctx, "u1").Return(&models.Profile{UserID: "u1", GorillaID: &gorillaID}, nil)
		f.fetcher.On("FetchEntries", ctx, gorillaID, dedup.CategoryConditions).Return(rawEntries(asthmaEntry))

		result, err := f.usecase.ImportRecords(ctx, f.session, constvars.RecordCategoryConditions)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Added)
		stored, _ := f.repository.Get(ctx, "u1", dedup.CategoryConditions)
		require.NotNil(t, stored.GorillaID)
		assert.Equal(t, gorillaID, *stored.GorillaID)
	})

	t.Run("gateway without entries adds nothing", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		f.profiles.On("FindByUserID", ctx, "u1").Return(&models.Profile{UserID: "u1", GorillaID: &gorillaID}, nil)
		f.fetcher.On("FetchEntries", ctx, gorillaID, dedup.CategoryFamilyHistory).Return(nil)

		result, err := f.usecase.ImportRecords(ctx, f.session, constvars.RecordCategoryFamilyHistory)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Added)
		assert.Equal(t, 0, result.Duplicates)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("manual profile cannot import", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		f.profiles.On("FindByUserID", ctx, "u1").Return(&models.Profile{UserID: "u1"}, nil)

		_, err := f.usecase.ImportRecords(ctx, f.session, constvars.RecordCategoryConditions)

		require.Error(t, err)
		f.fetcher.AssertNotCalled(t, "FetchEntries", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing profile", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		f.profiles.On("FindByUserID", ctx, "u1").Return(nil, nil)

		_, err := f.usecase.ImportRecords(ctx, f.session, constvars.RecordCategoryConditions)

		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, err.(*exceptions.CustomError).StatusCode)
	})
}

func TestRecordUsecase_AddManualCondition(t *testing.T) {
	ctx := context.Background()

	t.Run("builds a condition with tokenized data", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		f.terminology.On("Tokenize", ctx, &requests.Tokenize{Text: "wheezing at night"}).Return([]responses.TokenizedEntity{
			{Text: "wheezing", SemanticType: "problem", Codes: map[string]string{"imo": "1"}},
		}, nil)

		result, err := f.usecase.AddManualCondition(ctx, f.session, &requests.ManualCondition{
			ConditionName:  "Asthma",
			ConditionText:  "wheezing at night",
			RecordedDate:   "2024-01-15",
			ClinicalStatus: "active",
			Category:       "Diagnosis",
			OnsetDate:      "2023-12-01",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Added)

		stored, _ := f.repository.Get(ctx, "u1", dedup.CategoryConditions)
		resource := gjson.GetBytes(stored.Entries[0], "resource")
		assert.Equal(t, "Asthma", resource.Get("code.text").String())
		assert.Equal(t, "Asthma", resource.Get("code.coding.0.display").String())
		assert.Equal(t, "active", resource.Get("clinicalStatus.coding.0.code").String())
		assert.Equal(t, "Active", resource.Get("clinicalStatus.coding.0.display").String())
		assert.Equal(t, "DIAGNOSIS", resource.Get("category.0.coding.0.code").String())
		assert.Equal(t, "2023-12-01", resource.Get("onsetPeriod.start").String())
		assert.Contains(t, resource.Get("text.div").String(), "wheezing at night")
		assert.Equal(t, "wheezing", resource.Get("tokenized_data.0.text").String())
	})

	t.Run("tokenize failure leaves tokenized data out", func(t *testing.T) {
		f := newRecordUsecaseFixture()
		f.terminology.On("Tokenize", ctx, mock.Anything).Return(nil, errors.New("imo down"))

		_, err := f.usecase.AddManualCondition(ctx, f.session, &requests.ManualCondition{
			ConditionName:  "Asthma",
			ConditionText:  "wheezing",
			RecordedDate:   "2024-01-15",
			ClinicalStatus: "active",
			Category:       "Problem",
		})

		require.NoError(t, err)
		stored, _ := f.repository.Get(ctx, "u1", dedup.CategoryConditions)
		assert.False(t, gjson.GetBytes(stored.Entries[0], "resource.tokenized_data").Exists())
		assert.False(t, gjson.GetBytes(stored.Entries[0], "resource.onsetPeriod").Exists())
	})
}

func TestRecordUsecase_AddManualFamilyHistory(t *testing.T) {
	ctx := context.Background()
	f := newRecordUsecaseFixture()
	age := 55

	_, err := f.usecase.AddManualFamilyHistory(ctx, f.session, &requests.ManualFamilyHistory{
		Relationship:   "Father",
		Gender:         "male",
		BirthYear:      "1950",
		Conditions:     []requests.FamilyHistoryCondition{{Title: "Heart attack", ICD10CMCode: "I21.9"}},
		AgeAtOnset:     &age,
		IsCauseOfDeath: true,
		Notes:          "smoker",
	})
	require.NoError(t, err)

	result, err := f.usecase.SaveBatch(ctx, f.session, constvars.RecordCategoryFamilyHistory, &requests.SaveRecordsBatch{
		Entries: rawEntries(`{"relationship":{"text":"Father"},"gender":"male","bornDate":"1950"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Duplicates)

	stored, _ := f.repository.Get(ctx, "u1", dedup.CategoryFamilyHistory)
	var entry fhir_dto.FamilyMemberHistoryEntry
	require.NoError(t, json.Unmarshal(stored.Entries[0], &entry))
	assert.Equal(t, "FTH", entry.Resource.Relationship.Coding[0].Code)
	assert.Equal(t, constvars.FamilyHistoryStatusHealthUnknown, entry.Resource.Status)
	require.Len(t, entry.Resource.Condition, 1)
	assert.Equal(t, 55, entry.Resource.Condition[0].OnsetAge.Value)
	require.Len(t, entry.Resource.Condition[0].Extension, 2)
	assert.True(t, *entry.Resource.Condition[0].Extension[0].ValueBoolean)
	assert.Equal(t, "I21.9", gjson.Get(entry.Resource.Condition[0].Extension[1].ValueString, "ICD10CM_CODE").String())
	assert.Equal(t, "smoker", entry.Resource.Note[0].Text)
}

func TestRecordUsecase_GetRecords(t *testing.T) {
	ctx := context.Background()
	f := newRecordUsecaseFixture()
	f.repository.collections["u1/family-history"] = &models.RecordCollection{
		UserID:   "u1",
		Category: "family-history",
		Entries:  rawEntries(`{"resource":{"resourceType":"FamilyMemberHistory"}}`),
	}

	history, err := f.usecase.GetRecords(ctx, f.session, constvars.RecordCategoryFamilyHistory)
	require.NoError(t, err)
	bundle, ok := history.Bundle.(fhir_dto.FHIRBundle)
	require.True(t, ok)
	assert.Equal(t, constvars.FhirBundleTypeSearchset, bundle.Type)
	assert.Equal(t, 1, bundle.Total)

	conditions, err := f.usecase.GetRecords(ctx, f.session, constvars.RecordCategoryConditions)
	require.NoError(t, err)
	assert.Empty(t, conditions.Entries)
	assert.Nil(t, conditions.Bundle)
}
