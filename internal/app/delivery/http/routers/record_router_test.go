package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"theracare-service/internal/app/delivery/http/controllers"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRecordUsecase struct {
	mock.Mock
}

func (m *MockRecordUsecase) GetRecords(ctx context.Context, session *models.Session, category string) (*responses.Records, error) {
	args := m.Called(ctx, session, category)
	result, _ := args.Get(0).(*responses.Records)
	return result, args.Error(1)
}

func (m *MockRecordUsecase) GetConditionSummary(ctx context.Context, session *models.Session, year string) (*responses.ConditionSummary, error) {
	args := m.Called(ctx, session, year)
	result, _ := args.Get(0).(*responses.ConditionSummary)
	return result, args.Error(1)
}

func (m *MockRecordUsecase) GetFamilyHistorySummary(ctx context.Context, session *models.Session) (*responses.FamilyHistorySummary, error) {
	args := m.Called(ctx, session)
	result, _ := args.Get(0).(*responses.FamilyHistorySummary)
	return result, args.Error(1)
}

func (m *MockRecordUsecase) ImportRecords(ctx context.Context, session *models.Session, category string) (*responses.SaveRecords, error) {
	args := m.Called(ctx, session, category)
	result, _ := args.Get(0).(*responses.SaveRecords)
	return result, args.Error(1)
}

func (m *MockRecordUsecase) SaveBatch(ctx context.Context, session *models.Session, category string, request *requests.SaveRecordsBatch) (*responses.SaveRecords, error) {
	args := m.Called(ctx, session, category, request)
	result, _ := args.Get(0).(*responses.SaveRecords)
	return result, args.Error(1)
}

func (m *MockRecordUsecase) AddManualCondition(ctx context.Context, session *models.Session, request *requests.ManualCondition) (*responses.SaveRecords, error) {
	args := m.Called(ctx, session, request)
	result, _ := args.Get(0).(*responses.SaveRecords)
	return result, args.Error(1)
}

func (m *MockRecordUsecase) AddManualFamilyHistory(ctx context.Context, session *models.Session, request *requests.ManualFamilyHistory) (*responses.SaveRecords, error) {
	args := m.Called(ctx, session, request)
	result, _ := args.Get(0).(*responses.SaveRecords)
	return result, args.Error(1)
}

func newRecordRouter() (*chi.Mux, *MockRecordUsecase, *MockSessionService) {
	recordUsecase := new(MockRecordUsecase)
	sessionService := new(MockSessionService)
	recordController := &controllers.RecordController{
		Log:            zap.NewNop(),
		RecordUsecase:  recordUsecase,
		InternalConfig: newTestInternalConfig(),
	}

	router := chi.NewRouter()
	attachRecordRoutes(router, newTestMiddlewares(sessionService), recordController)
	return router, recordUsecase, sessionService
}

func TestRecordRouter_RequiresSession(t *testing.T) {
	router, recordUsecase, _ := newRecordRouter()

	req := httptest.NewRequest(http.MethodGet, "/conditions", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	recordUsecase.AssertNotCalled(t, "GetRecords", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordRouter_Summary(t *testing.T) {
	router, recordUsecase, sessionService := newRecordRouter()
	session := &models.Session{SessionID: "session-1", UserID: "user-1", Username: "jane"}

	t.Run("Conditions summary by year", func(t *testing.T) {
		recordUsecase.On("GetConditionSummary", mock.Anything, session, "2021").
			Return(&responses.ConditionSummary{SelectedYear: "2021"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/conditions/summary?year=2021", nil)
		authorize(t, req, sessionService, session)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Family history summary", func(t *testing.T) {
		recordUsecase.On("GetFamilyHistorySummary", mock.Anything, session).
			Return(&responses.FamilyHistorySummary{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/family-history/summary", nil)
		authorize(t, req, sessionService, session)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Malformed year", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/conditions/summary?year=21", nil)
		authorize(t, req, sessionService, session)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unknown category", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/allergies/summary", nil)
		authorize(t, req, sessionService, session)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	recordUsecase.AssertExpectations(t)
}

func TestRecordRouter_SaveBatch(t *testing.T) {
	router, recordUsecase, sessionService := newRecordRouter()
	session := &models.Session{SessionID: "session-1", UserID: "user-1", Username: "jane"}

	t.Run("Counts are returned", func(t *testing.T) {
		recordUsecase.On("SaveBatch", mock.Anything, session, "conditions", mock.MatchedBy(func(request *requests.SaveRecordsBatch) bool {
			return len(request.Entries) == 2
		})).Return(&responses.SaveRecords{Category: "conditions", Duplicates: 1, Added: 1, Total: 4}, nil).Once()

		body := `{"entries":[{"resource":{"resourceType":"Condition"}},{"resource":{"resourceType":"Condition","id":"2"}}]}`
		req := httptest.NewRequest(http.MethodPost, "/conditions/batch", bytes.NewBufferString(body))
		authorize(t, req, sessionService, session)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var response struct {
			Data responses.SaveRecords `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Data.Duplicates)
		assert.Equal(t, 1, response.Data.Added)
		assert.Equal(t, 4, response.Data.Total)
	})

	t.Run("Empty batch is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/conditions/batch", bytes.NewBufferString(`{"entries":[]}`))
		authorize(t, req, sessionService, session)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Save in progress", func(t *testing.T) {
		recordUsecase.On("SaveBatch", mock.Anything, session, "family-history", mock.Anything).
			Return(nil, exceptions.ErrRecordSaveInProgress(nil, "lock:records:user-1:family-history")).Once()

		req := httptest.NewRequest(http.MethodPost, "/family-history/batch", bytes.NewBufferString(`{"entries":[{"resourceType":"FamilyMemberHistory"}]}`))
		authorize(t, req, sessionService, session)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
