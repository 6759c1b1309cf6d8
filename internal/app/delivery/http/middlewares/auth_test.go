package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, user *models.User, ttl time.Duration) (*models.Session, error) {
	args := m.Called(ctx, user, ttl)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func TestAuthenticate(t *testing.T) {
	const secret = "test-secret"

	sessionService := new(MockSessionService)
	middlewares := &Middlewares{
		Log:            zap.NewNop(),
		SessionService: sessionService,
		InternalConfig: &config.InternalConfig{JWT: config.AppJWT{Secret: secret}},
	}

	var gotSession *models.Session
	handler := middlewares.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession, _ = r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Valid token", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("session-1", "jane", secret, 1)
		require.NoError(t, err)

		session := &models.Session{SessionID: "session-1", UserID: "user-1", Username: "jane"}
		sessionService.On("GetSession", mock.Anything, "session-1").Return(session, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotSession)
		assert.Equal(t, "user-1", gotSession.UserID)
	})

	t.Run("Missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("session-1", "jane", "other-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Session logged out", func(t *testing.T) {
		token, err := utils.GenerateSessionJWT("session-2", "jane", secret, 1)
		require.NoError(t, err)
		sessionService.On("GetSession", mock.Anything, "session-2").Return(nil, exceptions.ErrSessionNotFound(nil)).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	sessionService.AssertExpectations(t)
}

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := &Middlewares{Log: zap.NewNop()}

	var gotRequestID string
	handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	t.Run("Client request id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-id", gotRequestID)
		assert.Equal(t, "client-id", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Generated when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Contains(t, gotRequestID, constvars.REQUEST_ID_PREFIX)
		assert.Equal(t, gotRequestID, rr.Header().Get(constvars.HeaderXRequestID))
	})
}
