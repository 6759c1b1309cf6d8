package session

import (
	"context"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

var (
	sessionServiceInstance contracts.SessionService
	onceSessionService     sync.Once
)

func NewSessionService(redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.SessionService {
	onceSessionService.Do(func() {
		sessionServiceInstance = &sessionService{
			RedisRepository: redisRepository,
			Log:             logger,
		}
	})
	return sessionServiceInstance
}

func sessionKey(sessionID string) string {
	return constvars.RedisSessionKeyPrefix + sessionID
}

func (s *sessionService) CreateSession(ctx context.Context, user *models.User, ttl time.Duration) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("sessionService.CreateSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)

	session := &models.Session{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := s.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, ttl); err != nil {
		s.Log.Error("sessionService.CreateSession error storing session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	s.Log.Info("sessionService.CreateSession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)
	return session, nil
}

// GetSession returns ErrSessionNotFound when the session expired or was
// deleted on logout.
func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	sessionData, err := s.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		s.Log.Error("sessionService.GetSession error reading session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}
	if sessionData == "" {
		return nil, exceptions.ErrSessionNotFound(nil)
	}

	session := new(models.Session)
	if err := json.Unmarshal([]byte(sessionData), session); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("sessionService.DeleteSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)
	return s.RedisRepository.Delete(ctx, sessionKey(sessionID))
}
