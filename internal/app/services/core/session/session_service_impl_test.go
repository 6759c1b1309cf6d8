package session

import (
	"context"
	"errors"
	"testing"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryRedisRepository stores values the way the redis repository does.
type memoryRedisRepository struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newMemoryRedisRepository() *memoryRedisRepository {
	return &memoryRedisRepository{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (r *memoryRedisRepository) Delete(ctx context.Context, key string) error {
	delete(r.values, key)
	return nil
}

func (r *memoryRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(data)
	r.ttls[key] = exp
	return nil
}

func (r *memoryRedisRepository) Get(ctx context.Context, key string) (string, error) {
	if r.getErr != nil {
		return "", r.getErr
	}
	return r.values[key], nil
}

func (r *memoryRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	if _, ok := r.values[key]; ok {
		return false, nil
	}
	return true, r.Set(ctx, key, value, exp)
}

func TestSessionLifecycle(t *testing.T) {
	repository := newMemoryRedisRepository()
	service := &sessionService{RedisRepository: repository, Log: zap.NewNop()}
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	user := &models.User{ID: "u-1", Username: "alice"}

	created, err := service.CreateSession(ctx, user, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, time.Hour, repository.ttls[constvars.RedisSessionKeyPrefix+created.SessionID])

	loaded, err := service.GetSession(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "u-1", loaded.UserID)
	assert.Equal(t, "alice", loaded.Username)

	require.NoError(t, service.DeleteSession(ctx, created.SessionID))

	_, err = service.GetSession(ctx, created.SessionID)
	require.Error(t, err)
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
}

func TestGetSession(t *testing.T) {
	t.Run("corrupt payload", func(t *testing.T) {
		repository := newMemoryRedisRepository()
		repository.values[constvars.RedisSessionKeyPrefix+"s-1"] = "{not json"
		service := &sessionService{RedisRepository: repository, Log: zap.NewNop()}

		_, err := service.GetSession(context.Background(), "s-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), constvars.ErrDevCannotParseJSON)
	})

	t.Run("redis failure is returned as is", func(t *testing.T) {
		repository := newMemoryRedisRepository()
		repository.getErr = exceptions.ErrRedisGet(errors.New("connection reset"))
		service := &sessionService{RedisRepository: repository, Log: zap.NewNop()}

		_, err := service.GetSession(context.Background(), "s-1")

		require.Error(t, err)
		assert.Equal(t, repository.getErr, err)
	})
}
