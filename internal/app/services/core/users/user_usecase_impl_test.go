package users

import (
	"context"
	"errors"
	"testing"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	args := m.Called(ctx, email, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
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

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Get(ctx context.Context, userID string, category dedup.Category) (*models.RecordCollection, error) {
	args := m.Called(ctx, userID, category)
	collection, _ := args.Get(0).(*models.RecordCollection)
	return collection, args.Error(1)
}

func (m *MockRecordRepository) Put(ctx context.Context, collection *models.RecordCollection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

var testSession = &models.Session{SessionID: "s-1", UserID: "u-1", Username: "alice"}

func TestGetUserData(t *testing.T) {
	user := &models.User{ID: "u-1", Username: "alice", Email: "alice@example.com"}

	t.Run("aggregates profile and records", func(t *testing.T) {
		userRepository := new(MockUserRepository)
		userRepository.On("FindByID", mock.Anything, "u-1").Return(user, nil)
		profileRepository := new(MockProfileRepository)
		profileRepository.On("FindByUserID", mock.Anything, "u-1").Return(&models.Profile{
			UserID:      "u-1",
			ProfileData: json.RawMessage(`{"name":"Alice"}`),
		}, nil)
		recordRepository := new(MockRecordRepository)
		recordRepository.On("Get", mock.Anything, "u-1", dedup.CategoryConditions).Return(&models.RecordCollection{
			UserID:   "u-1",
			Category: string(dedup.CategoryConditions),
			Entries:  []json.RawMessage{json.RawMessage(`{"resourceType":"Condition"}`)},
		}, nil)
		recordRepository.On("Get", mock.Anything, "u-1", dedup.CategoryFamilyHistory).Return(nil, nil)
		uc := &userUsecase{
			UserRepository:    userRepository,
			ProfileRepository: profileRepository,
			RecordRepository:  recordRepository,
			Log:               zap.NewNop(),
		}

		data, err := uc.GetUserData(context.Background(), testSession)

		require.NoError(t, err)
		assert.Equal(t, "alice", data.UserInfo.Username)
		require.NotNil(t, data.Profile)
		assert.False(t, data.Profile.IsImported)
		assert.Len(t, data.Conditions, 1)
		assert.NotNil(t, data.FamilyHistory)
		assert.Empty(t, data.FamilyHistory)
	})

	t.Run("no profile and unreadable records", func(t *testing.T) {
		userRepository := new(MockUserRepository)
		userRepository.On("FindByID", mock.Anything, "u-1").Return(user, nil)
		profileRepository := new(MockProfileRepository)
		profileRepository.On("FindByUserID", mock.Anything, "u-1").Return(nil, nil)
		recordRepository := new(MockRecordRepository)
		recordRepository.On("Get", mock.Anything, "u-1", mock.Anything).
			Return(nil, exceptions.ErrMongoDBFindDocument(errors.New("no reachable servers")))
		uc := &userUsecase{
			UserRepository:    userRepository,
			ProfileRepository: profileRepository,
			RecordRepository:  recordRepository,
			Log:               zap.NewNop(),
		}

		data, err := uc.GetUserData(context.Background(), testSession)

		require.NoError(t, err)
		assert.Nil(t, data.Profile)
		assert.Empty(t, data.Conditions)
		assert.Empty(t, data.FamilyHistory)

		body, err := json.Marshal(data)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"profile":null`)
		assert.Contains(t, string(body), `"conditions":[]`)
	})

	t.Run("deleted user", func(t *testing.T) {
		userRepository := new(MockUserRepository)
		userRepository.On("FindByID", mock.Anything, "u-1").Return(nil, nil)
		uc := &userUsecase{UserRepository: userRepository, Log: zap.NewNop()}

		_, err := uc.GetUserData(context.Background(), testSession)

		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}
