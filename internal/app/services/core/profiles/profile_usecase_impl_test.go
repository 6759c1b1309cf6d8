package profiles

import (
	"context"
	"errors"
	"testing"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

type MockGatewayUsecase struct {
	mock.Mock
}

func (m *MockGatewayUsecase) SearchPatients(ctx context.Context, request *requests.PatientSearch) (*responses.PatientSearch, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.PatientSearch)
	return result, args.Error(1)
}

func (m *MockGatewayUsecase) GetPatient(ctx context.Context, patientID string) (json.RawMessage, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(json.RawMessage)
	return patient, args.Error(1)
}

func (m *MockGatewayUsecase) GetResources(ctx context.Context, resource, patientID string) (json.RawMessage, error) {
	args := m.Called(ctx, resource, patientID)
	bundle, _ := args.Get(0).(json.RawMessage)
	return bundle, args.Error(1)
}

var testSession = &models.Session{SessionID: "s-1", UserID: "u-1", Username: "alice"}

func TestGetProfile(t *testing.T) {
	t.Run("missing profile", func(t *testing.T) {
		repository := new(MockProfileRepository)
		repository.On("FindByUserID", mock.Anything, "u-1").Return(nil, nil)
		uc := &profileUsecase{ProfileRepository: repository, Log: zap.NewNop()}

		_, err := uc.GetProfile(context.Background(), testSession)

		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("imported profile", func(t *testing.T) {
		gorillaID := "p-1"
		repository := new(MockProfileRepository)
		repository.On("FindByUserID", mock.Anything, "u-1").Return(&models.Profile{
			UserID:      "u-1",
			GorillaID:   &gorillaID,
			ProfileData: json.RawMessage(`{"resourceType":"Patient"}`),
		}, nil)
		uc := &profileUsecase{ProfileRepository: repository, Log: zap.NewNop()}

		profile, err := uc.GetProfile(context.Background(), testSession)

		require.NoError(t, err)
		assert.True(t, profile.IsImported)
		assert.Equal(t, "p-1", *profile.GorillaID)
	})
}

func TestUpsertProfile(t *testing.T) {
	repository := new(MockProfileRepository)
	repository.On("Upsert", mock.Anything, mock.MatchedBy(func(profile *models.Profile) bool {
		return profile.UserID == "u-1" && profile.GorillaID == nil
	})).Return(nil)
	uc := &profileUsecase{ProfileRepository: repository, Log: zap.NewNop()}

	profile, err := uc.UpsertProfile(context.Background(), testSession, &requests.UpsertProfile{
		ProfileData: json.RawMessage(`{"name":"Alice"}`),
	})

	require.NoError(t, err)
	assert.False(t, profile.IsImported)
	assert.JSONEq(t, `{"name":"Alice"}`, string(profile.ProfileData))
	repository.AssertExpectations(t)
}

func TestImportProfile(t *testing.T) {
	t.Run("links the gateway patient", func(t *testing.T) {
		patient := json.RawMessage(`{"resourceType":"Patient","id":"p-9"}`)
		gateway := new(MockGatewayUsecase)
		gateway.On("GetPatient", mock.Anything, "p-9").Return(patient, nil)
		repository := new(MockProfileRepository)
		repository.On("Upsert", mock.Anything, mock.MatchedBy(func(profile *models.Profile) bool {
			return profile.GorillaID != nil && *profile.GorillaID == "p-9"
		})).Return(nil)
		uc := &profileUsecase{ProfileRepository: repository, GatewayUsecase: gateway, Log: zap.NewNop()}

		profile, err := uc.ImportProfile(context.Background(), testSession, "p-9")

		require.NoError(t, err)
		assert.True(t, profile.IsImported)
		assert.JSONEq(t, string(patient), string(profile.ProfileData))
		repository.AssertExpectations(t)
	})

	t.Run("gateway failure leaves the profile untouched", func(t *testing.T) {
		gateway := new(MockGatewayUsecase)
		gateway.On("GetPatient", mock.Anything, "p-9").Return(nil, exceptions.ErrSendHTTPRequest(errors.New("timeout")))
		repository := new(MockProfileRepository)
		uc := &profileUsecase{ProfileRepository: repository, GatewayUsecase: gateway, Log: zap.NewNop()}

		_, err := uc.ImportProfile(context.Background(), testSession, "p-9")

		require.Error(t, err)
		repository.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
