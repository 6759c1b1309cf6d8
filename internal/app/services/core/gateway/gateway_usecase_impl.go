package gateway

import (
	"context"
	"errors"
	"strings"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/fhir_dto"
	"theracare-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var errUnknownGatewayResource = errors.New("unknown gateway resource")

type gatewayUsecase struct {
	HealthGorillaClient contracts.HealthGorillaClient
	Log                 *zap.Logger
}

var (
	gatewayUsecaseInstance contracts.GatewayUsecase
	onceGatewayUsecase     sync.Once
)

func NewGatewayUsecase(healthGorillaClient contracts.HealthGorillaClient, logger *zap.Logger) contracts.GatewayUsecase {
	onceGatewayUsecase.Do(func() {
		gatewayUsecaseInstance = &gatewayUsecase{
			HealthGorillaClient: healthGorillaClient,
			Log:                 logger,
		}
	})
	return gatewayUsecaseInstance
}

func (uc *gatewayUsecase) SearchPatients(ctx context.Context, request *requests.PatientSearch) (*responses.PatientSearch, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("gatewayUsecase.SearchPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if strings.TrimSpace(request.Given) == "" || strings.TrimSpace(request.Family) == "" {
		return nil, exceptions.ErrMissingSearchParams(nil)
	}

	bundle, err := uc.HealthGorillaClient.SearchPatients(ctx, request)
	if err != nil {
		return nil, err
	}

	result := utils.SimplifyPatientBundle(bundle)
	uc.Log.Info("gatewayUsecase.SearchPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTotalCountKey, result.Count),
	)
	return result, nil
}

func (uc *gatewayUsecase) GetPatient(ctx context.Context, patientID string) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("gatewayUsecase.GetPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	body, err := uc.HealthGorillaClient.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	var patient fhir_dto.Patient
	if err := json.Unmarshal(body, &patient); err != nil {
		return nil, exceptions.ErrDecodeFHIRResponse(err, constvars.ResourcePatient)
	}
	if patient.ResourceType != constvars.ResourcePatient {
		return nil, exceptions.ErrDecodeFHIRResponse(errors.New("unexpected resourceType "+patient.ResourceType), constvars.ResourcePatient)
	}

	return json.RawMessage(body), nil
}

// GetResources searches one clinical resource type of a patient, resource
// being the URL segment of the gateway route.
func (uc *gatewayUsecase) GetResources(ctx context.Context, resource, patientID string) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("gatewayUsecase.GetResources called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resource),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	resourceType, ok := constvars.GatewayResources[resource]
	if !ok {
		return nil, exceptions.ErrURLParamValidation(errUnknownGatewayResource, constvars.URLParamResource)
	}

	body, err := uc.HealthGorillaClient.SearchResources(ctx, resourceType, patientID)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
