package contracts

import (
	"context"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
)

type HealthGorillaClient interface {
	SearchPatients(ctx context.Context, request *requests.PatientSearch) ([]byte, error)
	GetPatient(ctx context.Context, patientID string) ([]byte, error)
	SearchResources(ctx context.Context, resourceType, patientID string) ([]byte, error)
}

// ClinicalDataFetcher never fails: any upstream error yields no entries.
type ClinicalDataFetcher interface {
	FetchEntries(ctx context.Context, patientID string, category dedup.Category) []json.RawMessage
}

type GatewayUsecase interface {
	SearchPatients(ctx context.Context, request *requests.PatientSearch) (*responses.PatientSearch, error)
	GetPatient(ctx context.Context, patientID string) (json.RawMessage, error)
	GetResources(ctx context.Context, resource, patientID string) (json.RawMessage, error)
}
