package gateway

import (
	"context"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dedup"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type clinicalDataFetcher struct {
	HealthGorillaClient contracts.HealthGorillaClient
	RecordMetrics       contracts.RecordMetrics
	Log                 *zap.Logger
}

func NewClinicalDataFetcher(
	healthGorillaClient contracts.HealthGorillaClient,
	recordMetrics contracts.RecordMetrics,
	logger *zap.Logger,
) contracts.ClinicalDataFetcher {
	return &clinicalDataFetcher{
		HealthGorillaClient: healthGorillaClient,
		RecordMetrics:       recordMetrics,
		Log:                 logger,
	}
}

// FetchEntries returns the Bundle entries of the category resource for the
// patient. Upstream errors and bodies that are not a Bundle give no entries.
func (f *clinicalDataFetcher) FetchEntries(ctx context.Context, patientID string, category dedup.Category) []json.RawMessage {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	f.Log.Info("clinicalDataFetcher.FetchEntries called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCategoryKey, string(category)),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	resourceType, ok := constvars.GatewayResources[string(category)]
	if !ok {
		return nil
	}

	body, err := f.HealthGorillaClient.SearchResources(ctx, resourceType, patientID)
	if err != nil {
		f.Log.Warn("clinicalDataFetcher.FetchEntries upstream failed, no entries available",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		f.RecordMetrics.ObserveFetchFailure(string(category))
		return nil
	}

	bundle := gjson.ParseBytes(body)
	if bundle.Get("resourceType").String() != constvars.ResourceBundle {
		f.Log.Warn("clinicalDataFetcher.FetchEntries unexpected schema, no entries available",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, bundle.Get("resourceType").String()),
		)
		f.RecordMetrics.ObserveFetchFailure(string(category))
		return nil
	}

	entries := dedup.Entries([]byte(bundle.Get("entry").Raw))
	f.Log.Info("clinicalDataFetcher.FetchEntries succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntriesCountKey, len(entries)),
	)
	return entries
}
