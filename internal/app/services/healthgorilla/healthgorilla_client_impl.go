package healthgorilla

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/services/shared/ratelimiter"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/fhir_dto"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	healthGorillaClientInstance contracts.HealthGorillaClient
	onceHealthGorillaClient     sync.Once
)

type healthGorillaClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *ratelimiter.OutboundLimiter
	Log        *zap.Logger
}

func NewHealthGorillaClient(cfg config.AppHealthGorilla, logger *zap.Logger) contracts.HealthGorillaClient {
	onceHealthGorillaClient.Do(func() {
		healthGorillaClientInstance = newHealthGorillaClient(cfg, logger)
	})
	return healthGorillaClientInstance
}

// newHealthGorillaClient authenticates every request with a client
// credentials token that oauth2 caches and refreshes before expiry.
func newHealthGorillaClient(cfg config.AppHealthGorilla, logger *zap.Logger) *healthGorillaClient {
	timeout := time.Duration(cfg.RequestTimeoutInSeconds) * time.Second
	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenUrl,
		Scopes:       cfg.Scopes,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
	httpClient := credentials.Client(tokenCtx)
	httpClient.Timeout = timeout

	return &healthGorillaClient{
		BaseUrl:    strings.TrimRight(cfg.BaseUrl, "/"),
		HTTPClient: httpClient,
		Limiter:    ratelimiter.NewOutboundLimiter(constvars.UpstreamHealthGorilla, cfg.RequestsPerSecond, cfg.Burst, logger),
		Log:        logger,
	}
}

func (c *healthGorillaClient) SearchPatients(ctx context.Context, request *requests.PatientSearch) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("healthGorillaClient.SearchPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	query := url.Values{}
	query.Set(constvars.FhirSearchParamGiven, request.Given)
	query.Set(constvars.FhirSearchParamFamily, request.Family)
	if request.Birthdate != "" {
		query.Set(constvars.FhirSearchParamBirthdate, request.Birthdate)
	}

	return c.get(ctx, "/"+constvars.ResourcePatient, query, constvars.ResourcePatient)
}

func (c *healthGorillaClient) GetPatient(ctx context.Context, patientID string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("healthGorillaClient.GetPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	path := fmt.Sprintf("/%s/%s", constvars.ResourcePatient, url.PathEscape(patientID))
	return c.get(ctx, path, nil, constvars.ResourcePatient)
}

func (c *healthGorillaClient) SearchResources(ctx context.Context, resourceType, patientID string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("healthGorillaClient.SearchResources called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	query := url.Values{}
	query.Set(constvars.FhirSearchParamPatient, patientID)
	return c.get(ctx, "/"+resourceType, query, resourceType)
}

func (c *healthGorillaClient) get(ctx context.Context, path string, query url.Values, resourceType string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.BaseUrl + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		c.Log.Error("healthGorillaClient.get error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("healthGorillaClient.get error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, path),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("healthGorillaClient.get error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrReadHTTPResponse(err)
	}

	if resp.StatusCode != constvars.StatusOK {
		var outcome fhir_dto.OperationOutcome
		if err := json.Unmarshal(body, &outcome); err == nil && len(outcome.Issue) > 0 {
			diagnostics := outcome.Issue[0].Diagnostics
			c.Log.Error("healthGorillaClient.get FHIR error",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
				zap.String(constvars.LoggingResourceTypeKey, resourceType),
				zap.String("diagnostics", diagnostics),
			)
			return nil, exceptions.ErrFHIROperationOutcome(errors.New(diagnostics), resourceType, diagnostics)
		}

		c.Log.Error("healthGorillaClient.get unexpected status code",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
		)
		return nil, exceptions.ErrUpstreamStatus(nil, constvars.UpstreamHealthGorilla, resp.StatusCode)
	}

	if !gjson.ValidBytes(body) {
		c.Log.Error("healthGorillaClient.get invalid JSON response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
		)
		return nil, exceptions.ErrDecodeFHIRResponse(errors.New("invalid JSON body"), resourceType)
	}

	c.Log.Info("healthGorillaClient.get succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)
	return body, nil
}
