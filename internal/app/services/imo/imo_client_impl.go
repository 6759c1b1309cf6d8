package imo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/services/shared/ratelimiter"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	imoClientInstance contracts.IMOClient
	onceIMOClient     sync.Once
)

type imoClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *ratelimiter.OutboundLimiter
	Log        *zap.Logger
}

type tokenizeRequest struct {
	Content string `json:"content"`
}

func NewIMOClient(cfg config.AppIMO, logger *zap.Logger) contracts.IMOClient {
	onceIMOClient.Do(func() {
		imoClientInstance = newIMOClient(cfg, logger)
	})
	return imoClientInstance
}

func newIMOClient(cfg config.AppIMO, logger *zap.Logger) *imoClient {
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

	return &imoClient{
		BaseUrl:    strings.TrimRight(cfg.BaseUrl, "/"),
		HTTPClient: httpClient,
		Limiter:    ratelimiter.NewOutboundLimiter(constvars.UpstreamIMO, cfg.RequestsPerSecond, cfg.Burst, logger),
		Log:        logger,
	}
}

func (c *imoClient) CoreSearch(ctx context.Context, text, domain string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("imoClient.CoreSearch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDomainKey, domain),
	)

	query := url.Values{}
	query.Set(constvars.URLQueryParamText, text)
	query.Set(constvars.URLQueryParamDomain, domain)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, c.BaseUrl+constvars.IMOSearchPath+"?"+query.Encode(), nil)
	if err != nil {
		c.Log.Error("imoClient.CoreSearch error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	return c.do(req)
}

func (c *imoClient) Tokenize(ctx context.Context, text string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("imoClient.Tokenize called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	requestJSON, err := json.Marshal(tokenizeRequest{Content: text})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl+constvars.IMOTokenizePath, bytes.NewReader(requestJSON))
	if err != nil {
		c.Log.Error("imoClient.Tokenize error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	return c.do(req)
}

func (c *imoClient) do(req *http.Request) ([]byte, error) {
	ctx := req.Context()
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("imoClient.do error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, req.URL.Path),
			zap.Error(err),
		)
		return nil, exceptions.ErrIMORequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrReadHTTPResponse(err)
	}

	if resp.StatusCode != constvars.StatusOK {
		c.Log.Error("imoClient.do unexpected status code",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, req.URL.Path),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.ErrUpstreamStatus(nil, constvars.UpstreamIMO, resp.StatusCode)
	}

	if !gjson.ValidBytes(body) {
		return nil, exceptions.ErrIMORequest(errors.New("invalid JSON body"))
	}

	c.Log.Info("imoClient.do succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingURLKey, req.URL.Path),
	)
	return body, nil
}
