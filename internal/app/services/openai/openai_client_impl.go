package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var (
	openAIClientInstance contracts.OpenAIClient
	onceOpenAIClient     sync.Once
)

var errEmptyChoices = errors.New(constvars.ErrDevOpenAIEmptyChoices)

type openAIClient struct {
	Client *goopenai.Client
	Log    *zap.Logger
}

// NewOpenAIClient builds a client that reports itself unconfigured when no
// API key is set, so the assistant endpoints can fail fast.
func NewOpenAIClient(cfg config.AppOpenAI, logger *zap.Logger) contracts.OpenAIClient {
	onceOpenAIClient.Do(func() {
		openAIClientInstance = newOpenAIClient(cfg, logger)
	})
	return openAIClientInstance
}

func newOpenAIClient(cfg config.AppOpenAI, logger *zap.Logger) *openAIClient {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return &openAIClient{Log: logger}
	}

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseUrl != "" {
		clientConfig.BaseURL = cfg.BaseUrl
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: time.Duration(cfg.RequestTimeoutInSeconds) * time.Second,
	}

	return &openAIClient{
		Client: goopenai.NewClientWithConfig(clientConfig),
		Log:    logger,
	}
}

func (c *openAIClient) IsConfigured() bool {
	return c.Client != nil
}

func (c *openAIClient) ChatCompletion(ctx context.Context, input *contracts.ChatCompletionInput) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("openAIClient.ChatCompletion called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingModelKey, input.Model),
	)

	if !c.IsConfigured() {
		return "", exceptions.ErrOpenAINotConfigured(nil)
	}

	resp, err := c.Client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: input.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: input.SystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: input.UserPrompt},
		},
		Temperature: input.Temperature,
		MaxTokens:   input.MaxTokens,
	})
	if err != nil {
		c.Log.Error("openAIClient.ChatCompletion error creating completion",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrOpenAIRequest(err)
	}

	if len(resp.Choices) == 0 {
		c.Log.Error("openAIClient.ChatCompletion error empty choices",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return "", exceptions.ErrOpenAIRequest(errEmptyChoices)
	}

	c.Log.Info("openAIClient.ChatCompletion succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *openAIClient) Transcribe(ctx context.Context, fileName string, audio io.Reader) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("openAIClient.Transcribe called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !c.IsConfigured() {
		return "", exceptions.ErrOpenAINotConfigured(nil)
	}

	resp, err := c.Client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    goopenai.Whisper1,
		FilePath: fileName,
		Reader:   audio,
	})
	if err != nil {
		c.Log.Error("openAIClient.Transcribe error transcribing audio",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrOpenAIRequest(err)
	}

	c.Log.Info("openAIClient.Transcribe succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return resp.Text, nil
}
