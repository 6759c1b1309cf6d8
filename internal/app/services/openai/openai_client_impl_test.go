package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenAIClient_NotConfigured(t *testing.T) {
	client := newOpenAIClient(config.AppOpenAI{}, zap.NewNop())

	assert.False(t, client.IsConfigured())

	_, err := client.ChatCompletion(context.Background(), &contracts.ChatCompletionInput{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Equal(t, constvars.StatusServiceUnavailable, err.(*exceptions.CustomError).StatusCode)

	_, err = client.Transcribe(context.Background(), "note.webm", strings.NewReader("audio"))
	assert.Error(t, err)
}

func TestOpenAIClient_ChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get(constvars.HeaderAuthorization))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"model":"gpt-4o-mini"`)

		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  {\"is_relevant\": true}  "},"finish_reason":"stop"}],"usage":{"total_tokens":12}}`))
	}))
	defer server.Close()

	client := newOpenAIClient(config.AppOpenAI{
		APIKey:                  "sk-test",
		BaseUrl:                 server.URL + "/v1",
		RequestTimeoutInSeconds: 5,
	}, zap.NewNop())

	content, err := client.ChatCompletion(context.Background(), &contracts.ChatCompletionInput{
		Model:        "gpt-4o-mini",
		SystemPrompt: "system",
		UserPrompt:   "user",
		Temperature:  0.3,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"is_relevant": true}`, content)
}

func TestOpenAIClient_ChatCompletionEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	client := newOpenAIClient(config.AppOpenAI{APIKey: "sk-test", BaseUrl: server.URL + "/v1", RequestTimeoutInSeconds: 5}, zap.NewNop())

	_, err := client.ChatCompletion(context.Background(), &contracts.ChatCompletionInput{Model: "gpt-4o-mini"})

	assert.Error(t, err)
}
