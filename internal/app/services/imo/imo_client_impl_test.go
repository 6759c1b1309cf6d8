package imo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"theracare-service/internal/app/config"
	"theracare-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *imoClient {
	t.Helper()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"access_token":"imo-token","token_type":"bearer","expires_in":3600}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return newIMOClient(config.AppIMO{
		BaseUrl:                 server.URL,
		TokenUrl:                server.URL + "/token",
		ClientID:                "client",
		ClientSecret:            "secret",
		RequestTimeoutInSeconds: 5,
	}, zap.NewNop())
}

func TestIMOClient_CoreSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(constvars.IMOSearchPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "asthma", r.URL.Query().Get("text"))
		assert.Equal(t, "condition", r.URL.Query().Get("domain"))
		assert.Equal(t, "Bearer imo-token", r.Header.Get(constvars.HeaderAuthorization))
		_, _ = w.Write([]byte(`{"SearchTermResponse":{"items":[{"kndg_title":"Asthma"}]}}`))
	})
	client := newTestClient(t, mux)

	body, err := client.CoreSearch(context.Background(), "asthma", "condition")

	require.NoError(t, err)
	assert.Equal(t, "Asthma", gjson.GetBytes(body, "SearchTermResponse.items.0.kndg_title").String())
}

func TestIMOClient_Tokenize(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(constvars.IMOTokenizePath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"content":"patient has asthma"}`, string(body))
		_, _ = w.Write([]byte(`{"entities":[]}`))
	})
	client := newTestClient(t, mux)

	body, err := client.Tokenize(context.Background(), "patient has asthma")

	require.NoError(t, err)
	assert.True(t, gjson.GetBytes(body, "entities").IsArray())
}

func TestIMOClient_UpstreamFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(constvars.IMOSearchPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := newTestClient(t, mux)

	_, err := client.CoreSearch(context.Background(), "asthma", "condition")

	assert.Error(t, err)
}
