// internal/gateway/gateway_test.go
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/config"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Timeout:    5 * time.Second,
		MaxRetries: 2,
		Roles: map[string]config.RoleConfig{
			"classification": {Model: "classify-1", MaxTokens: 512, Temperature: 0},
			"reasoning":      {Model: "reason-1", MaxTokens: 2048, Temperature: 0.3},
			"content":        {Model: "content-1", MaxTokens: 1536, Temperature: 0.7},
		},
		Presets: map[string]map[string]string{
			"fast": {"content": "content-mini"},
		},
	}
}

func TestComplete_SendsRoleModelAndAuth(t *testing.T) {
	var captured map[string]interface{}
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]string{"text": "hello"})
	}))
	defer srv.Close()

	g := New(testConfig(srv.URL), logger.NewNoOpLogger())
	text, err := g.Complete(context.Background(), &Request{
		Role:   RoleReasoning,
		System: "you are a planner",
		User:   "plan a page",
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "reason-1", captured["model"])
	assert.Equal(t, "you are a planner", captured["system"])
	assert.Equal(t, "plan a page", captured["prompt"])
	assert.Equal(t, float64(2048), captured["max_tokens"])
}

func TestComplete_PresetOverridesModel(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]string{"text": "x"})
	}))
	defer srv.Close()

	g := New(testConfig(srv.URL), logger.NewNoOpLogger())
	_, err := g.Complete(context.Background(), &Request{Role: RoleContent, User: "u", Preset: "fast"})

	require.NoError(t, err)
	assert.Equal(t, "content-mini", captured["model"])
}

func TestComplete_UnknownPresetKeepsRoleModel(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]string{"text": "x"})
	}))
	defer srv.Close()

	g := New(testConfig(srv.URL), logger.NewNoOpLogger())
	_, err := g.Complete(context.Background(), &Request{Role: RoleContent, User: "u", Preset: "turbo"})

	require.NoError(t, err)
	assert.Equal(t, "content-1", captured["model"])
}

func TestComplete_RetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "recovered"})
	}))
	defer srv.Close()

	g := New(testConfig(srv.URL), logger.NewNoOpLogger())
	text, err := g.Complete(context.Background(), &Request{Role: RoleClassification, User: "u"})

	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestComplete_ExhaustedRetriesReturnCallFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := New(testConfig(srv.URL), logger.NewNoOpLogger())
	_, err := g.Complete(context.Background(), &Request{Role: RoleContent, User: "u"})

	assert.ErrorIs(t, err, ErrModelCallFailed)
}

func TestComplete_TimeoutReturnsModelTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"text": "too late"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	g := New(cfg, logger.NewNoOpLogger())

	_, err := g.Complete(context.Background(), &Request{Role: RoleContent, User: "u"})

	assert.ErrorIs(t, err, ErrModelTimeout)
}

func TestComplete_EmptyTextIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"text": "   "})
	}))
	defer srv.Close()

	g := New(testConfig(srv.URL), logger.NewNoOpLogger())
	_, err := g.Complete(context.Background(), &Request{Role: RoleContent, User: "u"})

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestComplete_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"text": "x"})
	}))
	defer srv.Close()

	g := New(testConfig(srv.URL), logger.NewNoOpLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Complete(ctx, &Request{Role: RoleContent, User: "u"})

	assert.ErrorIs(t, err, ErrModelTimeout)
}
