// internal/gateway/gateway.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/metrics"
)

var (
	ErrModelTimeout    = errors.New("MODEL_TIMEOUT")
	ErrModelCallFailed = errors.New("MODEL_CALL_FAILED")
	ErrEmptyResponse   = errors.New("MODEL_EMPTY_RESPONSE")
)

// Completer is the single fallible call the orchestration stages depend on.
// Retries and model selection are internal to the implementation.
type Completer interface {
	Complete(ctx context.Context, req *Request) (string, error)
}

// Gateway sends structured prompts to the hosted provider and returns
// response text.
type Gateway struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func New(config *Config, log logger.Logger) *Gateway {
	return &Gateway{
		config: config,
		// No client-level timeout; the per-call context owns the deadline.
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{
			"component": "model-gateway",
		}),
	}
}

// Complete sends one prompt under the request's role and returns the raw
// response text. Transient provider failures are retried with exponential
// backoff; the context deadline aborts the loop.
func (g *Gateway) Complete(ctx context.Context, req *Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	role := g.config.roleFor(req.Role, req.Preset)
	requestBody := map[string]interface{}{
		"model":       role.Model,
		"system":      req.System,
		"prompt":      req.User,
		"max_tokens":  role.MaxTokens,
		"temperature": role.Temperature,
	}

	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				metrics.ModelCalls.WithLabelValues(string(req.Role), "timeout").Inc()
				return "", ErrModelTimeout
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", g.config.BaseURL+"/v1/complete", bytes.NewBuffer(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrModelCallFailed, err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if g.config.APIKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+g.config.APIKey)
		}

		resp, lastErr = g.client.Do(httpReq)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			metrics.ModelCalls.WithLabelValues(string(req.Role), "timeout").Inc()
			return "", ErrModelTimeout
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			stdErr := stderrors.NewModelTimeoutError(string(req.Role))
			g.logger.Warn("model call timed out", map[string]interface{}{
				"code":  string(stdErr.Code),
				"error": stdErr.Details,
			})
			metrics.ModelCalls.WithLabelValues(string(req.Role), "timeout").Inc()
			return "", ErrModelTimeout
		}
		stdErr := stderrors.NewModelCallFailedError(string(req.Role), lastErr)
		g.logger.Error("model call failed after retries", map[string]interface{}{
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
		metrics.ModelCalls.WithLabelValues(string(req.Role), "error").Inc()
		return "", fmt.Errorf("%w: %v", ErrModelCallFailed, lastErr)
	}

	if resp == nil {
		metrics.ModelCalls.WithLabelValues(string(req.Role), "error").Inc()
		return "", fmt.Errorf("%w: no successful response after retries", ErrModelCallFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		metrics.ModelCalls.WithLabelValues(string(req.Role), "error").Inc()
		return "", fmt.Errorf("%w: decode error: %v", ErrModelCallFailed, err)
	}

	if strings.TrimSpace(apiResponse.Text) == "" {
		metrics.ModelCalls.WithLabelValues(string(req.Role), "empty").Inc()
		return "", ErrEmptyResponse
	}

	g.logger.Debug("model call completed", map[string]interface{}{
		"role":  string(req.Role),
		"model": role.Model,
		"bytes": len(apiResponse.Text),
	})
	metrics.ModelCalls.WithLabelValues(string(req.Role), "ok").Inc()

	return apiResponse.Text, nil
}
