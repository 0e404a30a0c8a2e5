// internal/server/generate.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/contextstore"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/events"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/orchestrator"
)

// handleGenerate streams one generation run as server-sent events. Every
// request problem is reported as a JSON error before the stream opens;
// once SSE headers go out the only error channel is the error event.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("query")
	contextID := q.Get("contextId")

	var extension *models.ExtensionContext
	if contextID != "" {
		ec, err := s.store.Get(r.Context(), contextID)
		switch {
		case errors.Is(err, contextstore.ErrNotFound):
			s.writeError(w, stderrors.NewContextNotFoundError(contextID))
			return
		case errors.Is(err, contextstore.ErrMalformed):
			s.writeError(w, stderrors.NewContextMalformedError(contextID, err))
			return
		case err != nil:
			s.writeError(w, stderrors.NewContextStoreUnavailableError(err))
			return
		}
		extension = ec
	}

	// An explicit query always wins over the stored context's query.
	previousQueries := q["previousQuery"]
	if extension != nil {
		if query == "" {
			query = extension.Query
		}
		if len(previousQueries) == 0 {
			previousQueries = extension.PreviousQueries
		}
	}
	if query == "" {
		s.writeError(w, stderrors.NewInvalidRequestError("query parameter or stored context query required"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, stderrors.NewStreamSetupFailedError("response writer does not support streaming"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The run is detached from the request context: a client disconnect
	// never cancels an in-flight model call, writing just stops.
	runCtx := context.WithoutCancel(r.Context())

	sender := events.NewChanSender(64)
	go func() {
		defer sender.Close()
		s.runner.Run(runCtx, &orchestrator.RunInput{
			Query:           query,
			Slug:            q.Get("slug"),
			PreviousQueries: previousQueries,
			Extension:       extension,
			Preset:          q.Get("preset"),
		}, sender)
	}()

	// Drain the full stream even after a write error so the run's sends
	// never block; writing just stops.
	writeFailed := false
	for e := range sender.Events() {
		if writeFailed {
			continue
		}
		payload, err := e.MarshalPayload()
		if err != nil {
			s.logger.Error("event payload marshal failed", map[string]interface{}{
				"eventType": string(e.Type),
				"error":     err.Error(),
			})
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, payload); err != nil {
			writeFailed = true
			s.logger.Debug("client disconnected mid-stream", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		flusher.Flush()
	}

	// Small grace period so proxies deliver the final frame before close.
	if !writeFailed && s.config.StreamCloseDelay > 0 {
		time.Sleep(time.Duration(s.config.StreamCloseDelay) * time.Millisecond)
	}
}
