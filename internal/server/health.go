// internal/server/health.go
package server

import (
	"context"
	"net/http"
	"time"
)

// HealthResponse reports service and backend status.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Timestamp  string            `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := map[string]string{
		"redis":         componentStatus(ctx, s.redis),
		"elasticsearch": componentStatus(ctx, s.es),
	}

	// Elasticsearch is optional (static catalog covers it); Redis down
	// degrades the context endpoints but generation still works.
	status := "healthy"
	for _, c := range components {
		if c != "up" {
			status = "degraded"
			break
		}
	}

	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:     status,
		Components: components,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

func componentStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return "not configured"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
