package server

import (
	"net/http"
	"time"

	"github.com/bakeryops/batchplan/pkg/serializer"
)

// HealthResponse reports liveness or readiness of the planning service.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Service   string    `json:"service" yaml:"service"`
	Version   string    `json:"version" yaml:"version"`
	Uptime    string    `json:"uptime" yaml:"uptime"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s *Server) healthResponse(status, reason string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Service:   s.config.Name,
		Version:   s.config.Version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now(),
		Reason:    reason,
	}
}

// handleHealth handles GET /health. Liveness only: it answers as long as
// the process serves requests, regardless of readiness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, s.healthResponse("healthy", ""))
}

// handleReady handles GET /ready. The server starts unready and flips via
// SetReady once its handlers are wired.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		serializer.RespondJSON(w, http.StatusServiceUnavailable,
			s.healthResponse("not_ready", "service is initializing"))
		return
	}

	serializer.RespondJSON(w, http.StatusOK, s.healthResponse("ready", ""))
}
