// Package http provides HTTP handlers and middleware for the preview service.
// It includes the preview endpoint, health check endpoints, and middleware for
// logging, panic recovery, request limits, and rate limiting.
package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string `json:"status"`            // "healthy" or "unhealthy"
	Message string `json:"message,omitempty"` // Optional status message
}

// HealthHandler handles health check endpoint requests.
// The service is stateless so the checks are registered by the caller; each
// check is a named function returning an error when unhealthy.
type HealthHandler struct {
	Version string
	Checks  map[string]func() error
}

// ServeHTTP runs the registered checks and returns the application health
// status. Returns 200 OK if healthy, or 503 Service Unavailable if any check
// fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus, len(h.Checks))
	allHealthy := true

	for name, check := range h.Checks {
		if err := check(); err != nil {
			checks[name] = CheckStatus{Status: "unhealthy", Message: err.Error()}
			allHealthy = false
			continue
		}
		checks[name] = CheckStatus{Status: "healthy"}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// ReadyHandler handles Kubernetes readiness probe requests.
// The service holds no connections or warm state, so readiness only verifies
// the process is serving.
type ReadyHandler struct{}

// ServeHTTP returns 200 OK when the server can accept traffic.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		log.Printf("ready: failed to write response: %v", err)
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
