package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Version reported by the health endpoint.
const Version = "2.0.0"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondSuccess wraps data in the success envelope the viewer consumes.
func respondSuccess(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   data,
	})
}

// respondSuccessMessage sends a success envelope with a message and optional data.
func respondSuccessMessage(w http.ResponseWriter, message string, data any) {
	body := map[string]any{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	respondJSON(w, http.StatusOK, body)
}

// respondError sends an error envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"status":  "error",
		"message": message,
	})
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"database":  "connected",
	})
}
