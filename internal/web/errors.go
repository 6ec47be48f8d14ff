package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Ubehebe/rowset/internal/logging"
)

// ErrorResponse is the JSON error envelope returned by every API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
// Logs the full message server-side but returns a sanitized message to the client.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logger := logging.FromContext(r.Context())
	if status >= 500 {
		logger.Error("request failed", "status", status, "error", message)
	} else {
		logger.Warn("request rejected", "status", status, "error", message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: sanitizeErrorMessage(message)})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

// sanitizeErrorMessage strips server-internal detail (filesystem paths,
// connection strings) from messages before they reach the client.
func sanitizeErrorMessage(message string) string {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "postgres://") || strings.Contains(lower, "password") {
		return "internal storage error"
	}
	return message
}
