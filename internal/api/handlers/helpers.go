package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/apex/log"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// writeJSON writes v as the JSON body with status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("encode response")
	}
}

// writeError writes {"error": message} with status code.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// parseLimit reads ?limit=, falling back to the default for missing or
// invalid values and capping at maxListLimit.
func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
