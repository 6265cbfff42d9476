package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"ikdashboard/internal/dashboard"
	"ikdashboard/internal/data"
	"ikdashboard/internal/logger"
)

// statusFor maps an error to its HTTP status
func statusFor(err error) int {
	var selErr *dashboard.SelectionError
	var loadErr *data.LoadError
	switch {
	case errors.As(err, &selErr):
		return http.StatusBadRequest
	case errors.Is(err, data.ErrNotLoaded), errors.As(err, &loadErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeHTML(w http.ResponseWriter, status int, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status != http.StatusBadRequest {
		logger.FromContext(r.Context()).Error("Request failed", err)
	}
	writeJSON(w, status, map[string]string{
		"error":  err.Error(),
		"status": http.StatusText(status),
	})
}
