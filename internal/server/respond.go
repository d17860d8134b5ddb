package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/geo-locator/internal/model"
	"github.com/sells-group/geo-locator/internal/pipeline"
)

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"failed to marshal response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response) //nolint:errcheck
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// statusFor maps a locate error to an HTTP status.
func statusFor(err error) int {
	var ce *model.ConfigError
	switch {
	case errors.As(err, &ce):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrCanceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondWithLocateError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		zap.L().Error("server: locate failed", zap.Int("status", code), zap.Error(err))
	}
	respondWithError(w, code, err.Error())
}
