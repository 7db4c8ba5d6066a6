package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/eduportfolio/eduportfolio-be/internal/apperror"
)

// envelope is the JSON shape of every API response.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// respondData writes a success envelope carrying data.
func respondData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

// respondMessage writes a success envelope carrying only a message.
func respondMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Message: message}); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

// respondError maps taxonomy errors to their status codes and renders the
// client-facing message. Anything else is logged and returned as a generic
// 500 so internals never leak.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "server error"

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode()
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		log.Warn().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(envelope{Success: false, Message: message}); encErr != nil {
		log.Error().Err(encErr).Msg("Failed to write error response")
	}
}

// decodeBody decodes a JSON request body into dst, mapping failures to a
// validation error.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("", "invalid request body")
	}
	return nil
}
