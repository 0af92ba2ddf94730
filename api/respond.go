package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
	// exposeErrors includes the raw message of unexpected errors in 500 bodies.
	exposeErrors bool
}

func NewResponder(logger zerolog.Logger, exposeErrors bool) Responder {
	return Responder{logger: logger, exposeErrors: exposeErrors}
}

// MessageResponse is the body of every successful response.
type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Check if response is too large (e.g., > 10MB)
	const maxResponseSize = 10 * 1024 * 1024 // 10MB
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large, truncating")

		truncatedJSON, err := json.Marshal(map[string]interface{}{
			"message":      "The requested data exceeds the maximum response size",
			"status":       "error",
			"maxSizeMB":    maxResponseSize / (1024 * 1024),
			"actualSizeMB": len(jsonData) / (1024 * 1024),
		})
		if err != nil {
			r.logger.Error().Err(err).Msg("error marshaling truncated response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		jsonData = truncatedJSON
		status = http.StatusRequestEntityTooLarge
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteData writes {message, data}.
func (r Responder) WriteData(w http.ResponseWriter, status int, message string, data any) {
	r.WriteJSON(w, status, MessageResponse{Message: message, Data: data})
}

// WriteMessage writes {message}.
func (r Responder) WriteMessage(w http.ResponseWriter, status int, message string) {
	r.WriteJSON(w, status, MessageResponse{Message: message})
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		response := ErrorResponse{
			Message: "Internal Server Error",
			Status:  "error",
		}
		if r.exposeErrors {
			response.Error = err.Error()
		}
		r.WriteJSON(w, http.StatusInternalServerError, response)
		return
	}

	response := ErrorResponse{
		Message: apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}
	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Int("status", apiErr.StatusCode).Msg("request failed")
		if r.exposeErrors && apiErr.Cause != nil {
			response.Error = apiErr.GetFullError()
		}
	}
	r.WriteJSON(w, apiErr.StatusCode, response)
}
