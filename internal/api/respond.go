package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vijay-prabhu/neighborfit/internal/logging"
	"github.com/vijay-prabhu/neighborfit/internal/match"
	"github.com/vijay-prabhu/neighborfit/internal/review"
	"github.com/vijay-prabhu/neighborfit/internal/service"
	"github.com/vijay-prabhu/neighborfit/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error     string                  `json:"error"`
	Fields    []validation.FieldError `json:"fields,omitempty"`
	RequestID string                  `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorBody{
		Error:     msg,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
}

// statusFor maps service and core errors onto HTTP status codes
func statusFor(err error) int {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, match.ErrInvalidPreference),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, service.ErrMixedReview):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrNoPreferences):
		return http.StatusNotFound
	case errors.Is(err, match.ErrMalformedData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Internal errors are logged and
// their detail withheld from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, status, "internal server error")
		return
	}

	body := errorBody{
		Error:     err.Error(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	writeJSON(w, status, body)
}

// decodeBody reads a single JSON object into v, rejecting unknown fields
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
