package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jcaldw/trickortreth/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeEmptyMessage    = "EMPTY_MESSAGE"
	CodeMessageTooLong  = "MESSAGE_TOO_LONG"
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodeVisitNotFound   = "VISIT_NOT_FOUND"
	CodeAlreadyDecided  = "ALREADY_DECIDED"
	CodeDecisionPending = "DECISION_PENDING"
	CodeQueueExhausted  = "QUEUE_EXHAUSTED"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrEmptyMessage):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyMessage, "Message must not be empty"}}
	case errors.Is(err, model.ErrMessageTooLong):
		return &httpError{http.StatusBadRequest, APIError{CodeMessageTooLong, "Message exceeds the maximum length"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrVisitNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeVisitNotFound, "Visit not found"}}
	case errors.Is(err, model.ErrVisitAlreadyDecided):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyDecided, "Visit has already been decided"}}
	case errors.Is(err, model.ErrDecisionPending):
		return &httpError{http.StatusConflict, APIError{CodeDecisionPending, "A decision is already in flight"}}
	case errors.Is(err, model.ErrQueueExhausted):
		return &httpError{http.StatusConflict, APIError{CodeQueueExhausted, "No visitor to decide on"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
