package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"memorymatch/internal/model"
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
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeNameTaken        = "NAME_TAKEN"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeProgressNotFound = "PROGRESS_NOT_FOUND"
	CodeInvalidGameType  = "INVALID_GAME_TYPE"
	CodeInvalidLevel     = "INVALID_LEVEL"
	CodeInvalidScore     = "INVALID_SCORE"
	CodeInternalError    = "INTERNAL_ERROR"
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
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors. The duplicate name is a 400 rather than a 409:
	// clients treat it as a form-validation failure.
	switch {
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusBadRequest, APIError{CodeNameTaken, "This name is already taken"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrProgressNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProgressNotFound, "Progress not found"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Name must not be empty"}}
	case errors.Is(err, model.ErrInvalidGameType):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameType, "Invalid game type"}}
	case errors.Is(err, model.ErrInvalidLevel):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLevel, "Level must be at least 1"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScore, "Score must not be negative"}}

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
