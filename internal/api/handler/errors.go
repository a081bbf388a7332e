package handler

import (
	"net/http"

	"memorymatch/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest   = apierr.CodeInvalidRequest
	CodeNameTaken        = apierr.CodeNameTaken
	CodePlayerNotFound   = apierr.CodePlayerNotFound
	CodeGameNotFound     = apierr.CodeGameNotFound
	CodeProgressNotFound = apierr.CodeProgressNotFound
	CodeInvalidGameType  = apierr.CodeInvalidGameType
	CodeInvalidLevel     = apierr.CodeInvalidLevel
	CodeInvalidScore     = apierr.CodeInvalidScore
	CodeInternalError    = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
