package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
)

const (
	msgValidation     = "Validation failed"
	msgInvalidUpdates = "Invalid updates!"
	msgUnableToLogin  = "Unable to login"
	msgInvalidBody    = "Invalid request body"
	msgAuthenticate   = "Please authenticate."
	msgNotFound       = "Not found"
	msgInternal       = "Internal server error"
)

// APIError is the single error shape the API returns.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string { return e.Message }

// errorEnvelope is the wire form of APIError. Error mirrors Message for
// clients that only read the "error" key.
type errorEnvelope struct {
	Status     string            `json:"status"`
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Error      string            `json:"error"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *APIError) envelope() errorEnvelope {
	return errorEnvelope{
		Status:     "error",
		StatusCode: e.StatusCode,
		Message:    e.Message,
		Error:      e.Message,
		Fields:     e.Fields,
	}
}

// TranslateError maps err to the APIError sent to the client. Only
// validation failures carry details; anything unrecognised becomes a bare
// 500.
func TranslateError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return &APIError{StatusCode: http.StatusBadRequest, Message: msgValidation, Fields: verr.Fields}
	case errors.Is(err, common.ErrInvalidUpdates):
		return &APIError{StatusCode: http.StatusBadRequest, Message: msgInvalidUpdates}
	case errors.Is(err, common.ErrorUnableToLogin):
		return &APIError{StatusCode: http.StatusBadRequest, Message: msgUnableToLogin}
	case errors.Is(err, common.ErrInvalidBody):
		return &APIError{StatusCode: http.StatusBadRequest, Message: msgInvalidBody}
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		return &APIError{StatusCode: http.StatusUnauthorized, Message: msgAuthenticate}
	case errors.Is(err, common.ErrorNotFound):
		return &APIError{StatusCode: http.StatusNotFound, Message: msgNotFound}
	default:
		return &APIError{StatusCode: http.StatusInternalServerError, Message: msgInternal}
	}
}

// writeError renders err through TranslateError. Server-side failures are
// logged with the original error, which never reaches the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := TranslateError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
	}
	s.writeJSON(w, r, apiErr.StatusCode, apiErr.envelope())
}
