package http

import (
	"errors"
	"net/http"

	"github.com/couchcryptid/flood-risk-service/internal/domain"
)

// Client-facing error messages.
const (
	MsgCityRequired      = "City required"
	MsgMissingCredential = "Missing OpenWeather key"
	MsgAssessmentFailed  = "Failed to generate flood alert"
)

// ErrorBody is the JSON payload returned for failed assessments.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse maps an assessment error to a status code and body. Upstream
// failures carry the upstream payload, or the error message when the upstream
// never answered.
func ErrorResponse(err error) (int, ErrorBody) {
	switch {
	case errors.Is(err, domain.ErrCityRequired):
		return http.StatusBadRequest, ErrorBody{Error: MsgCityRequired}
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusInternalServerError, ErrorBody{Error: MsgMissingCredential}
	}

	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		return http.StatusInternalServerError, ErrorBody{Error: MsgAssessmentFailed, Details: upErr.Details()}
	}
	return http.StatusInternalServerError, ErrorBody{Error: MsgAssessmentFailed, Details: err.Error()}
}
