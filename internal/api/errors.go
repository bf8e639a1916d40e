package api

import (
	"errors"
	"net/http"

	"lakewatch/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
// Submission, fetch, and permission failures all surface as 500 with the
// underlying service message in the body; the dashboard has no
// error-code-to-friendly-message translation layer.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
