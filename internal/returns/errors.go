package returns

import (
	"errors"
	"net/http"

	"github.com/callil/tax-ui/internal/inference"
	"github.com/callil/tax-ui/internal/workflow"
	"github.com/callil/tax-ui/pkg/storage"
)

var (
	ErrNotFound     = errors.New("tax return not found")
	ErrInvalidYear  = errors.New("invalid year")
	ErrInvalidFile  = errors.New("no PDF file provided")
	ErrFileTooLarge = errors.New("file exceeds upload size limit")
	ErrNoSource     = errors.New("source PDF not archived")
)

// MapHTTPStatus maps return, pipeline, and inference errors to HTTP status
// codes. Unparseable model output is 422; an oversized document is 400.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoSource):
		return http.StatusNotFound
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, inference.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, inference.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, workflow.ErrClassificationTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrInvalidYear),
		errors.Is(err, ErrInvalidFile),
		errors.Is(err, inference.ErrNoAPIKey),
		errors.Is(err, inference.ErrTooLarge),
		errors.Is(err, workflow.ErrInvalidDocument):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrParseResponse),
		errors.Is(err, workflow.ErrEmptyResponse),
		errors.Is(err, workflow.ErrIntegrityViolation):
		return http.StatusUnprocessableEntity
	default:
		return storage.MapHTTPStatus(err)
	}
}
