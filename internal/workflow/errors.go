package workflow

import "errors"

var (
	ErrInvalidDocument       = errors.New("invalid PDF document")
	ErrInvalidRange          = errors.New("invalid page range")
	ErrEmptyResponse         = errors.New("no response text from model")
	ErrParseResponse         = errors.New("could not parse model response")
	ErrClassificationTimeout = errors.New("classification timed out")
	ErrIntegrityViolation    = errors.New("classification does not cover every page exactly once")
	ErrClassifyFailed        = errors.New("failed to classify document")
	ErrExtractFailed         = errors.New("failed to extract tax data")
)
