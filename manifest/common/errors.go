package common

import (
	"maps"

	"github.com/abrtools/manifestkit/logging"
)

// ManifestError represents manifest processing errors with integrated logging
type ManifestError struct {
	Format  Format         `json:"format"`
	URL     string         `json:"url"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Fields  logging.Fields `json:"fields,omitempty"`
}

func (e *ManifestError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ManifestError) Unwrap() error {
	return e.Cause
}

// Log logs this error using the global logger
func (e *ManifestError) Log() {
	e.LogWith(logging.GetGlobalLogger())
}

// LogWith logs this error using a specific logger
func (e *ManifestError) LogWith(logger logging.Logger) {
	fields := logging.Fields{
		"format":     string(e.Format),
		"url":        e.URL,
		"error_code": e.Code,
	}

	maps.Copy(fields, e.Fields)

	logger.Error(e.Cause, e.Message, fields)
}

// Common error codes
const (
	ErrCodeEmptyContent      = "EMPTY_CONTENT"
	ErrCodeInvalidFormat     = "INVALID_FORMAT"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeInvalidURL        = "INVALID_URL"
	ErrCodeConnection        = "CONNECTION_FAILED"
	ErrCodeTimeout           = "TIMEOUT"
)

// NewManifestError creates a new manifest error
func NewManifestError(format Format, url, code, message string, cause error) *ManifestError {
	return &ManifestError{
		Format:  format,
		URL:     url,
		Code:    code,
		Message: message,
		Cause:   cause,
		Fields:  make(logging.Fields),
	}
}

// NewManifestErrorWithFields creates a new manifest error with additional fields
func NewManifestErrorWithFields(format Format, url, code, message string, cause error, fields logging.Fields) *ManifestError {
	return &ManifestError{
		Format:  format,
		URL:     url,
		Code:    code,
		Message: message,
		Cause:   cause,
		Fields:  fields,
	}
}
