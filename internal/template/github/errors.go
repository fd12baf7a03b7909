package github

import (
	"fmt"
	"time"
)

// DownloadErrorType represents the type of download error.
type DownloadErrorType int

const (
	// DownloadNetworkFailed indicates the connection could not be established
	// or was interrupted.
	DownloadNetworkFailed DownloadErrorType = iota
	// DownloadAPIFailed indicates GitHub answered with a non-success status.
	DownloadAPIFailed
	// DownloadRateLimited indicates GitHub rejected the request due to rate
	// limiting.
	DownloadRateLimited
	// DownloadTimeout indicates the request exceeded the configured timeout.
	DownloadTimeout
	// DownloadValidationFailed indicates the archive or the extracted
	// template structure is invalid.
	DownloadValidationFailed
)

// String returns the string representation of the error type.
func (t DownloadErrorType) String() string {
	switch t {
	case DownloadNetworkFailed:
		return "NetworkFailed"
	case DownloadAPIFailed:
		return "APIFailed"
	case DownloadRateLimited:
		return "RateLimited"
	case DownloadTimeout:
		return "Timeout"
	case DownloadValidationFailed:
		return "ValidationFailed"
	default:
		return "Unknown"
	}
}

// DownloadError represents a downloader-specific error. It carries the
// URL and phase so callers can render an actionable message without a
// stack trace.
type DownloadError struct {
	// Type is the error type classification.
	Type DownloadErrorType
	// Message is the human-readable error message.
	Message string
	// URL is the request URL or archive path involved.
	URL string
	// Phase names the stage the error occurred in (download, extract, validate).
	Phase string
	// StatusCode is the HTTP status code for API errors, 0 otherwise.
	StatusCode int
	// RetryAfter is how long to wait before retrying, for rate-limit errors.
	RetryAfter time.Duration
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	msg := fmt.Sprintf("github download error [%s] during %s for '%s': %s",
		e.Type.String(), e.Phase, e.URL, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping.
func (e *DownloadError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a network failure error.
func NewNetworkError(url string, cause error) *DownloadError {
	return &DownloadError{
		Type:    DownloadNetworkFailed,
		Message: "connection failed (check network connectivity, or use --offline)",
		URL:     url,
		Phase:   "download",
		Cause:   cause,
	}
}

// NewAPIError creates a GitHub API failure error.
func NewAPIError(url string, statusCode int, message string) *DownloadError {
	return &DownloadError{
		Type:       DownloadAPIFailed,
		Message:    message,
		URL:        url,
		Phase:      "download",
		StatusCode: statusCode,
	}
}

// NewRateLimitError creates a rate-limit error carrying the retry delay.
func NewRateLimitError(url string, retryAfter time.Duration) *DownloadError {
	return &DownloadError{
		Type:       DownloadRateLimited,
		Message:    fmt.Sprintf("rate limited by GitHub, retry after %s", retryAfter.Round(time.Second)),
		URL:        url,
		Phase:      "download",
		StatusCode: 403,
		RetryAfter: retryAfter,
	}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(url string, cause error) *DownloadError {
	return &DownloadError{
		Type:    DownloadTimeout,
		Message: "request timed out (retry, or use --offline with a local template directory)",
		URL:     url,
		Phase:   "download",
		Cause:   cause,
	}
}

// NewValidationError creates a validation error for a given phase.
func NewValidationError(url, phase, message string, cause error) *DownloadError {
	return &DownloadError{
		Type:    DownloadValidationFailed,
		Message: message,
		URL:     url,
		Phase:   phase,
		Cause:   cause,
	}
}
