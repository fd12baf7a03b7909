package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// InitFailed indicates project initialization failed.
	InitFailed AppErrorType = iota
	// ResolveFailed indicates template resolution failed.
	ResolveFailed
	// CopyFailed indicates copying templates into the project failed.
	CopyFailed
	// ExportFailed indicates exporting bundled templates failed.
	ExportFailed
	// ValidationFailed indicates option validation failed.
	ValidationFailed
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewInitError creates an init error.
func NewInitError(message string, cause error) *AppError {
	return NewAppError(InitFailed, message, cause)
}

// NewResolveError creates a resolution error.
func NewResolveError(message string, cause error) *AppError {
	return NewAppError(ResolveFailed, message, cause)
}

// NewCopyError creates a copy error.
func NewCopyError(message string, cause error) *AppError {
	return NewAppError(CopyFailed, message, cause)
}

// NewExportError creates an export error.
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ExportFailed, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}
