package config

import "fmt"

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType int

const (
	// ConfigReadFailed indicates the configuration file could not be read.
	ConfigReadFailed ConfigErrorType = iota
	// ConfigParseFailed indicates the configuration file has invalid syntax.
	ConfigParseFailed
	// ConfigValidationFailed indicates a configuration value is invalid.
	ConfigValidationFailed
)

// ConfigError represents a configuration-related error.
type ConfigError struct {
	// Type is the error type.
	Type ConfigErrorType
	// File is the configuration file path, if known.
	File string
	// Field is the configuration field that caused the error, if any.
	Field string
	// Message is the error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.File != "" {
		msg = fmt.Sprintf("%s in %s", msg, e.File)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s [field: %s]", msg, e.Field)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(typ ConfigErrorType, file, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// NewFieldError creates a validation error for a specific field.
func NewFieldError(field, message string) *ConfigError {
	return &ConfigError{
		Type:    ConfigValidationFailed,
		Field:   field,
		Message: message,
	}
}
