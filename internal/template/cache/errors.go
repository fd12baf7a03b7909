package cache

import "fmt"

// CacheErrorType represents the type of cache error.
type CacheErrorType int

const (
	// CacheCreateFailed indicates a cache directory could not be created.
	CacheCreateFailed CacheErrorType = iota
	// CacheUnsafePath indicates the cache path would violate the
	// never-under-the-working-directory invariant.
	CacheUnsafePath
	// CacheSweepFailed indicates the orphan sweep could not scan the temp root.
	CacheSweepFailed
)

// String returns the string representation of the error type.
func (t CacheErrorType) String() string {
	switch t {
	case CacheCreateFailed:
		return "CreateFailed"
	case CacheUnsafePath:
		return "UnsafePath"
	case CacheSweepFailed:
		return "SweepFailed"
	default:
		return "Unknown"
	}
}

// CacheError represents a cache-management error.
type CacheError struct {
	// Type is the error type classification.
	Type CacheErrorType
	// Message is the human-readable error message.
	Message string
	// Path is the cache path involved, if any.
	Path string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *CacheError) Error() string {
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("cache error [%s] at '%s': %s: %v", e.Type.String(), e.Path, e.Message, e.Cause)
		}
		return fmt.Sprintf("cache error [%s] at '%s': %s", e.Type.String(), e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("cache error [%s]: %s: %v", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error [%s]: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *CacheError) Unwrap() error {
	return e.Cause
}

// NewCacheError creates a new CacheError.
func NewCacheError(typ CacheErrorType, path, message string, cause error) *CacheError {
	return &CacheError{
		Type:    typ,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}
