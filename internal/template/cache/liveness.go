package cache

// ProcessChecker determines whether the process owning a cache directory
// is still running. The orphan sweep must never remove a live sibling's
// cache, so the platform implementation errs on the side of "alive" when
// liveness cannot be determined.
type ProcessChecker interface {
	// IsProcessAlive reports whether a process with the given PID exists.
	IsProcessAlive(pid int) bool
}

// platformChecker is the OS-specific ProcessChecker implementation.
// See liveness_unix.go and liveness_windows.go.
type platformChecker struct{}
