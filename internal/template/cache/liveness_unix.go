//go:build !windows

package cache

import (
	"errors"
	"syscall"
)

// IsProcessAlive checks the process table with a null signal.
// EPERM means the process exists but belongs to another user, which
// still counts as alive.
func (platformChecker) IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
