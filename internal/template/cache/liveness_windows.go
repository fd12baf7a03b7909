//go:build windows

package cache

import "golang.org/x/sys/windows"

// stillActive is the exit code reported for running processes.
const stillActive = 259

// IsProcessAlive opens the process handle and checks its exit code.
// An access-denied open means the process exists under another account,
// which counts as alive.
func (platformChecker) IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return err == windows.ERROR_ACCESS_DENIED
	}
	defer windows.CloseHandle(handle)

	var code uint32
	if err := windows.GetExitCodeProcess(handle, &code); err != nil {
		return true
	}
	return code == stillActive
}
