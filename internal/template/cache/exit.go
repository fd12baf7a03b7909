package cache

import "sync"

// Exit-time cleanup registry. Go has no atexit, so managers register
// themselves here the first time they create a directory and the process
// entry point runs ExitCleanup via defer before returning from main.
// Registration is lazy and one-time per manager.

var (
	exitMu       sync.Mutex
	exitManagers []*Manager
)

// registerExitManager adds a manager to the exit cleanup registry.
func registerExitManager(m *Manager) {
	exitMu.Lock()
	defer exitMu.Unlock()
	exitManagers = append(exitManagers, m)
}

// ExitCleanup removes every cache directory tracked by every manager in
// this process. Best-effort; failures are logged and swallowed. Safe to
// call multiple times.
func ExitCleanup() {
	exitMu.Lock()
	managers := make([]*Manager, len(exitManagers))
	copy(managers, exitManagers)
	exitMu.Unlock()

	for _, m := range managers {
		m.CleanupAll()
	}
}
