// Package debug prints opt-in diagnostic output to stderr. It is off by
// default and enabled by the --debug flag or the SDDKIT_DEBUG environment
// variable.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled = os.Getenv("SDDKIT_DEBUG") != ""
	noColor bool
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

// SetDebug enables or disables debug output.
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// SetNoColor disables ANSI colors in debug output.
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// IsEnabled reports whether debug output is enabled.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// header returns the timestamped line prefix, or ok=false when debug
// output is off.
func header() (prefix string, color bool, ok bool) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return "", false, false
	}
	ts := time.Now().Format("15:04:05.000")
	if noColor {
		return fmt.Sprintf("[DEBUG] %s", ts), false, true
	}
	return fmt.Sprintf("%s[DEBUG]%s %s%s%s", colorCyan, colorReset, colorGray, ts, colorReset), true, true
}

// Debug prints a formatted debug message.
func Debug(format string, args ...interface{}) {
	prefix, _, ok := header()
	if !ok {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// DebugSection prints a section header marking the start of a workflow.
func DebugSection(section string) {
	prefix, color, ok := header()
	if !ok {
		return
	}
	if color {
		fmt.Fprintf(os.Stderr, "%s %s=== %s ===%s\n", prefix, colorCyan, section, colorReset)
	} else {
		fmt.Fprintf(os.Stderr, "%s === %s ===\n", prefix, section)
	}
}

// DebugValue prints key = value style debug info.
func DebugValue(key string, value interface{}) {
	prefix, color, ok := header()
	if !ok {
		return
	}
	if color {
		fmt.Fprintf(os.Stderr, "%s %s%s%s = %v\n", prefix, colorCyan, key, colorReset, value)
	} else {
		fmt.Fprintf(os.Stderr, "%s %s = %v\n", prefix, key, value)
	}
}

// DebugJSON prints structured data as indented JSON.
func DebugJSON(key string, v interface{}) {
	prefix, color, ok := header()
	if !ok {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("failed to marshal %s to JSON: %v", key, err)
		return
	}
	if color {
		fmt.Fprintf(os.Stderr, "%s %s%s%s:\n%s\n", prefix, colorCyan, key, colorReset, data)
	} else {
		fmt.Fprintf(os.Stderr, "%s %s:\n%s\n", prefix, key, data)
	}
}
