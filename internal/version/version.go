// Package version holds build-time version information, populated via
// ldflags by the release build.
package version

// Build information. Overridden at build time:
//
//	go build -ldflags "-X github.com/sddkit/sddkit/internal/version.Version=v0.3.0 ..."
var (
	// Version is the release version.
	Version = "dev"
	// GitCommit is the git commit the binary was built from.
	GitCommit = "unknown"
	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)
