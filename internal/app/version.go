package app

import "fmt"

// Build metadata, injected with -ldflags:
//
//	go build -ldflags "-X github.com/vocadrill/backend/internal/app.Version=1.4.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion renders the build metadata as a single string for the startup
// log line and the /health payload.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
