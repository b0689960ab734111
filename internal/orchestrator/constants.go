package orchestrator

import (
	"os"
	"time"
)

// Timeout constants for release runs
var (
	// DefaultWorkflowTimeout bounds one release run, including every push and API call
	DefaultWorkflowTimeout = getTimeoutOrDefault("VERSION_BUMP_TIMEOUT", 10*time.Minute)
)

// getTimeoutOrDefault returns the duration in envVar, or def when unset or malformed
func getTimeoutOrDefault(envVar string, def time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil && duration > 0 {
			return duration
		}
	}
	return def
}
