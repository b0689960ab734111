package version

// VERSION is the released version of version-bump, rewritten by each release.
const VERSION = "0.1.0"

var (
	// Version may be overridden with -ldflags "-X .../pkg/version.Version=..."
	Version    = VERSION
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns a human-friendly version string for CLI output.
func Summary() string {
	if CommitHash == "" || CommitHash == "unknown" {
		return Version
	}
	short := CommitHash
	if len(short) > 7 {
		short = short[:7]
	}
	return Version + " (" + short + ")"
}
