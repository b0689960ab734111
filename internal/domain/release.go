package domain

// DefaultRemote is the remote tags are pushed to when none is given.
const DefaultRemote = "origin"

// ReleaseRequest holds the resolved inputs for one release run.
type ReleaseRequest struct {
	FromVersion VersionInput
	NewVersion  VersionInput
	Bump        BumpSpec

	VersionFile string
	TagPrefix   string

	Commit        bool
	CommitMessage string
	Tag           bool
	TagMessage    string
	Push          bool
	PushRemote    string
	Publish       bool

	DryRun bool
}

// CommitMessageFor returns the commit message, defaulting to the version itself.
func (r ReleaseRequest) CommitMessageFor(v *Version) string {
	if r.CommitMessage != "" {
		return r.CommitMessage
	}
	return v.String()
}

// TagMessageFor returns the tag message, defaulting to the tag name.
func (r ReleaseRequest) TagMessageFor(tag string) string {
	if r.TagMessage != "" {
		return r.TagMessage
	}
	return tag
}

// Remote returns the push remote, defaulting to origin.
func (r ReleaseRequest) Remote() string {
	if r.PushRemote != "" {
		return r.PushRemote
	}
	return DefaultRemote
}

// ReleaseResult holds what a release run produced.
type ReleaseResult struct {
	RunID      string
	OldVersion *Version
	NewVersion *Version
	// Explicit is set when the new version was supplied directly.
	Explicit    bool
	FileWritten bool
	Committed   bool
	TagName     string
	PushedTo    string
	ReleaseURL  string
}
