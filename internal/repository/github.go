package repository

import "context"

// GithubRepository defines the GitHub API operations used after a tag is pushed.
type GithubRepository interface {
	// CreateRelease publishes a release for an existing tag and returns its URL.
	CreateRelease(ctx context.Context, tag, name, body string, prerelease bool) (string, error)
}
