package repository

import "context"

// File status values returned by GetFileStatus.
const (
	FileStatusClean    = "clean"
	FileStatusModified = "modified"
)

// GitRepository defines the version-control operations a release needs.
// Every implementation is bound to one repository root.
type GitRepository interface {
	Root() string
	ListTags(ctx context.Context) ([]string, error)
	TagExists(ctx context.Context, tag string) (bool, error)
	GetFileStatus(ctx context.Context, path string) (string, error)
	AddFile(ctx context.Context, path string) error
	Commit(ctx context.Context, message string) (string, error)
	CreateTag(ctx context.Context, tag, msg string) error
	PushTag(ctx context.Context, remote, tag string) error
	RemoteURL(ctx context.Context, remote string) (string, error)
}
