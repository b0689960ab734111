package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// GitOptions configures the identity and credentials used for writes.
type GitOptions struct {
	// AuthorName and AuthorEmail sign commits and tags. When empty, go-git falls
	// back to the user section of the git configuration.
	AuthorName  string
	AuthorEmail string
	// Token authenticates pushes to http(s) remotes.
	Token string
}

// gitRepository is the implementation of the GitRepository interface.
type gitRepository struct {
	repo *git.Repository
	root string
	opts GitOptions
}

// NewGitRepository opens the repository containing path.
func NewGitRepository(path string, opts GitOptions) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}
	w, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	return &gitRepository{repo: repo, root: w.Filesystem.Root(), opts: opts}, nil
}

// Root returns the worktree root all paths are relative to.
func (r *gitRepository) Root() string {
	return r.root
}

// ListTags returns the short names of all tags, sorted.
func (r *gitRepository) ListTags(_ context.Context) ([]string, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	var tags []string
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	sort.Strings(tags)
	return tags, nil
}

// TagExists checks if a tag exists.
func (r *gitRepository) TagExists(_ context.Context, tag string) (bool, error) {
	_, err := r.repo.Tag(tag)
	if errors.Is(err, git.ErrTagNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check tag %s: %w", tag, err)
	}
	return true, nil
}

// GetFileStatus returns "clean" if the file matches HEAD and the index, "modified" otherwise.
func (r *gitRepository) GetFileStatus(_ context.Context, path string) (string, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return "", fmt.Errorf("failed to get status: %w", err)
	}
	// Status only lists changed paths.
	fileStatus, ok := status[toSlash(path)]
	if !ok || (fileStatus.Worktree == git.Unmodified && fileStatus.Staging == git.Unmodified) {
		return FileStatusClean, nil
	}
	return FileStatusModified, nil
}

// AddFile stages a single path.
func (r *gitRepository) AddFile(_ context.Context, path string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := w.Add(toSlash(path)); err != nil {
		return fmt.Errorf("failed to add %s: %w", path, err)
	}
	return nil
}

// Commit creates a commit with the given message and returns its hash.
func (r *gitRepository) Commit(_ context.Context, message string) (string, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	hash, err := w.Commit(message, &git.CommitOptions{Author: r.signature()})
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", err)
	}
	return hash.String(), nil
}

// CreateTag creates an annotated tag at HEAD.
func (r *gitRepository) CreateTag(_ context.Context, tag, msg string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	_, err = r.repo.CreateTag(tag, head.Hash(), &git.CreateTagOptions{
		Message: msg,
		Tagger:  r.signature(),
	})
	if errors.Is(err, git.ErrTagExists) {
		return fmt.Errorf("%w: %s", domain.ErrTagExists, tag)
	}
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

// PushTag pushes a tag to the named remote.
func (r *gitRepository) PushTag(ctx context.Context, remote, tag string) error {
	refSpec := config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag))
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       r.getAuth(remote),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %s to %s: %w", tag, remote, err)
	}
	return nil
}

// RemoteURL returns the first URL configured for a remote.
func (r *gitRepository) RemoteURL(_ context.Context, remote string) (string, error) {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", remote, err)
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remote)
	}
	return urls[0], nil
}

// signature returns the configured identity, or nil to let go-git read it from git config.
func (r *gitRepository) signature() *object.Signature {
	if r.opts.AuthorName == "" || r.opts.AuthorEmail == "" {
		return nil
	}
	return &object.Signature{
		Name:  r.opts.AuthorName,
		Email: r.opts.AuthorEmail,
		When:  time.Now(),
	}
}

// getAuth returns token authentication for http(s) remotes. Other remotes get nil
// so go-git picks its default (ssh agent) method.
func (r *gitRepository) getAuth(remote string) transport.AuthMethod {
	if r.opts.Token == "" {
		return nil
	}
	url, err := r.RemoteURL(context.Background(), remote)
	if err != nil || !strings.HasPrefix(url, "http") {
		return nil
	}
	// Use x-access-token as username for GitHub token authentication
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: r.opts.Token,
	}
}

func toSlash(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
