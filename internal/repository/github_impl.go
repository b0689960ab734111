package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/compozy/versionbump/internal/config"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new GithubRepository with validation.
func NewGithubRepository(token, owner, repo string) (GithubRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	return newGithubRepository(oauth2.NewClient(context.Background(), ts), owner, repo), nil
}

func newGithubRepository(httpClient *http.Client, owner, repo string) *githubRepository {
	return &githubRepository{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
	}
}

// CreateRelease publishes a release for tag.
func (r *githubRepository) CreateRelease(
	ctx context.Context,
	tag, name, body string,
	prerelease bool,
) (string, error) {
	release, _, err := r.client.Repositories.CreateRelease(ctx, r.owner, r.repo, &github.RepositoryRelease{
		TagName:    github.Ptr(tag),
		Name:       github.Ptr(name),
		Body:       github.Ptr(body),
		Prerelease: github.Ptr(prerelease),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create release %s for %s/%s: %w", tag, r.owner, r.repo, err)
	}
	return release.GetHTMLURL(), nil
}
