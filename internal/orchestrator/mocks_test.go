package orchestrator

import (
	"context"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository - implements ALL methods from GitRepository interface
type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) Root() string {
	return "/repo"
}
func (m *mockGitRepository) ListTags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *mockGitRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}
func (m *mockGitRepository) GetFileStatus(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}
func (m *mockGitRepository) AddFile(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
func (m *mockGitRepository) Commit(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}
func (m *mockGitRepository) CreateTag(ctx context.Context, tag, msg string) error {
	args := m.Called(ctx, tag, msg)
	return args.Error(0)
}
func (m *mockGitRepository) PushTag(ctx context.Context, remote, tag string) error {
	args := m.Called(ctx, remote, tag)
	return args.Error(0)
}
func (m *mockGitRepository) RemoteURL(ctx context.Context, remote string) (string, error) {
	args := m.Called(ctx, remote)
	return args.String(0), args.Error(1)
}

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) CreateRelease(
	ctx context.Context,
	tag, name, body string,
	prerelease bool,
) (string, error) {
	args := m.Called(ctx, tag, name, body, prerelease)
	return args.String(0), args.Error(1)
}

// Mock for StateRepository
type mockStateRepository struct{ mock.Mock }

func (m *mockStateRepository) Save(ctx context.Context, state *domain.RunState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}
func (m *mockStateRepository) Load(ctx context.Context, runID string) (*domain.RunState, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunState), args.Error(1)
}
func (m *mockStateRepository) LoadLatest(ctx context.Context) (*domain.RunState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunState), args.Error(1)
}
func (m *mockStateRepository) Exists(ctx context.Context, runID string) (bool, error) {
	args := m.Called(ctx, runID)
	return args.Bool(0), args.Error(1)
}
