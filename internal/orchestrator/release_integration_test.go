package orchestrator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupReleaseRepo creates a repository with one commit and a bare origin remote.
func setupReleaseRepo(t *testing.T) (string, *git.Repository, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nconst VERSION = \"1.0.0\"\n"), 0o600)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("main.go")
	require.NoError(t, err)
	_, err = wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com"},
	})
	require.NoError(t, err)
	remoteDir := t.TempDir()
	remote, err := git.PlainInit(remoteDir, true)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{remoteDir}})
	require.NoError(t, err)
	return dir, repo, remote
}

func TestReleaseOrchestrator_EndToEnd(t *testing.T) {
	t.Run("Should commit, tag and push a minor release", func(t *testing.T) {
		dir, repo, remote := setupReleaseRepo(t)
		gitRepo, err := repository.NewGitRepository(dir, repository.GitOptions{
			AuthorName:  "Release Bot",
			AuthorEmail: "release@example.com",
		})
		require.NoError(t, err)
		journalDir := t.TempDir()
		stateRepo := repository.NewJSONStateRepository(afero.NewOsFs(), journalDir)
		out := new(bytes.Buffer)
		orch := NewReleaseOrchestrator(
			gitRepo,
			repository.NewGithubNoopRepository("acme", "widgets"),
			repository.NewFileSystemRepository(dir),
			stateRepo,
			out,
			zap.NewNop(),
		)
		req := domain.ReleaseRequest{
			FromVersion: domain.VersionFromString("1.0.0"),
			Bump:        domain.BumpSpec{Minor: true},
			VersionFile: "main.go",
			TagPrefix:   "v",
			Commit:      true,
			Tag:         true,
			Push:        true,
		}
		result, err := orch.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "1.1.0", result.NewVersion.String())

		data, err := os.ReadFile(filepath.Join(dir, "main.go"))
		require.NoError(t, err)
		assert.Equal(t, "package main\n\nconst VERSION = \"1.1.0\"\n", string(data))
		info, err := os.Stat(filepath.Join(dir, "main.go"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		head, err := repo.Head()
		require.NoError(t, err)
		commit, err := repo.CommitObject(head.Hash())
		require.NoError(t, err)
		assert.Equal(t, "1.1.0", strings.TrimSpace(commit.Message))
		assert.Equal(t, 1, commit.NumParents())

		ref, err := repo.Tag("v1.1.0")
		require.NoError(t, err)
		tagObj, err := repo.TagObject(ref.Hash())
		require.NoError(t, err, "tag must be annotated")
		assert.Equal(t, "v1.1.0", strings.TrimSpace(tagObj.Message))
		assert.Equal(t, head.Hash(), tagObj.Target)

		remoteRef, err := remote.Reference(plumbing.NewTagReferenceName("v1.1.0"), false)
		require.NoError(t, err)
		assert.Equal(t, ref.Hash(), remoteRef.Hash())

		state, err := stateRepo.LoadLatest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, result.RunID, state.RunID)
		assert.Equal(t, domain.RunStatusCompleted, state.Status)
		assert.Equal(t, "1.0.0", state.OldVersion)
		assert.Equal(t, "1.1.0", state.NewVersion)
		assert.Equal(t, domain.StepStatusSkipped, state.Step(domain.StepTypePublish).Status)
	})
	t.Run("Should leave commit in place when tag already exists", func(t *testing.T) {
		dir, repo, _ := setupReleaseRepo(t)
		head, err := repo.Head()
		require.NoError(t, err)
		_, err = repo.CreateTag("v1.1.0", head.Hash(), nil)
		require.NoError(t, err)
		gitRepo, err := repository.NewGitRepository(dir, repository.GitOptions{
			AuthorName:  "Release Bot",
			AuthorEmail: "release@example.com",
		})
		require.NoError(t, err)
		orch := NewReleaseOrchestrator(gitRepo, nil, repository.NewFileSystemRepository(dir), nil, nil, nil)
		req := domain.ReleaseRequest{
			Bump:        domain.BumpSpec{Minor: true},
			NewVersion:  domain.VersionFromString("1.1.0"),
			VersionFile: "main.go",
			TagPrefix:   "v",
			Commit:      true,
			Tag:         true,
		}
		result, err := orch.Execute(context.Background(), req)
		require.ErrorIs(t, err, domain.ErrTagExists)
		assert.True(t, result.Committed)
		newHead, err := repo.Head()
		require.NoError(t, err)
		assert.NotEqual(t, head.Hash(), newHead.Hash())
	})
}
