package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReleaseUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	t.Run("Should mark prerelease versions", func(t *testing.T) {
		githubRepo := new(mockGithubRepository)
		uc := &PublishReleaseUseCase{GithubRepo: githubRepo}
		v, err := domain.NewVersion("2.0.0-rc.1")
		require.NoError(t, err)
		githubRepo.On("CreateRelease", ctx, "v2.0.0-rc.1", "v2.0.0-rc.1", "notes", true).
			Return("https://example.test/r/1", nil)
		url, err := uc.Execute(ctx, "v2.0.0-rc.1", "notes", v)
		require.NoError(t, err)
		assert.Equal(t, "https://example.test/r/1", url)
		githubRepo.AssertExpectations(t)
	})
	t.Run("Should wrap publish failures", func(t *testing.T) {
		githubRepo := new(mockGithubRepository)
		uc := &PublishReleaseUseCase{GithubRepo: githubRepo}
		v, err := domain.NewVersion("2.0.0")
		require.NoError(t, err)
		githubRepo.On("CreateRelease", ctx, "v2.0.0", "v2.0.0", "v2.0.0", false).Return("", errors.New("403"))
		_, err = uc.Execute(ctx, "v2.0.0", "v2.0.0", v)
		assert.True(t, domain.IsToolError(err, domain.ToolOpPublish))
	})
}
