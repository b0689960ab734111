package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseVersionUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	t.Run("Should select latest version from tags", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		out := new(bytes.Buffer)
		uc := &ResolveBaseVersionUseCase{GitRepo: gitRepo, Out: out}
		gitRepo.On("ListTags", ctx).Return([]string{"v1.2.3", "v1.3.0", "not-a-version", "v1.2.9"}, nil)
		v, err := uc.Execute(ctx, domain.VersionInput{})
		require.NoError(t, err)
		assert.Equal(t, "1.3.0", v.String())
		assert.Equal(t, "$ git tag --list\n", out.String())
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should fall back to zero version without tags", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &ResolveBaseVersionUseCase{GitRepo: gitRepo}
		gitRepo.On("ListTags", ctx).Return([]string{}, nil)
		v, err := uc.Execute(ctx, domain.VersionInput{})
		require.NoError(t, err)
		assert.Equal(t, "0.0.0", v.String())
	})
	t.Run("Should use explicit from-version without listing tags", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &ResolveBaseVersionUseCase{GitRepo: gitRepo}
		v, err := uc.Execute(ctx, domain.VersionFromString("1.0.0"))
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", v.String())
		gitRepo.AssertNotCalled(t, "ListTags", ctx)
	})
	t.Run("Should reject malformed from-version", func(t *testing.T) {
		uc := &ResolveBaseVersionUseCase{GitRepo: new(mockGitRepository)}
		_, err := uc.Execute(ctx, domain.VersionFromString("1.0"))
		var invalid *domain.InvalidVersionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "1.0", invalid.Input)
	})
	t.Run("Should wrap tag listing failures", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &ResolveBaseVersionUseCase{GitRepo: gitRepo}
		gitRepo.On("ListTags", ctx).Return(nil, errors.New("repository corrupted"))
		_, err := uc.Execute(ctx, domain.VersionInput{})
		assert.True(t, domain.IsToolError(err, domain.ToolOpListTags))
		assert.ErrorContains(t, err, "repository corrupted")
	})
}
