package usecase

import (
	"context"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
)

// PublishReleaseUseCase creates a hosted release for a pushed tag.
type PublishReleaseUseCase struct {
	GithubRepo repository.GithubRepository
}

// Execute publishes tag and returns the release URL. Prerelease versions are marked as such.
func (uc *PublishReleaseUseCase) Execute(
	ctx context.Context,
	tag, message string,
	v *domain.Version,
) (string, error) {
	url, err := uc.GithubRepo.CreateRelease(ctx, tag, tag, message, v.Prerelease() != "")
	if err != nil {
		return "", domain.NewToolError(domain.ToolOpPublish, err)
	}
	return url, nil
}
