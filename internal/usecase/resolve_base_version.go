package usecase

import (
	"context"
	"io"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
)

// ResolveBaseVersionUseCase determines the version a release starts from.
type ResolveBaseVersionUseCase struct {
	GitRepo repository.GitRepository
	Out     io.Writer
}

// Execute returns the explicit from-version when given, else the latest version tag.
// Tags that are not semantic versions are ignored; with none left the result is 0.0.0.
func (uc *ResolveBaseVersionUseCase) Execute(ctx context.Context, from domain.VersionInput) (*domain.Version, error) {
	if from.IsSet() {
		return from.Resolve()
	}
	echoCommand(uc.Out, "tag", "--list")
	tags, err := uc.GitRepo.ListTags(ctx)
	if err != nil {
		return nil, domain.NewToolError(domain.ToolOpListTags, err)
	}
	return domain.Latest(domain.ParseTags(tags)), nil
}
