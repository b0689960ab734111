package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
)

// CreateTagUseCase creates the annotated release tag.
type CreateTagUseCase struct {
	GitRepo repository.GitRepository
	Out     io.Writer
}

// Execute creates tag with message. An existing tag is never moved.
func (uc *CreateTagUseCase) Execute(ctx context.Context, tag, message string) error {
	exists, err := uc.GitRepo.TagExists(ctx, tag)
	if err != nil {
		return domain.NewToolError(domain.ToolOpTag, err)
	}
	if exists {
		return domain.NewToolError(domain.ToolOpTag, fmt.Errorf("%w: %s", domain.ErrTagExists, tag))
	}
	echoCommand(uc.Out, "tag", "-a", tag, "-m", quote(message))
	if err := uc.GitRepo.CreateTag(ctx, tag, message); err != nil {
		return domain.NewToolError(domain.ToolOpTag, err)
	}
	return nil
}
