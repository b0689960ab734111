package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
)

// PushTagUseCase pushes the release tag to a remote.
type PushTagUseCase struct {
	GitRepo repository.GitRepository
	Out     io.Writer
}

// Execute pushes tag to remote. When verify is set the tag must already exist locally,
// which is the case when the tag was not created in the same run.
func (uc *PushTagUseCase) Execute(ctx context.Context, remote, tag string, verify bool) error {
	if remote == "" {
		remote = domain.DefaultRemote
	}
	if verify {
		exists, err := uc.GitRepo.TagExists(ctx, tag)
		if err != nil {
			return domain.NewToolError(domain.ToolOpPush, err)
		}
		if !exists {
			return domain.NewToolError(domain.ToolOpPush, fmt.Errorf("%w: %s", domain.ErrTagNotFound, tag))
		}
	}
	echoCommand(uc.Out, "push", remote, tag)
	if err := uc.GitRepo.PushTag(ctx, remote, tag); err != nil {
		return domain.NewToolError(domain.ToolOpPush, err)
	}
	return nil
}
