package usecase

import (
	"context"
	"io"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
)

// CommitVersionFileUseCase commits the rewritten version file.
type CommitVersionFileUseCase struct {
	GitRepo repository.GitRepository
	Out     io.Writer
}

// Execute stages and commits path when it differs from the last commit.
// It returns the new commit hash, or an empty string when there was nothing to commit.
func (uc *CommitVersionFileUseCase) Execute(ctx context.Context, path, message string) (string, error) {
	echoCommand(uc.Out, "status", "--porcelain", "--", path)
	status, err := uc.GitRepo.GetFileStatus(ctx, path)
	if err != nil {
		return "", domain.NewToolError(domain.ToolOpStatus, err)
	}
	if status == repository.FileStatusClean {
		return "", nil
	}
	echoCommand(uc.Out, "add", "--", path)
	if err := uc.GitRepo.AddFile(ctx, path); err != nil {
		return "", domain.NewToolError(domain.ToolOpStage, err)
	}
	echoCommand(uc.Out, "commit", "-m", quote(message))
	hash, err := uc.GitRepo.Commit(ctx, message)
	if err != nil {
		return "", domain.NewToolError(domain.ToolOpCommit, err)
	}
	return hash, nil
}
