package orchestrator

import (
	"context"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/usecase"
)

// executeDryRun resolves both versions and checks the version file, then reports
// the steps a real run would take. Nothing is written and no run is journaled.
func (o *ReleaseOrchestrator) executeDryRun(ctx context.Context, req domain.ReleaseRequest) (*domain.ReleaseResult, error) {
	result := &domain.ReleaseResult{}
	base, err := (&usecase.ResolveBaseVersionUseCase{GitRepo: o.gitRepo, Out: o.out}).Execute(ctx, req.FromVersion)
	if err != nil {
		return result, err
	}
	result.OldVersion = base
	o.report("old version is %s", base)
	next, explicit, err := (&usecase.CalculateVersionUseCase{}).Execute(ctx, base, req.NewVersion, req.Bump)
	if err != nil {
		return result, err
	}
	result.NewVersion = next
	result.Explicit = explicit
	o.report("new version is %s", next)
	tag := next.TagName(req.TagPrefix)
	if err := ValidateTagName(tag); err != nil {
		return result, err
	}
	if err := (&usecase.RewriteVersionFileUseCase{FS: o.fsRepo}).Check(ctx, req.VersionFile); err != nil {
		return result, err
	}
	o.report("[dry-run] would update %s to %s", req.VersionFile, next)
	if req.Commit {
		o.report("[dry-run] would commit %s with message %q", req.VersionFile, req.CommitMessageFor(next))
	}
	if req.Tag {
		exists, err := o.gitRepo.TagExists(ctx, tag)
		if err != nil {
			return result, domain.NewToolError(domain.ToolOpTag, err)
		}
		if exists {
			o.report("[dry-run] tag %s already exists, tagging would fail", tag)
		} else {
			o.report("[dry-run] would create git tag %s", tag)
		}
	}
	if req.Push {
		o.report("[dry-run] would push %s to %s", tag, req.Remote())
	}
	if req.Publish {
		o.report("[dry-run] would publish a release for %s", tag)
	}
	return result, nil
}
