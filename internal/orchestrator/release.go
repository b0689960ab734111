package orchestrator

import (
	"context"
	"fmt"
	"io"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
	"github.com/compozy/versionbump/internal/usecase"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ReleaseOrchestrator runs one release: resolve versions, rewrite the version file,
// then optionally commit, tag, push and publish.
type ReleaseOrchestrator struct {
	gitRepo    repository.GitRepository
	githubRepo repository.GithubRepository
	fsRepo     afero.Fs
	stateRepo  repository.StateRepository
	out        io.Writer
	logger     *zap.Logger
}

// NewReleaseOrchestrator creates a new release orchestrator.
// Report lines and command echoes are written to out.
func NewReleaseOrchestrator(
	gitRepo repository.GitRepository,
	githubRepo repository.GithubRepository,
	fsRepo afero.Fs,
	stateRepo repository.StateRepository,
	out io.Writer,
	logger *zap.Logger,
) *ReleaseOrchestrator {
	if stateRepo == nil {
		stateRepo = repository.NoopStateRepository{}
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReleaseOrchestrator{
		gitRepo:    gitRepo,
		githubRepo: githubRepo,
		fsRepo:     fsRepo,
		stateRepo:  stateRepo,
		out:        out,
		logger:     logger,
	}
}

// releaseRun carries values produced by earlier steps to later ones.
type releaseRun struct {
	req    domain.ReleaseRequest
	result *domain.ReleaseResult
	runner *StepRunner
}

// Execute runs the release. On failure the partial result is returned with the error;
// steps that already completed are not undone.
func (o *ReleaseOrchestrator) Execute(ctx context.Context, req domain.ReleaseRequest) (*domain.ReleaseResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultWorkflowTimeout)
	defer cancel()
	if err := ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid release request: %w", err)
	}
	if req.DryRun {
		return o.executeDryRun(ctx, req)
	}
	runner := NewStepRunner(o.stateRepo, o.logger)
	run := &releaseRun{
		req:    req,
		result: &domain.ReleaseResult{RunID: runner.RunID()},
		runner: runner,
	}
	o.logger.Info("starting release",
		zap.String("run_id", runner.RunID()),
		zap.String("path", req.VersionFile),
		zap.Strings("bumps", req.Bump.Names()),
	)
	runner.AddStep(Step{
		Name: "resolve base version", Type: domain.StepTypeResolveBase, Enabled: true,
		Execute: run.wrap(o.stepResolveBase),
	})
	runner.AddStep(Step{
		Name: "resolve new version", Type: domain.StepTypeResolveNew, Enabled: true,
		Execute: run.wrap(o.stepResolveNew),
	})
	runner.AddStep(Step{
		Name: "write version", Type: domain.StepTypeWriteVersion, Enabled: true,
		Execute: run.wrap(o.stepWriteVersion),
	})
	runner.AddStep(Step{
		Name: "commit", Type: domain.StepTypeCommit, Enabled: req.Commit,
		Execute: run.wrap(o.stepCommit),
	})
	runner.AddStep(Step{
		Name: "tag", Type: domain.StepTypeTag, Enabled: req.Tag,
		Execute: run.wrap(o.stepTag),
	})
	runner.AddStep(Step{
		Name: "push", Type: domain.StepTypePush, Enabled: req.Push,
		Execute: run.wrap(o.stepPush),
	})
	runner.AddStep(Step{
		Name: "publish", Type: domain.StepTypePublish, Enabled: req.Publish,
		Execute: run.wrap(o.stepPublish),
	})
	if err := runner.Execute(ctx); err != nil {
		return run.result, err
	}
	o.logger.Info("release completed",
		zap.String("run_id", runner.RunID()),
		zap.String("version", run.result.NewVersion.String()),
	)
	return run.result, nil
}

func (r *releaseRun) wrap(
	fn func(ctx context.Context, run *releaseRun) (map[string]any, error),
) func(ctx context.Context) (map[string]any, error) {
	return func(ctx context.Context) (map[string]any, error) {
		return fn(ctx, r)
	}
}

func (r *releaseRun) tagName() string {
	return r.result.NewVersion.TagName(r.req.TagPrefix)
}

func (o *ReleaseOrchestrator) stepResolveBase(ctx context.Context, run *releaseRun) (map[string]any, error) {
	uc := &usecase.ResolveBaseVersionUseCase{GitRepo: o.gitRepo, Out: o.out}
	v, err := uc.Execute(ctx, run.req.FromVersion)
	if err != nil {
		return nil, err
	}
	run.result.OldVersion = v
	run.runner.SetVersions(v.String(), "")
	o.report("old version is %s", v)
	return map[string]any{"version": v.String(), "explicit": run.req.FromVersion.IsSet()}, nil
}

func (o *ReleaseOrchestrator) stepResolveNew(ctx context.Context, run *releaseRun) (map[string]any, error) {
	uc := &usecase.CalculateVersionUseCase{}
	v, explicit, err := uc.Execute(ctx, run.result.OldVersion, run.req.NewVersion, run.req.Bump)
	if err != nil {
		return nil, err
	}
	if err := ValidateTagName(v.TagName(run.req.TagPrefix)); err != nil {
		return nil, err
	}
	run.result.NewVersion = v
	run.result.Explicit = explicit
	run.runner.SetVersions("", v.String())
	o.report("new version is %s", v)
	return map[string]any{"version": v.String(), "explicit": explicit}, nil
}

func (o *ReleaseOrchestrator) stepWriteVersion(ctx context.Context, run *releaseRun) (map[string]any, error) {
	uc := &usecase.RewriteVersionFileUseCase{FS: o.fsRepo}
	changed, err := uc.Execute(ctx, run.req.VersionFile, run.result.NewVersion)
	if err != nil {
		return nil, err
	}
	run.result.FileWritten = changed
	if changed {
		o.report("updated %s to %s", run.req.VersionFile, run.result.NewVersion)
	} else {
		o.report("%s already at %s", run.req.VersionFile, run.result.NewVersion)
	}
	return map[string]any{"path": run.req.VersionFile, "changed": changed}, nil
}

func (o *ReleaseOrchestrator) stepCommit(ctx context.Context, run *releaseRun) (map[string]any, error) {
	uc := &usecase.CommitVersionFileUseCase{GitRepo: o.gitRepo, Out: o.out}
	message := run.req.CommitMessageFor(run.result.NewVersion)
	hash, err := uc.Execute(ctx, run.req.VersionFile, message)
	if err != nil {
		return nil, err
	}
	if hash == "" {
		o.report("nothing to commit, %s unchanged", run.req.VersionFile)
		return map[string]any{"committed": false}, nil
	}
	run.result.Committed = true
	o.report("committed %s as %s", run.req.VersionFile, shortHash(hash))
	return map[string]any{"committed": true, "hash": hash}, nil
}

func (o *ReleaseOrchestrator) stepTag(ctx context.Context, run *releaseRun) (map[string]any, error) {
	uc := &usecase.CreateTagUseCase{GitRepo: o.gitRepo, Out: o.out}
	tag := run.tagName()
	if err := uc.Execute(ctx, tag, run.req.TagMessageFor(tag)); err != nil {
		return nil, err
	}
	run.result.TagName = tag
	o.report("created git tag %s", tag)
	return map[string]any{"tag": tag}, nil
}

func (o *ReleaseOrchestrator) stepPush(ctx context.Context, run *releaseRun) (map[string]any, error) {
	uc := &usecase.PushTagUseCase{GitRepo: o.gitRepo, Out: o.out}
	tag := run.tagName()
	remote := run.req.Remote()
	if err := uc.Execute(ctx, remote, tag, !run.req.Tag); err != nil {
		return nil, err
	}
	run.result.TagName = tag
	run.result.PushedTo = remote
	o.report("pushed %s to %s", tag, remote)
	return map[string]any{"tag": tag, "remote": remote}, nil
}

func (o *ReleaseOrchestrator) stepPublish(ctx context.Context, run *releaseRun) (map[string]any, error) {
	uc := &usecase.PublishReleaseUseCase{GithubRepo: o.githubRepo}
	tag := run.tagName()
	url, err := uc.Execute(ctx, tag, run.req.TagMessageFor(tag), run.result.NewVersion)
	if err != nil {
		return nil, err
	}
	run.result.ReleaseURL = url
	o.report("published release %s", url)
	return map[string]any{"tag": tag, "url": url}, nil
}

func (o *ReleaseOrchestrator) report(format string, args ...any) {
	fmt.Fprintf(o.out, format+"\n", args...)
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
