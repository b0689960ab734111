package cmd

import (
	"fmt"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/orchestrator"
	"github.com/spf13/cobra"
)

// releaseBindings maps config keys to release flags.
var releaseBindings = map[string]string{
	"version_file":     "file",
	"remote":           "push-remote",
	"tag_prefix":       "tag-prefix",
	"prerelease_token": "prerelease-token",
	"build_token":      "build-token",
}

type releaseFlags struct {
	fromVersion   string
	newVersion    string
	major         bool
	minor         bool
	patch         bool
	prerelease    bool
	build         bool
	commit        bool
	commitMessage string
	tag           bool
	tagMessage    string
	push          bool
	githubRelease bool
	dryRun        bool
}

// newReleaseCmd creates the release command
func newReleaseCmd() *cobra.Command {
	var f releaseFlags
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Bump the version and optionally commit, tag and push it",
		Long: `Bump the version embedded in a source file.

The base version is --from-version, or the latest semantic version tag (0.0.0 when there is none).
The new version is --new-version, or the base version with the requested bumps applied.
Bumps combine in the order major, minor, patch, prerelease, build; a higher numeric bump
absorbs lower ones, so --major --minor --patch on 1.2.3 gives 2.0.0.

Each step after the rewrite is optional. A failed step aborts the run and earlier steps
are left in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newContainer(cmd, releaseBindings)
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()
			if f.githubRelease && !f.dryRun {
				if err := c.cfg.ValidateForGitHubOperations(); err != nil {
					return fmt.Errorf("--github-release: %w", err)
				}
			}
			orch := orchestrator.NewReleaseOrchestrator(
				c.gitRepo,
				c.ghRepo,
				c.fsRepo,
				c.stateRepo,
				cmd.OutOrStdout(),
				c.logger,
			)
			result, err := orch.Execute(cmd.Context(), f.request(c.cfg.VersionFile, c.cfg.TagPrefix, c.cfg.Remote,
				c.cfg.PrereleaseToken, c.cfg.BuildToken))
			if err != nil && result != nil && result.RunID != "" {
				return fmt.Errorf("release run %s: %w", result.RunID, err)
			}
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.fromVersion, "from-version", "", "Base version (default: latest version tag)")
	flags.StringVar(&f.newVersion, "new-version", "", "Explicit new version; bump flags are ignored")
	flags.BoolVar(&f.major, "major", false, "Bump the major version")
	flags.BoolVar(&f.minor, "minor", false, "Bump the minor version")
	flags.BoolVar(&f.patch, "patch", false, "Bump the patch version")
	flags.BoolVar(&f.prerelease, "prerelease", false, "Start or advance the prerelease series")
	flags.BoolVar(&f.build, "build", false, "Start or advance the build metadata series")
	flags.BoolVar(&f.commit, "commit", false, "Commit the rewritten version file")
	flags.StringVar(&f.commitMessage, "commit-message", "", "Commit message (default: the new version)")
	flags.BoolVar(&f.tag, "tag", false, "Create an annotated tag for the new version")
	flags.StringVar(&f.tagMessage, "tag-message", "", "Tag message (default: the tag name)")
	flags.BoolVar(&f.push, "push", false, "Push the tag to the remote")
	flags.String("push-remote", "", "Remote to push to (default: origin)")
	flags.BoolVar(&f.githubRelease, "github-release", false, "Create a GitHub release after pushing")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Report what would happen without writing anything")
	flags.String("file", "", "Version file relative to the repository (default: main.go)")
	flags.String("tag-prefix", "", "Prefix of release tags (default: v)")
	flags.String("prerelease-token", "", "Identifier that starts a prerelease series (default: rc)")
	flags.String("build-token", "", "Identifier that starts a build series (default: build)")
	return cmd
}

func (f releaseFlags) request(versionFile, tagPrefix, remote, prereleaseToken, buildToken string) domain.ReleaseRequest {
	return domain.ReleaseRequest{
		FromVersion: domain.VersionFromString(f.fromVersion),
		NewVersion:  domain.VersionFromString(f.newVersion),
		Bump: domain.BumpSpec{
			Major:           f.major,
			Minor:           f.minor,
			Patch:           f.patch,
			Prerelease:      f.prerelease,
			Build:           f.build,
			PrereleaseToken: prereleaseToken,
			BuildToken:      buildToken,
		},
		VersionFile:   versionFile,
		TagPrefix:     tagPrefix,
		Commit:        f.commit,
		CommitMessage: f.commitMessage,
		Tag:           f.tag,
		TagMessage:    f.tagMessage,
		Push:          f.push,
		PushRemote:    remote,
		Publish:       f.githubRelease,
		DryRun:        f.dryRun,
	}
}
