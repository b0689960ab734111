package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/compozy/versionbump/internal/config"
	"github.com/compozy/versionbump/internal/repository"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.
type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo    repository.FileSystemRepository
	gitRepo   repository.GitRepository
	ghRepo    repository.GithubRepository
	stateRepo repository.StateRepository
}

// persistentBindings maps config keys to root flags shared by every command.
var persistentBindings = map[string]string{
	"repo_path":   "repo",
	"journal_dir": "journal-dir",
}

// newContainer loads configuration with the given flag bindings and wires the repositories.
func newContainer(cmd *cobra.Command, bindings map[string]string) (*container, error) {
	logger, err := loggerFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	v := viper.New()
	if err := bindFlags(v, cmd, persistentBindings); err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd, bindings); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, err
	}
	gitRepo, err := repository.NewGitRepository(cfg.RepoPath, repository.GitOptions{
		AuthorName:  cfg.AuthorName,
		AuthorEmail: cfg.AuthorEmail,
		Token:       cfg.GithubToken,
	})
	if err != nil {
		return nil, err
	}
	root := gitRepo.Root()
	// GitHub repository is optional - only create if token is provided
	var ghRepo repository.GithubRepository
	if cfg.GithubToken != "" && cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		ghRepo, err = repository.NewGithubRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	} else {
		ghRepo = repository.NewGithubNoopRepository(cfg.GithubOwner, cfg.GithubRepo)
	}
	var stateRepo repository.StateRepository = repository.NoopStateRepository{}
	if cfg.JournalDir != "" {
		dir := cfg.JournalDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		stateRepo = repository.NewJSONStateRepository(afero.NewOsFs(), dir)
	}
	logger.Debug("container ready",
		zap.String("path", root),
		zap.String("version_file", cfg.VersionFile),
		zap.Bool("journal", cfg.JournalDir != ""),
	)
	return &container{
		cfg:       cfg,
		logger:    logger,
		fsRepo:    repository.NewFileSystemRepository(root),
		gitRepo:   gitRepo,
		ghRepo:    ghRepo,
		stateRepo: stateRepo,
	}, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, bindings map[string]string) error {
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// InitCommands registers all commands on the root command
func InitCommands() error {
	addCommands(rootCmd)
	return nil
}

func addCommands(root *cobra.Command) {
	root.AddCommand(
		newReleaseCmd(),
		newLatestCmd(),
		newLastRunCmd(),
		newVersionCmd(),
	)
}
