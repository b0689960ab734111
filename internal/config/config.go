package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/viper"
)

const (
	ConfigName = ".version-bump"
	EnvPrefix  = "VERSION_BUMP"
)

type Config struct {
	RepoPath        string `mapstructure:"repo_path"`
	VersionFile     string `mapstructure:"version_file"`
	Remote          string `mapstructure:"remote"`
	TagPrefix       string `mapstructure:"tag_prefix"`
	PrereleaseToken string `mapstructure:"prerelease_token"`
	BuildToken      string `mapstructure:"build_token"`
	JournalDir      string `mapstructure:"journal_dir"`
	AuthorName      string `mapstructure:"author_name"`
	AuthorEmail     string `mapstructure:"author_email"`
	GithubToken     string `mapstructure:"github_token"`
	GithubOwner     string `mapstructure:"github_owner"`
	GithubRepo      string `mapstructure:"github_repo"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		RepoPath:        ".",
		VersionFile:     "main.go",
		Remote:          "origin",
		TagPrefix:       "v",
		PrereleaseToken: "rc",
		BuildToken:      "build",
	}
}

var tokenPattern = regexp.MustCompile(`^[0-9A-Za-z-]+(\.[0-9A-Za-z-]+)*$`)

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RepoPath) == "" {
		return fmt.Errorf("repo_path cannot be empty")
	}
	if strings.TrimSpace(c.VersionFile) == "" {
		return fmt.Errorf("version_file cannot be empty")
	}
	if filepath.IsAbs(c.VersionFile) || strings.Contains(c.VersionFile, "..") {
		return fmt.Errorf("version_file must be relative to the repository: %s", c.VersionFile)
	}
	if strings.TrimSpace(c.Remote) == "" {
		return fmt.Errorf("remote cannot be empty")
	}
	if strings.ContainsAny(c.TagPrefix, " \t\n") {
		return fmt.Errorf("tag_prefix cannot contain whitespace: %q", c.TagPrefix)
	}
	if !tokenPattern.MatchString(c.PrereleaseToken) {
		return fmt.Errorf("invalid prerelease_token: %q", c.PrereleaseToken)
	}
	if !tokenPattern.MatchString(c.BuildToken) {
		return fmt.Errorf("invalid build_token: %q", c.BuildToken)
	}
	// GitHub settings are optional - only validate if provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
	}
	if c.GithubOwner != "" && c.GithubRepo != "" {
		if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
			return fmt.Errorf("invalid github configuration: %w", err)
		}
	}
	return nil
}

// ValidateForGitHubOperations validates that GitHub settings are present for operations that require them
func (c *Config) ValidateForGitHubOperations() error {
	if c.GithubToken == "" {
		return fmt.Errorf("github_token is required for GitHub operations")
	}
	if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
		return fmt.Errorf("invalid github configuration: %w", err)
	}
	return c.Validate()
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// LoadConfig reads the config file, environment and any flags already bound to v.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	// BindEnv allows multiple env vars - it will check them in order
	bindings := map[string][]string{
		"github_token": {"GITHUB_TOKEN", EnvPrefix + "_GITHUB_TOKEN"},
		"github_owner": {"GITHUB_OWNER", EnvPrefix + "_GITHUB_OWNER"},
		"github_repo":  {"GITHUB_REPO", EnvPrefix + "_GITHUB_REPO"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	defaults := DefaultConfig()
	v.SetDefault("repo_path", defaults.RepoPath)
	v.SetDefault("version_file", defaults.VersionFile)
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("tag_prefix", defaults.TagPrefix)
	v.SetDefault("prerelease_token", defaults.PrereleaseToken)
	v.SetDefault("build_token", defaults.BuildToken)
	v.SetDefault("journal_dir", "")
	v.SetDefault("author_name", "")
	v.SetDefault("author_email", "")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, fmt.Errorf("failed to resolve repository defaults: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// populateRepositoryDefaults fills owner and repo from CI env vars, then from the origin remote.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = strings.TrimSpace(os.Getenv("GITHUB_REPOSITORY_OWNER"))
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = strings.TrimSpace(os.Getenv("GITHUB_REPOSITORY_NAME"))
	}
	if slug := strings.TrimSpace(os.Getenv("GITHUB_REPOSITORY")); slug != "" {
		if owner, repo, ok := strings.Cut(slug, "/"); ok {
			if cfg.GithubOwner == "" {
				cfg.GithubOwner = owner
			}
			if cfg.GithubRepo == "" {
				cfg.GithubRepo = repo
			}
		}
	}
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	path := cfg.RepoPath
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		// Not a repository: leave GitHub settings empty, publishing will report it.
		return nil
	}
	remote, err := repo.Remote("origin")
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	owner, name, err := parseGitRemoteURL(remote.Config().URLs[0])
	if err != nil {
		return err
	}
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = owner
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = name
	}
	return nil
}

// parseGitRemoteURL extracts owner and repository from https, ssh or path remotes.
func parseGitRemoteURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("empty remote url")
	}
	path := raw
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("invalid remote url %q: %w", raw, err)
		}
		path = u.Path
	case strings.Contains(raw, "@") && strings.Contains(raw, ":"):
		_, path, _ = strings.Cut(raw, ":")
	}
	path = strings.TrimSuffix(filepath.ToSlash(path), "/")
	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("cannot determine owner and repository from %q", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
