package cmd

import (
	"github.com/compozy/versionbump/pkg/version"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version-bump",
		Short: "A CLI tool for semantic version releases",
		Long: `version-bump resolves the current version from repository tags, computes the next one,
rewrites the VERSION declaration of a source file and optionally commits, tags and pushes it.`,
		Version:       version.Summary(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.String("repo", "", "Path to the repository (default: current directory)")
	flags.String("journal-dir", "", "Directory for run journals; empty disables journaling")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.String("log-format", "console", "Log format: console or json")
	return cmd
}

func Execute() error {
	return rootCmd.Execute()
}
