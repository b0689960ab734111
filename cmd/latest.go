package cmd

import (
	"fmt"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/usecase"
	"github.com/spf13/cobra"
)

func newLatestCmd() *cobra.Command {
	var withPrefix bool
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Print the latest version found in repository tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newContainer(cmd, map[string]string{"tag_prefix": "tag-prefix"})
			if err != nil {
				return err
			}
			uc := &usecase.ResolveBaseVersionUseCase{GitRepo: c.gitRepo}
			v, err := uc.Execute(cmd.Context(), domain.VersionInput{})
			if err != nil {
				return err
			}
			if withPrefix {
				fmt.Fprintln(cmd.OutOrStdout(), v.TagName(c.cfg.TagPrefix))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withPrefix, "with-prefix", false, "Print the tag name instead of the bare version")
	cmd.Flags().String("tag-prefix", "", "Prefix of release tags (default: v)")
	return cmd
}
