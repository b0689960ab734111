package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
	"github.com/spf13/cobra"
)

func newLastRunCmd() *cobra.Command {
	var (
		runID  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "last-run",
		Short: "Show the journal of the most recent release run",
		Long: `Show which steps of a release run completed, were skipped or failed.
Requires a journal directory (--journal-dir or journal_dir in .version-bump.yaml).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newContainer(cmd, nil)
			if err != nil {
				return err
			}
			if c.cfg.JournalDir == "" {
				return errors.New("run journal is disabled: set --journal-dir")
			}
			var state *domain.RunState
			if runID != "" {
				state, err = c.stateRepo.Load(cmd.Context(), runID)
			} else {
				state, err = c.stateRepo.LoadLatest(cmd.Context())
			}
			if errors.Is(err, repository.ErrStateNotFound) {
				return fmt.Errorf("no release run recorded in %s", c.cfg.JournalDir)
			}
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(state)
			}
			return printRunState(cmd.OutOrStdout(), state)
		},
	}
	cmd.Flags().StringVar(&runID, "run-id", "", "Show a specific run instead of the latest")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the journal entry as JSON")
	return cmd
}

func printRunState(w io.Writer, state *domain.RunState) error {
	fmt.Fprintf(w, "Run:\t%s\n", state.RunID)
	fmt.Fprintf(w, "Status:\t%s\n", state.Status)
	fmt.Fprintf(w, "Started:\t%s\n", state.StartedAt.Format(time.RFC3339))
	if state.OldVersion != "" {
		fmt.Fprintf(w, "Old version:\t%s\n", state.OldVersion)
	}
	if state.NewVersion != "" {
		fmt.Fprintf(w, "New version:\t%s\n", state.NewVersion)
	}
	if state.Error != "" {
		fmt.Fprintf(w, "Error:\t%s\n", state.Error)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tSTATUS\tERROR")
	for _, step := range state.Steps {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", step.Type, step.Status, step.Error)
	}
	return tw.Flush()
}
