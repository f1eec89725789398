package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workoutlog/internal/slot"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the change history of the log (git backend)",
		Long: `Show the commits recorded by the git backend, newest first.

Every add and delete is committed to the repository under the data
directory's history/ folder, so it can also be inspected with git.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			revs, err := slot.History(sess.slot, limit)
			if errors.Is(err, slot.ErrNoHistory) {
				return fmt.Errorf("the %s backend keeps no history; use --backend %s", sess.settings.Backend, slot.BackendGit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if revs == nil {
					revs = []slot.Revision{}
				}
				return outputJSON(out, revs)
			}

			if len(revs) == 0 {
				PrintEmptyState(out, "No changes recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(revs))
			for _, r := range revs {
				rows = append(rows, []string{r.Hash[:7], r.When.Format("2006-01-02 15:04"), r.Message})
			}
			PrintTable(out, []string{"COMMIT", "WHEN", "MESSAGE"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	return cmd
}
