package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workoutlog/internal/workout"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List logged workouts, one page at a time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			size := sess.settings.PageSize
			if cmd.Flags().Changed("page-size") {
				if pageSize <= 0 {
					return fmt.Errorf("invalid --page-size %d: must be positive", pageSize)
				}
				size = pageSize
			}

			p := workout.PageOf(sess.store.List(), size, page-1)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(out, p)
			}

			if p.Total == 0 {
				PrintEmptyState(out, "No workouts logged yet.")
				return nil
			}

			rows := make([][]string, 0, len(p.Entries))
			for _, e := range p.Entries {
				rows = append(rows, []string{strconv.Itoa(e.Index), e.Date, e.Description})
			}
			PrintTable(out, []string{"INDEX", "DATE", "DESCRIPTION"}, rows)
			PrintInfo(out, fmt.Sprintf("\nPage %d of %d (%s)", p.Number(), p.Count,
				PrintCount(p.Total, "workout", "workouts")))
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to show (1-based; clamped to the last page)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Workouts per page (default from WORKOUTLOG_PAGE_SIZE or 12)")
	return cmd
}
