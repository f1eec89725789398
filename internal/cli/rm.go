package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workoutlog/internal/workout"
)

func newRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"delete"},
		Short:   "Delete a workout",
		Long: `Delete the workout at <index>.

The index is the position in the whole log, as shown in the INDEX column
of "workoutlog list", regardless of the page it appears on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: must be a number", args[0])
			}

			sess, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			list := sess.store.List()
			if index < 0 || index >= len(list) {
				return fmt.Errorf("no workout at index %d (the log has %s)",
					index, PrintCount(len(list), "workout", "workouts"))
			}
			removed := list[index]

			if err := sess.store.Delete(index); err != nil {
				return err
			}

			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), workout.Entry{Index: index, Workout: removed})
			}

			PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deleted %q from %s", removed.Description, removed.Date))
			return nil
		},
	}
}
