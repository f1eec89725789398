package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workoutlog/internal/clock"
	"github.com/danieljhkim/workoutlog/internal/workout"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Log a workout",
		Long: `Log a workout for a day.

The description is every argument joined by spaces. The date defaults to
today; pass --date to log another day.`,
		Example: `  workoutlog add Run 5k
  workoutlog add --date 2024-01-06 Swim 40 lengths`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("date") {
				date = clock.Today(appClock).Format(workout.DateLayout)
			}
			description := strings.Join(args, " ")

			if date != "" && description != "" {
				if _, err := workout.ParseDate(date); err != nil {
					return err
				}
			}

			sess, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.store.Add(date, description); err != nil {
				return err
			}

			entry := workout.Entry{
				Index:   sess.store.Len() - 1,
				Workout: workout.Workout{Date: date, Description: description},
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), entry)
			}

			PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Logged %q on %s (%s)",
				description, date, PrintCount(sess.store.Len(), "workout", "workouts")))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day of the workout (YYYY-MM-DD, default today)")
	return cmd
}
