package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/workoutlog/internal/calendar"
	"github.com/danieljhkim/workoutlog/internal/clock"
	"github.com/danieljhkim/workoutlog/internal/workout"
)

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month with workout days highlighted",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := clock.Today(appClock)
			year, mon, err := calendar.ParseMonth(month, today)
			if err != nil {
				return err
			}

			sess, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			view := calendar.NewIndex(sess.store.DatesWithWorkouts()).Month(year, mon, today)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(out, view)
			}

			renderMonth(out, view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show (YYYY-MM, default this month)")
	return cmd
}

// renderMonth prints the grid. Logged days are marked with '*' so the view
// stays readable without colors.
func renderMonth(w io.Writer, view calendar.MonthView) {
	PrintSection(w, view.Title())

	_, _ = headerColor.Fprintln(w, " "+strings.Join(calendar.Weekdays[:], " "))
	for _, week := range view.Weeks {
		for _, d := range week {
			cell := fmt.Sprintf("%3d", d.Number())
			mark := " "
			if d.Highlighted {
				mark = "*"
			}

			switch {
			case d.Highlighted:
				_, _ = workoutColor.Fprint(w, cell)
			case !d.InMonth:
				_, _ = dimColor.Fprint(w, cell)
			case d.Today:
				_, _ = todayColor.Fprint(w, cell)
			default:
				_, _ = fmt.Fprint(w, cell)
			}
			_, _ = fmt.Fprint(w, mark)
		}
		_, _ = fmt.Fprintln(w)
	}

	logged := 0
	for _, d := range view.Highlighted() {
		if d.InMonth {
			logged++
		}
	}
	_, _ = fmt.Fprintln(w)
	PrintLabelValue(w, "Workout days", fmt.Sprintf("%d", logged))
}

func newDatesCmd(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List the days that have at least one workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			idx := calendar.NewIndex(sess.store.DatesWithWorkouts())

			var days []string
			if month != "" {
				year, mon, err := calendar.ParseMonth(month, clock.Today(appClock))
				if err != nil {
					return err
				}
				from := calendar.FirstOfMonth(year, mon)
				for _, d := range idx.Between(from, from.AddDate(0, 1, 0)) {
					days = append(days, d.Format(workout.DateLayout))
				}
			} else {
				for _, d := range idx.All() {
					days = append(days, d.Format(workout.DateLayout))
				}
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if days == nil {
					days = []string{}
				}
				return outputJSON(out, days)
			}

			if len(days) == 0 {
				PrintEmptyState(out, "No workouts logged yet.")
				return nil
			}
			PrintList(out, days, 0)
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Only days in this month (YYYY-MM)")
	return cmd
}
