package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/workoutlog/internal/slot"
)

var (
	version = "dev"

	// Colors for help output sections
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// customHelpFunc prints help with colored group titles
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	} else if cmd.Short != "" {
		help.WriteString(cmd.Short)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	for _, group := range cmd.Groups() {
		help.WriteString(groupTitleColor.Sprint(group.Title))
		help.WriteString("\n")

		for _, c := range cmd.Commands() {
			if c.GroupID == group.ID && !c.Hidden {
				fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
			}
		}
		help.WriteString("\n")
	}

	hasUngrouped := false
	for _, c := range cmd.Commands() {
		if c.GroupID == "" && !c.Hidden {
			if !hasUngrouped {
				help.WriteString(sectionTitleColor.Sprint("Additional Commands:"))
				help.WriteString("\n")
				hasUngrouped = true
			}
			fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
		}
	}
	if hasUngrouped {
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

// NewRootCmd builds the workoutlog command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "workoutlog",
		Version: version,
		Short:   "Log workouts and see them on a calendar",
		Long: `workoutlog keeps a dated log of your workouts.

Add entries, page through them, and see the days you trained highlighted
on a month calendar, from the terminal or in the browser with "serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetHelpFunc(customHelpFunc)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&opts.backend, "backend", "",
		fmt.Sprintf("Storage backend (%s); overrides WORKOUTLOG_BACKEND", strings.Join(slot.Backends, ", ")))
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", "Data directory; overrides WORKOUTLOG_ROOT")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "workout-log",
		Title: "Workout Log:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "calendar",
		Title: "Calendar:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "storage-server",
		Title: "Storage & Server:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	addCmd := newAddCmd(opts)
	rmCmd := newRmCmd(opts)
	listCmd := newListCmd(opts)
	addCmd.GroupID = "workout-log"
	rmCmd.GroupID = "workout-log"
	listCmd.GroupID = "workout-log"
	rootCmd.AddCommand(addCmd, rmCmd, listCmd)

	calendarCmd := newCalendarCmd(opts)
	datesCmd := newDatesCmd(opts)
	calendarCmd.GroupID = "calendar"
	datesCmd.GroupID = "calendar"
	rootCmd.AddCommand(calendarCmd, datesCmd)

	historyCmd := newHistoryCmd(opts)
	serveCmd := newServeCmd(opts)
	historyCmd.GroupID = "storage-server"
	serveCmd.GroupID = "storage-server"
	rootCmd.AddCommand(historyCmd, serveCmd)

	// CLI & Tooling commands
	rootCmd.AddCommand(&cobra.Command{
		Use:     "version",
		Short:   "Print the workoutlog CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				return rootCmd.Help()
			}
			return target.Help()
		},
	})

	rootCmd.AddCommand(newCompletionCmd(rootCmd))

	return rootCmd
}

func newCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	completionCmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: "cli-tooling",
		Long: `Generate the autocompletion script for workoutlog for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "bash",
		Short:                 "Generate the autocompletion script for bash",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "zsh",
		Short:                 "Generate the autocompletion script for zsh",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "fish",
		Short:                 "Generate the autocompletion script for fish",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "powershell",
		Short:                 "Generate the autocompletion script for powershell",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		},
	})
	return completionCmd
}

// Execute executes the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
