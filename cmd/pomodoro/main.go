package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "Pomodoro"

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "pomodoro",
		Short:         "Pomodoro work/break timer with a task list",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default <config dir>/Pomodoro/settings.yaml)")
	flags.DurationVar(&opts.work, "work", 0, "work phase length for this run, e.g. 25m")
	flags.DurationVar(&opts.rest, "break", 0, "break phase length for this run, e.g. 5m")
	flags.StringVar(&opts.tasksDB, "tasks-db", "", "task database path")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep tasks in memory only")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	rootCmd.AddCommand(guiCmd(opts))
	rootCmd.AddCommand(tuiCmd(opts))
	rootCmd.AddCommand(tasksCmd(opts))

	return rootCmd
}
