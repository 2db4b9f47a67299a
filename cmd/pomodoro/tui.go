package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pomodoro/internal/tui"
)

func tuiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *options) error {
	// Logs go to a file so they do not tear the alternate screen.
	env, err := opts.load(cmd, defaultTUILogFile())
	if err != nil {
		return err
	}
	defer env.Close()
	if err := env.lockSession(); err != nil {
		return err
	}

	scheduler := env.newScheduler()
	defer scheduler.Close()

	events := scheduler.Subscribe(64)
	model := tui.New(scheduler, events, env.taskList())

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	env.logger.Info("terminal ui exited", "session", scheduler.ID())
	return nil
}
