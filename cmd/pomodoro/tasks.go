package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pomodoro/internal/storage"
	"pomodoro/internal/tasks"
)

func tasksCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage the task list",
	}

	cmd.AddCommand(tasksListCmd(opts))
	cmd.AddCommand(tasksAddCmd(opts))
	cmd.AddCommand(tasksDoneCmd(opts))
	cmd.AddCommand(tasksEditCmd(opts))
	cmd.AddCommand(tasksRemoveCmd(opts))
	cmd.AddCommand(tasksClearCmd(opts))

	return cmd
}

// withTasks runs fn against the task list and releases the environment.
func withTasks(cmd *cobra.Command, opts *options, fn func(*tasks.List) error) error {
	env, err := opts.load(cmd, "")
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env.taskList())
}

func tasksListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTasks(cmd, opts, func(list *tasks.List) error {
				return printTasks(cmd, list.Tasks())
			})
		},
	}
}

func tasksAddCmd(opts *options) *cobra.Command {
	var priority string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := tasks.ParsePriority(priority)
			if err != nil {
				return err
			}
			return withTasks(cmd, opts, func(list *tasks.List) error {
				if err := list.Add(strings.Join(args, " "), parsed); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added task %d\n", list.Len())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", string(tasks.PriorityMedium), "priority (low, medium, high)")
	return cmd
}

func tasksDoneCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "done <number>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseTaskNumber(args[0])
			if err != nil {
				return err
			}
			return withTasks(cmd, opts, func(list *tasks.List) error {
				return list.ToggleComplete(index)
			})
		},
	}
}

func tasksEditCmd(opts *options) *cobra.Command {
	var priority string
	cmd := &cobra.Command{
		Use:   "edit <number> <title...>",
		Short: "Change a task's title and priority",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseTaskNumber(args[0])
			if err != nil {
				return err
			}
			return withTasks(cmd, opts, func(list *tasks.List) error {
				current := list.Tasks()
				if index >= len(current) {
					return fmt.Errorf("%w: %s", tasks.ErrIndexOutOfRange, args[0])
				}
				parsed := current[index].Priority
				if cmd.Flags().Changed("priority") {
					if parsed, err = tasks.ParsePriority(priority); err != nil {
						return err
					}
				}
				return list.Edit(index, strings.Join(args[1:], " "), parsed)
			})
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority (low, medium, high)")
	return cmd
}

func tasksRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <number>",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseTaskNumber(args[0])
			if err != nil {
				return err
			}
			return withTasks(cmd, opts, func(list *tasks.List) error {
				return list.Delete(index)
			})
		},
	}
}

func tasksClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.load(cmd, "")
			if err != nil {
				return err
			}
			defer env.Close()

			err = env.store.Delete(tasks.StoreKey)
			switch {
			case errors.Is(err, storage.ErrNotFound):
				fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			case err != nil:
				return fmt.Errorf("clear tasks: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cleared tasks")
			return nil
		},
	}
}

func printTasks(cmd *cobra.Command, items []tasks.Task) error {
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "no tasks")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, task := range items {
		check := "[ ]"
		if task.IsCompleted {
			check = "[x]"
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", i+1, check, task.Priority, task.Title)
	}
	return writer.Flush()
}

// parseTaskNumber converts a 1-based task number to an index.
func parseTaskNumber(value string) (int, error) {
	number, err := strconv.Atoi(value)
	if err != nil || number < 1 {
		return 0, fmt.Errorf("invalid task number %q", value)
	}
	return number - 1, nil
}
