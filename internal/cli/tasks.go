package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add [title...]",
		Short: "Add a new task",
		Long:  "Add a new task. Words are joined with spaces; with no title you are prompted for one.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if len(args) == 0 {
				var err error
				if title, err = a.askTitle(); err != nil {
					return err
				}
			}

			s, err := a.openStorage()
			if err != nil {
				return err
			}
			if err := s.Add(model.NewTask(title)); err != nil {
				return err
			}

			printf(cmd, "Task added successfully!\n")
			return nil
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStorage()
			if err != nil {
				return err
			}

			renderTasks(
				cmd.OutOrStdout(),
				s.List(),
				theme.NewPalette(a.cfg.Display.Color),
				a.cfg.Display.TimeFormat,
			)
			return nil
		},
	}
}

func newCompleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := a.openStorage()
			if err != nil {
				return err
			}

			found, err := s.Complete(id - 1)
			if err != nil {
				return err
			}
			a.logger.Debug("complete", "id", id, "found", found)

			if found {
				printf(cmd, "Task marked as completed!\n")
			} else {
				printf(cmd, "Task not found!\n")
			}
			return nil
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := a.openStorage()
			if err != nil {
				return err
			}

			found, err := s.Delete(id - 1)
			if err != nil {
				return err
			}
			a.logger.Debug("delete", "id", id, "found", found)

			if found {
				printf(cmd, "Task deleted successfully!\n")
			} else {
				printf(cmd, "Task not found!\n")
			}
			return nil
		},
	}
}

// parseID reads a 1-based task id. Range is not checked here: ids below 1
// become negative positions, which storage reports as not found.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: must be a number", arg)
	}
	return id, nil
}
