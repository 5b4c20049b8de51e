package cli

import (
	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [db-path]",
		Short: "Snapshot all tasks into a SQLite database",
		Long: `Export writes the current tasks as a new snapshot into a SQLite database.
The tasks file is not modified. Without a path, export.sqlite_path from the
config is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := a.cfg.Export.SQLitePath
			if len(args) == 1 {
				dbPath = args[0]
			}

			s, err := a.openStorage()
			if err != nil {
				return err
			}

			exp, err := export.Open(dbPath)
			if err != nil {
				return err
			}
			defer exp.Close()

			tasks := s.List()
			snap, err := exp.Export(cmd.Context(), s.Path(), tasks)
			if err != nil {
				return err
			}
			a.logger.Info("exported snapshot", "db", dbPath, "snapshot", snap.ID, "count", snap.TaskCount)

			printf(cmd, "Exported %d tasks to %s (snapshot %s).\n", snap.TaskCount, dbPath, snap.ID)
			return nil
		},
	}
}
