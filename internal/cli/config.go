package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/model"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		// Replaces the root hook: these commands must work when the file
		// itself is broken.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := os.Stat(a.configPath)
			switch {
			case err == nil:
				printf(cmd, "Config already exists at %s\n", a.configPath)
				return nil
			case !errors.Is(err, fs.ErrNotExist):
				return err
			}

			if err := model.SaveConfig(a.configPath, model.DefaultAppConfig()); err != nil {
				return err
			}
			printf(cmd, "Wrote config to %s\n", a.configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printf(cmd, "%s\n", a.configPath)
		},
	})

	return cmd
}
