package cli

import (
	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/ui/tasklist"
)

func newBrowseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse, complete and delete tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := a.openStorage()
			if err != nil {
				return err
			}

			return a.runBrowser(s, tasklist.Options{
				TimeFormat: a.cfg.Display.TimeFormat,
				Color:      a.cfg.Display.Color,
				Logger:     a.logger,
			})
		},
	}
}
