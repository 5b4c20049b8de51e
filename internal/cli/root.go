// Package cli implements the todo command tree.
package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/logging"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/ui/prompt"
	"github.com/nhle/todo/internal/ui/tasklist"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	dataFile   string
	logLevel   string
	noColor    bool

	cfg    *model.AppConfig
	logger *log.Logger

	// Swapped out in tests; both need a real terminal.
	askTitle   func() (string, error)
	runBrowser func(*store.Storage, tasklist.Options) error
}

// NewRootCommand creates the root command of the todo CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{
		askTitle: prompt.AskTitle,
		runBrowser: func(s *store.Storage, opts tasklist.Options) error {
			return tasklist.Run(s, opts)
		},
	})
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "A simple TODO application",
		Long: `todo keeps a list of short text tasks in a local JSON file.

Tasks are addressed by the number shown in "todo list", starting at 1.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", model.DefaultConfigPath(), "path to the config file")
	flags.StringVar(&a.dataFile, "data-file", "", "path to the tasks file (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "diagnostic log level: debug, info, warn, error")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newAddCommand(a),
		newListCommand(a),
		newCompleteCommand(a),
		newDeleteCommand(a),
		newBrowseCommand(a),
		newExportCommand(a),
		newConfigCommand(a),
	)

	return cmd
}

// setup loads the config and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := model.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-file") {
		cfg.DataFile = a.dataFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if a.noColor {
		cfg.Display.Color = false
	}

	opts := logging.DefaultOptions()
	opts.Level = cfg.Log.Level
	logger, err := logging.New(cmd.ErrOrStderr(), opts)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	logger.Debug("config loaded", "config", a.configPath, "data_file", cfg.DataFile)
	return nil
}

// openStorage loads the configured task file.
func (a *app) openStorage() (*store.Storage, error) {
	s, err := store.Open(a.cfg.DataFile, store.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// printf writes a user-facing line to the command's stdout.
func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
