// Package cmd implements the ecstree CLI commands.
//
// The command structure follows the usual cobra layout: a root command
// carrying the global flags, with one constructor per subcommand (tree, diff).
package cmd

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/ecstree/cmd/ecstree/internal/config"
	"github.com/go-drift/ecstree/pkg/core"
	"github.com/go-drift/ecstree/pkg/ecs"
	"github.com/go-drift/ecstree/pkg/errors"
)

// Version information set at build time.
var Version = "0.1.0-dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	LogLevel string
	Dir      string
	HideIDs  bool

	config *config.Resolved
	logger zerolog.Logger
}

// NewRootCommand creates the root command for the ecstree CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "ecstree",
		Short:   "ecstree - declarative trees over an entity/component store",
		Long:    "Mount scene documents onto an entity/component store and inspect the realized tree.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logs and stack traces)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (overrides "+config.FileName+" and $"+config.EnvLogLevel+")")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", ".", "project directory holding "+config.FileName)
	cmd.PersistentFlags().BoolVar(&opts.HideIDs, "no-ids", false, "omit entity ids from tree output")

	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))

	return cmd
}

// setup resolves configuration and installs the logger and error handler.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	resolved, err := config.Resolve(o.Dir)
	if err != nil {
		return err
	}
	o.config = resolved

	level := resolved.LogLevel
	verbose := o.Verbose || resolved.Verbose
	if verbose {
		level = zerolog.DebugLevel
	}
	if cmd.Flags().Changed("log-level") {
		level, err = zerolog.ParseLevel(o.LogLevel)
		if err != nil {
			return err
		}
	}

	o.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Str("app", resolved.AppName).
		Logger()
	errors.SetHandler(&errors.LogHandler{Verbose: verbose, Logger: &o.logger})
	return nil
}

// newHierarchy creates an empty hierarchy logging through the CLI logger.
func (o *RootOptions) newHierarchy() *core.Hierarchy {
	h := core.NewHierarchy(ecs.NewStore(nil))
	h.Logger = o.logger
	return h
}

// scenePath resolves a scene argument against the project directory.
func (o *RootOptions) scenePath(arg string) string {
	if filepath.IsAbs(arg) {
		return arg
	}
	return filepath.Join(o.Dir, arg)
}
