package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/base16-builder/internal/catalog"
	"github.com/alexisbeaulieu97/base16-builder/internal/config"
	"github.com/alexisbeaulieu97/base16-builder/internal/logging"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
)

// commandEnv bundles what every subcommand resolves before doing work.
type commandEnv struct {
	ctx    context.Context
	opts   *config.Options
	logger ports.Logger
}

func newCommandEnv(cmd *cobra.Command, flags *rootFlags, v *viper.Viper, operation string) (*commandEnv, error) {
	opts, err := config.Load(v, flags.configFile)
	if err != nil {
		return nil, newCommandError(operation, "loading configuration", err,
			"Check the configuration file, BASE16_BUILDER_* environment variables and flags.")
	}

	logger, err := newLogger(cmd.ErrOrStderr(), flags.verbose, interactive(cmd.ErrOrStderr()))
	if err != nil {
		return nil, newCommandError(operation, "creating logger", err, "Retry without --verbose.")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())

	return &commandEnv{ctx: ctx, opts: opts, logger: logger}, nil
}

// newLogger writes human readable logs to w. Info entries are dropped when the
// progress view owns the terminal.
func newLogger(w io.Writer, verbose, quiet bool) (ports.Logger, error) {
	level := "info"
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "warn"
	}
	return logging.New(logging.Options{
		Writer:        w,
		Level:         level,
		HumanReadable: true,
		Layer:         "cli",
	})
}

func filtersFrom(opts *config.Options) catalog.Filters {
	return catalog.Filters{
		Scheme:       opts.Scheme,
		SchemeFamily: opts.SchemeFamily,
		Templates:    opts.Templates,
	}
}
