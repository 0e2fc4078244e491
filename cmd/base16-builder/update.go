package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/base16-builder/internal/build"
	"github.com/alexisbeaulieu97/base16-builder/internal/render"
	"github.com/alexisbeaulieu97/base16-builder/internal/source"
)

func newUpdateCmd(flags *rootFlags, v *viper.Viper) *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Clone or pull the scheme and template sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v.Set("update", true)
			v.Set("build", false)
			return runUpdate(cmd, flags, v, noProgress)
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Report what would be cloned or pulled without touching disk")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the interactive fetch progress view")

	return cmd
}

func runUpdate(cmd *cobra.Command, flags *rootFlags, v *viper.Viper, noProgress bool) error {
	env, err := newCommandEnv(cmd, flags, v, "update")
	if err != nil {
		return err
	}

	provider := source.NewGitProvider(env.logger, env.opts.DryRun)
	progressOut := cmd.ErrOrStderr()
	if noProgress {
		progressOut = nil
	}
	view, reporting, ctx, cancel := startProgress(env.ctx, progressOut, "Updating sources", provider)
	defer cancel()

	pipeline := build.New(*env.opts, reporting, render.NewMustacheRenderer(), env.logger)
	result, err := pipeline.Build(ctx, build.Request{Filters: filtersFrom(env.opts)})
	view.finish(err)
	if err != nil {
		return newCommandError("update", "fetching sources", err, suggestionFor(err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "changed: %t\n", result.Changed)
	return nil
}
