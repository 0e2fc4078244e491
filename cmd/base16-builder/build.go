package main

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/base16-builder/internal/build"
	"github.com/alexisbeaulieu97/base16-builder/internal/output"
	"github.com/alexisbeaulieu97/base16-builder/internal/render"
	"github.com/alexisbeaulieu97/base16-builder/internal/source"
)

type buildOptions struct {
	outputDir  string
	format     string
	check      bool
	raw        bool
	noProgress bool
}

// errOutputStale is returned by build --check when files would change.
var errOutputStale = errors.New("output directory is out of date")

func newBuildCmd(flags *rootFlags, v *viper.Viper) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every selected scheme with every selected template",
		Long: "Render every selected scheme with every selected template.\n\n" +
			"Without --output-dir the rendered tree is printed to stdout as YAML or JSON.\n" +
			"With --output-dir files are written to <dir>/<template>/<output>/base16-<slug><extension>.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, flags, v, opts)
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().BoolP("update", "u", false, "Clone or pull sources before building")
	cmd.Flags().Bool("strict", false, "Abort on the first malformed scheme or template family")
	cmd.Flags().IntP("parallel", "j", 1, "Number of schemes rendered concurrently")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Write rendered files under this directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(output.FormatYAML), "Result format when printing to stdout (yaml|json)")
	cmd.Flags().BoolVar(&opts.check, "check", false, "With --output-dir, print a diff instead of writing and fail when files would change")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Do not HTML-escape substituted values")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable the interactive fetch progress view")

	return cmd
}

func runBuild(cmd *cobra.Command, flags *rootFlags, v *viper.Viper, opts *buildOptions) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return newCommandError("build", "reading --format", err, "Use --format yaml or --format json.")
	}
	if opts.check && opts.outputDir == "" {
		return newCommandError("build", "reading --check", errors.New("--check requires --output-dir"),
			"Pass the directory to compare against with --output-dir.")
	}

	env, err := newCommandEnv(cmd, flags, v, "build")
	if err != nil {
		return err
	}

	provider := source.NewGitProvider(env.logger, env.opts.DryRun)
	progressOut := cmd.ErrOrStderr()
	if opts.noProgress {
		progressOut = nil
	}
	view, reporting, ctx, cancel := startProgress(env.ctx, progressOut, "Building", provider)
	defer cancel()

	renderer := render.NewMustacheRenderer()
	renderer.Raw = opts.raw

	pipeline := build.New(*env.opts, reporting, renderer, env.logger)
	result, err := pipeline.Build(ctx, build.Request{Filters: filtersFrom(env.opts)})
	view.finish(err)
	if err != nil {
		return newCommandError("build", "rendering schemes", err, suggestionFor(err))
	}

	for _, skipped := range result.Skipped {
		env.logger.Warn(ctx, "skipped malformed entry", "error", skipped)
	}

	if opts.outputDir == "" {
		return output.Encode(cmd.OutOrStdout(), format, result)
	}

	writer := output.NewWriter(afero.NewOsFs(), opts.outputDir, opts.check, env.logger)
	changes, err := writer.Write(ctx, result.Tree.Artifacts())
	if err != nil {
		return newCommandError("build", "writing output files", err, "Check that the output directory is writable.")
	}

	out := cmd.OutOrStdout()
	if opts.check {
		for _, change := range changes {
			if change.Diff != "" {
				fmt.Fprint(out, change.Diff)
			}
		}
	}

	summary := output.Summary(changes)
	fmt.Fprintf(out, "%d created, %d updated, %d unchanged\n",
		summary[output.StatusCreated], summary[output.StatusUpdated], summary[output.StatusUnchanged])

	if opts.check && summary[output.StatusCreated]+summary[output.StatusUpdated] > 0 {
		return errOutputStale
	}
	return nil
}
