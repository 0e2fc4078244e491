package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/base16-builder/internal/catalog"
	"github.com/alexisbeaulieu97/base16-builder/internal/scheme"
	"github.com/alexisbeaulieu97/base16-builder/internal/source"
	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

type listOptions struct {
	templates bool
}

func newListCmd(flags *rootFlags, v *viper.Viper) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available schemes or template families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, v, opts)
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().BoolVar(&opts.templates, "templates", false, "List templates instead of schemes")

	return cmd
}

func runList(cmd *cobra.Command, flags *rootFlags, v *viper.Viper, opts *listOptions) error {
	env, err := newCommandEnv(cmd, flags, v, "list")
	if err != nil {
		return err
	}

	provider := source.NewGitProvider(env.logger, false)
	filters := filtersFrom(env.opts)
	out := cmd.OutOrStdout()

	if opts.templates {
		templates := catalog.NewTemplateCatalog(*env.opts, provider, env.logger)
		writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "FAMILY\tTEMPLATE\tOUTPUT")
		for tmpl, err := range templates.Sources(env.ctx, filters) {
			if err != nil {
				if skippable(err) {
					env.logger.Warn(env.ctx, "skipped malformed template family", "error", err)
					continue
				}
				return newCommandError("list", "reading templates", err, suggestionFor(err))
			}
			fmt.Fprintf(writer, "%s\t%s\t%s\n", tmpl.Family, tmpl.Name, tmpl.Output)
		}
		return writer.Flush()
	}

	swatches := interactive(out)
	schemes := catalog.NewSchemeCatalog(*env.opts, provider, env.logger)
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "SLUG\tFAMILY\tNAME\tAUTHOR")
	for s, err := range schemes.Sources(env.ctx, filters) {
		if err != nil {
			if skippable(err) {
				env.logger.Warn(env.ctx, "skipped malformed scheme", "error", err)
				continue
			}
			return newCommandError("list", "reading schemes", err, suggestionFor(err))
		}
		name := s.DisplayName()
		if swatches {
			name = palette(s) + " " + name
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", s.Slug(), s.Family, name, valueOrFallback(s.Author(), "(unknown)"))
	}
	return writer.Flush()
}

// palette renders the sixteen base colours as a row of coloured cells.
func palette(s *scheme.Scheme) string {
	var b strings.Builder
	for _, hex := range s.BaseColors() {
		cell := lipgloss.NewStyle().Background(lipgloss.Color("#" + strings.ToLower(hex)))
		b.WriteString(cell.Render(" "))
	}
	return b.String()
}

func skippable(err error) bool {
	var (
		schemeErr *b16errors.MalformedSchemeError
		docErr    *b16errors.MalformedCatalogDocumentError
	)
	return errors.As(err, &schemeErr) || errors.As(err, &docErr)
}

func valueOrFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
