package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/base16-builder/internal/config"
)

type rootFlags struct {
	verbose    bool
	configFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "base16-builder",
		Short:         "Build base16 themes from scheme and template repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Bound per run: build, update and list each declare their own --scheme.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd)
		},
	}

	defaults := config.DefaultOptions()
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().String("cache-dir", defaults.CacheDir, "Directory sources are cloned into")
	cmd.PersistentFlags().String("schemes-source", defaults.SchemesSource, "Git URL or directory of the scheme list")
	cmd.PersistentFlags().String("templates-source", defaults.TemplatesSource, "Git URL or directory of the template list")

	cmd.AddCommand(newBuildCmd(flags, v))
	cmd.AddCommand(newUpdateCmd(flags, v))
	cmd.AddCommand(newListCmd(flags, v))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// bindFlags exposes every flag of the running command to viper under its own
// name. Only flags the user set override the config file and environment.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	return v.BindPFlags(cmd.Flags())
}

// addFilterFlags registers the scheme and template selection flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("scheme", "s", "", "Only use schemes whose slug contains this value")
	cmd.Flags().String("scheme-family", "", "Only use scheme families named inside this value")
	cmd.Flags().StringSliceP("template", "t", nil, "Only use these template families (repeatable)")
}
