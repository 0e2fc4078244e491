package config

import (
	"strings"

	"github.com/spf13/viper"

	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. BASE16_BUILDER_CACHE_DIR.
const EnvPrefix = "BASE16_BUILDER"

// EnvKeyReplacer maps option keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer("-", "_", ".", "_")

// NewViper returns a viper instance seeded with defaults and environment
// bindings. Callers bind their flags before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultOptions()
	v.SetDefault("cache-dir", defaults.CacheDir)
	v.SetDefault("schemes-source", defaults.SchemesSource)
	v.SetDefault("templates-source", defaults.TemplatesSource)
	v.SetDefault("build", defaults.Build)
	v.SetDefault("parallel", defaults.Parallel)
	v.SetDefault("update", false)
	v.SetDefault("dry-run", false)
	v.SetDefault("strict", false)
	v.SetDefault("scheme", "")
	v.SetDefault("scheme-family", "")
	v.SetDefault("template", []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()

	return v
}

// Load reads the optional YAML config file into v and resolves the layered
// options (defaults, file, environment, flags), then validates them.
func Load(v *viper.Viper, configFile string) (*Options, error) {
	if v == nil {
		v = NewViper()
	}

	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, b16errors.NewParseError(configFile, ExtractLine(err), err)
		}
	}

	opts := &Options{
		Scheme:          strings.TrimSpace(v.GetString("scheme")),
		SchemeFamily:    strings.TrimSpace(v.GetString("scheme-family")),
		Templates:       normalizeTemplates(v.GetStringSlice("template")),
		CacheDir:        v.GetString("cache-dir"),
		SchemesSource:   v.GetString("schemes-source"),
		TemplatesSource: v.GetString("templates-source"),
		Update:          v.GetBool("update"),
		Build:           v.GetBool("build"),
		DryRun:          v.GetBool("dry-run"),
		Strict:          v.GetBool("strict"),
		Parallel:        v.GetInt("parallel"),
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return opts, nil
}
