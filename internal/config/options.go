package config

import (
	"os"
	"path/filepath"
	"strings"

	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

const (
	// AppDir is the directory created under the cache dir for cloned sources.
	AppDir = "base16-builder"

	DefaultSchemesSource   = "https://github.com/chriskempson/base16-schemes-source"
	DefaultTemplatesSource = "https://github.com/chriskempson/base16-templates-source"
	DefaultParallel        = 1
)

// Options holds every knob of a build or update run.
type Options struct {
	Scheme          string   `mapstructure:"scheme"`
	SchemeFamily    string   `mapstructure:"scheme-family"`
	Templates       []string `mapstructure:"template" validate:"omitempty,dive,required"`
	CacheDir        string   `mapstructure:"cache-dir" validate:"required"`
	SchemesSource   string   `mapstructure:"schemes-source" validate:"required,source_locator"`
	TemplatesSource string   `mapstructure:"templates-source" validate:"required,source_locator"`
	Update          bool     `mapstructure:"update"`
	Build           bool     `mapstructure:"build"`
	DryRun          bool     `mapstructure:"dry-run"`
	Strict          bool     `mapstructure:"strict"`
	Parallel        int      `mapstructure:"parallel" validate:"min=1,max=32"`
}

// DefaultOptions returns options that build every scheme for every template
// from the upstream source lists.
func DefaultOptions() Options {
	return Options{
		CacheDir:        DefaultCacheDir(),
		SchemesSource:   DefaultSchemesSource,
		TemplatesSource: DefaultTemplatesSource,
		Build:           true,
		Parallel:        DefaultParallel,
	}
}

// Validate performs schema and cross-field validation on the options.
func (o *Options) Validate() error {
	if o == nil {
		return b16errors.NewValidationError("options", "options are nil", nil)
	}

	if err := validatorInstance().Struct(o); err != nil {
		return convertValidationError(err)
	}

	if o.DryRun && o.Build {
		return b16errors.NewValidationError("dry-run", "check mode only applies to update runs; disable build", nil)
	}
	if !o.Build && !o.Update {
		return b16errors.NewValidationError("build", "nothing to do: both build and update are disabled", nil)
	}

	return nil
}

// ListDestination is where the source list repository of kind is cloned.
func (o Options) ListDestination(kind string) string {
	return filepath.Join(o.CacheDir, AppDir, "sources", kind)
}

// FamilyDestination is where a family repository of kind is cloned.
func (o Options) FamilyDestination(kind, family string) string {
	return filepath.Join(o.CacheDir, AppDir, kind, family)
}

// DefaultCacheDir resolves $XDG_CACHE_DIR, then $XDG_CACHE_HOME, then
// ~/.cache when it exists, and finally the platform temp dir.
func DefaultCacheDir() string {
	for _, env := range []string{"XDG_CACHE_DIR", "XDG_CACHE_HOME"} {
		if dir := strings.TrimSpace(os.Getenv(env)); dir != "" {
			return dir
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".cache")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}

	return os.TempDir()
}

// normalizeTemplates splits comma separated entries and drops blanks so that
// env values like "i3,vim" behave like repeated flags.
func normalizeTemplates(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
