package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/base16-builder/internal/config"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	"github.com/alexisbeaulieu97/base16-builder/internal/source"
)

const (
	schemesLocator   = "mem://schemes-source"
	templatesLocator = "mem://templates-source"
)

const tomorrowNightYAML = `scheme: "Tomorrow Night"
author: "Chris Kempson (http://chriskempson.com)"
base00: "1d1f21"
base01: "282a2e"
base02: "373b41"
base03: "969896"
base04: "b4b7b4"
base05: "c5c8c6"
base06: "e0e0e0"
base07: "ffffff"
base08: "cc6666"
base09: "de935f"
base0A: "f0c674"
base0B: "b5bd68"
base0C: "8abeb7"
base0D: "81a2be"
base0E: "b294bb"
base0F: "a3685a"
`

const tomorrowYAML = `scheme: "Tomorrow"
author: "Chris Kempson (http://chriskempson.com)"
base00: "ffffff"
base01: "e0e0e0"
base02: "d6d6d6"
base03: "8e908c"
base04: "969896"
base05: "4d4d4c"
base06: "282a2e"
base07: "1d1f21"
base08: "c82829"
base09: "f5871f"
base0A: "eab700"
base0B: "718c00"
base0C: "3e999f"
base0D: "4271ae"
base0E: "8959a8"
base0F: "a3685a"
`

const oceanYAML = `scheme: "Ocean"
author: "Chris Kempson (http://chriskempson.com)"
base00: "2b303b"
base01: "343d46"
base02: "4f5b66"
base03: "65737e"
base04: "a7adba"
base05: "c0c5ce"
base06: "dfe1e8"
base07: "eff1f5"
base08: "bf616a"
base09: "d08770"
base0A: "ebcb8b"
base0B: "a3be8c"
base0C: "96b5b4"
base0D: "8fa1b3"
base0E: "b48ead"
base0F: "ab7967"
`

const i3ConfigYAML = `bar-colors:
  extension: .config
  output: bar-colors
client-properties:
  extension: .config
  output: client-properties
colors:
  extension: .config
  output: colors
themes:
  extension: .config
  output: themes
`

func testOptions() config.Options {
	opts := config.DefaultOptions()
	opts.CacheDir = "/cache"
	opts.SchemesSource = schemesLocator
	opts.TemplatesSource = templatesLocator
	return opts
}

// newFixtureProvider registers a scheme list with the tomorrow and ocean
// families and a template list with the i3 and vim families.
func newFixtureProvider(t *testing.T) *source.MemoryProvider {
	t.Helper()

	p := source.NewMemoryProvider()
	require.NoError(t, p.Add(schemesLocator, map[string]string{
		"list.yaml": "tomorrow: mem://tomorrow\nocean: mem://ocean\n",
	}))
	require.NoError(t, p.Add("mem://tomorrow", map[string]string{
		"tomorrow.yaml":       tomorrowYAML,
		"tomorrow-night.yaml": tomorrowNightYAML,
		"README.md":           "# Tomorrow",
		".travis.yml":         "language: none\n",
	}))
	require.NoError(t, p.Add("mem://ocean", map[string]string{
		"ocean.yaml": oceanYAML,
	}))

	require.NoError(t, p.Add(templatesLocator, map[string]string{
		"list.yaml": "i3: mem://i3\nvim: mem://vim\n",
	}))
	require.NoError(t, p.Add("mem://i3", map[string]string{
		"templates/config.yaml":                i3ConfigYAML,
		"templates/bar-colors.mustache":        "bar {{base00-hex}}",
		"templates/client-properties.mustache": "client {{base01-hex}}",
		"templates/colors.mustache":            "colors {{base02-hex}}",
		"templates/themes.mustache":            "themes {{base03-hex}}",
	}))
	require.NoError(t, p.Add("mem://vim", map[string]string{
		"templates/default.mustache": "hi Normal guibg=#{{base00-hex}}",
		"templates/config.yml":       "default:\n  extension: .vim\n  output: colors\n",
	}))
	return p
}

func collectSchemes(t *testing.T, c *SchemeCatalog, filters Filters) ([]string, []error) {
	t.Helper()

	var (
		slugs []string
		errs  []error
	)
	for s, err := range c.Sources(context.Background(), filters) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		slugs = append(slugs, s.Slug())
	}
	return slugs, errs
}

func collectTemplates(t *testing.T, c *TemplateCatalog, filters Filters) ([]string, []error) {
	t.Helper()

	var (
		names []string
		errs  []error
	)
	for tmpl, err := range c.Sources(context.Background(), filters) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		names = append(names, tmpl.Family+"/"+tmpl.Name)
	}
	return names, errs
}

func requestedLocators(p *source.MemoryProvider) []string {
	var locators []string
	for _, req := range p.Requests() {
		locators = append(locators, req.Locator)
	}
	return locators
}

// statusProvider reports a fixed status for selected locators.
type statusProvider struct {
	ports.SourceProvider
	statuses map[string]ports.FetchStatus
}

func (p statusProvider) Fetch(ctx context.Context, req ports.FetchRequest) (*ports.Source, error) {
	src, err := p.SourceProvider.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if status, ok := p.statuses[req.Locator]; ok {
		copied := *src
		copied.Status = status
		return &copied, nil
	}
	return src, nil
}
