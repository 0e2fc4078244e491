package build

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/base16-builder/internal/config"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	"github.com/alexisbeaulieu97/base16-builder/internal/render"
	"github.com/alexisbeaulieu97/base16-builder/internal/source"
)

const (
	schemesLocator   = "mem://schemes-source"
	templatesLocator = "mem://templates-source"
)

var tomorrowNightBases = []string{
	"1d1f21", "282a2e", "373b41", "969896", "b4b7b4", "c5c8c6", "e0e0e0", "ffffff",
	"cc6666", "de935f", "f0c674", "b5bd68", "8abeb7", "81a2be", "b294bb", "a3685a",
}

var tomorrowBases = []string{
	"ffffff", "e0e0e0", "d6d6d6", "8e908c", "969896", "4d4d4c", "282a2e", "1d1f21",
	"c82829", "f5871f", "eab700", "718c00", "3e999f", "4271ae", "8959a8", "a3685a",
}

var oceanBases = []string{
	"2b303b", "343d46", "4f5b66", "65737e", "a7adba", "c0c5ce", "dfe1e8", "eff1f5",
	"bf616a", "d08770", "ebcb8b", "a3be8c", "96b5b4", "8fa1b3", "b48ead", "ab7967",
}

// schemeYAML renders a scheme document from its sixteen base colours.
func schemeYAML(name string, bases []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scheme: %q\n", name)
	b.WriteString("author: \"Chris Kempson (http://chriskempson.com)\"\n")
	for i, hex := range bases {
		fmt.Fprintf(&b, "base%02X: %q\n", i, hex)
	}
	return b.String()
}

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

func newFixtureProvider(t *testing.T) *source.MemoryProvider {
	t.Helper()

	p := source.NewMemoryProvider()
	require.NoError(t, p.Add(schemesLocator, map[string]string{
		"list.yaml": "tomorrow: mem://tomorrow\nocean: mem://ocean\n",
	}))
	require.NoError(t, p.Add("mem://tomorrow", map[string]string{
		"tomorrow.yaml":       schemeYAML("Tomorrow", tomorrowBases),
		"tomorrow-night.yaml": schemeYAML("Tomorrow Night", tomorrowNightBases),
	}))
	require.NoError(t, p.Add("mem://ocean", map[string]string{
		"ocean.yaml": schemeYAML("Ocean", oceanBases),
	}))

	require.NoError(t, p.Add(templatesLocator, map[string]string{
		"list.yaml": "i3: mem://i3\nvim: mem://vim\n",
	}))
	require.NoError(t, p.Add("mem://i3", map[string]string{
		"templates/config.yaml":                i3ConfigYAML,
		"templates/bar-colors.mustache":        "bar {{base00-hex}}",
		"templates/client-properties.mustache": "client {{base01-hex}}",
		"templates/colors.mustache":            "colors {{base02-hex}} {{> footer}}",
		"templates/themes.mustache":            "themes {{scheme-name}}",
		"templates/footer.mustache":            "# {{scheme-slug}}",
	}))
	require.NoError(t, p.Add("mem://vim", map[string]string{
		"templates/config.yaml":      "default:\n  extension: .vim\n  output: colors\n",
		"templates/default.mustache": "let g:colors_name = \"base16-{{scheme-slug}}\"",
	}))
	return p
}

func newTestPipeline(opts config.Options, provider ports.SourceProvider) *Pipeline {
	return New(opts, provider, render.NewMustacheRenderer(), nil)
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
