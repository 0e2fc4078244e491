package build

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/base16-builder/internal/catalog"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	"github.com/alexisbeaulieu97/base16-builder/internal/scheme"
	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

func TestBuildTomorrowNightWithI3(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(testOptions(), newFixtureProvider(t))
	result, err := p.Build(context.Background(), Request{Filters: catalog.Filters{
		Scheme:    "tomorrow-night",
		Templates: []string{"i3"},
	}})
	require.NoError(t, err)
	require.False(t, result.Changed)
	require.Empty(t, result.Skipped)

	tree := result.Tree
	require.Equal(t, []string{"tomorrow-night"}, tree.Slugs())

	vars, ok := tree.Variables("tomorrow-night")
	require.True(t, ok)
	require.Len(t, vars, scheme.VariableCount)
	require.Equal(t, "1d1f21", vars["base00-hex"])
	require.Equal(t, "211f1d", vars["base00-hex-bgr"])
	require.Equal(t, "29", vars["base00-rgb-r"])
	require.Equal(t, "0.11372549019607843", vars["base00-dec-r"])
	require.Equal(t, "tomorrow_night", vars["scheme-slug-underscored"])

	require.Equal(t, []string{"i3"}, tree.Families("tomorrow-night"))
	nested := tree.Map()["tomorrow-night"].(map[string]any)
	require.Len(t, nested, 2)
	i3 := nested["i3"].(map[string]any)
	require.Len(t, i3, 4)
	for _, subdir := range []string{"bar-colors", "client-properties", "colors", "themes"} {
		files := i3[subdir].(map[string]any)
		require.Len(t, files, 1, subdir)
		require.Contains(t, files, "base16-tomorrow-night.config", subdir)
	}

	text, ok := tree.Get("tomorrow-night", "i3", "bar-colors", "base16-tomorrow-night.config")
	require.True(t, ok)
	require.Equal(t, "bar 1d1f21", text)

	text, _ = tree.Get("tomorrow-night", "i3", "colors", "base16-tomorrow-night.config")
	require.Equal(t, "colors 373b41 # tomorrow-night", text)

	text, _ = tree.Get("tomorrow-night", "i3", "themes", "base16-tomorrow-night.config")
	require.Equal(t, "themes Tomorrow Night", text)
}

func TestBuildEverySchemeAndTemplate(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(testOptions(), newFixtureProvider(t))
	result, err := p.Build(context.Background(), Request{})
	require.NoError(t, err)

	require.Equal(t, []string{"tomorrow-night", "tomorrow", "ocean"}, result.Tree.Slugs())
	require.Len(t, result.Tree.Artifacts(), 3*5)

	text, ok := result.Tree.Get("ocean", "vim", "colors", "base16-ocean.vim")
	require.True(t, ok)
	require.Equal(t, `let g:colors_name = "base16-ocean"`, text)
}

func TestBuildUnknownSchemeFails(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(testOptions(), newFixtureProvider(t))
	_, err := p.Build(context.Background(), Request{Filters: catalog.Filters{Scheme: "not-a-real-scheme"}})

	var noSchemes *b16errors.NoMatchingSchemesError
	require.ErrorAs(t, err, &noSchemes)
	require.Contains(t, err.Error(), `"not-a-real-scheme"`)
}

func TestBuildUnknownTemplateFails(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(testOptions(), newFixtureProvider(t))
	_, err := p.Build(context.Background(), Request{Filters: catalog.Filters{
		Scheme:    "ocean",
		Templates: []string{"not-a-real-template"},
	}})

	var noTemplates *b16errors.NoMatchingTemplatesError
	require.ErrorAs(t, err, &noTemplates)
	require.Contains(t, err.Error(), `["not-a-real-template"]`)
}

func TestBuildEmptyCatalogIsNotAnError(t *testing.T) {
	t.Parallel()

	provider := newFixtureProvider(t)
	require.NoError(t, provider.Add(schemesLocator, map[string]string{"list.yaml": ""}))

	p := newTestPipeline(testOptions(), provider)
	result, err := p.Build(context.Background(), Request{})
	require.NoError(t, err)
	require.Zero(t, result.Tree.Len())

	for _, req := range provider.Requests() {
		require.NotEqual(t, templatesLocator, req.Locator, "templates are only fetched once a scheme is found")
	}
}

func TestBuildSchemesWithoutTemplates(t *testing.T) {
	t.Parallel()

	provider := newFixtureProvider(t)
	require.NoError(t, provider.Add(templatesLocator, map[string]string{"list.yaml": "{}\n"}))

	p := newTestPipeline(testOptions(), provider)
	result, err := p.Build(context.Background(), Request{Filters: catalog.Filters{Scheme: "ocean"}})
	require.NoError(t, err)
	require.Equal(t, []string{"ocean"}, result.Tree.Slugs())
	require.Empty(t, result.Tree.Families("ocean"))

	_, ok := result.Tree.Variables("ocean")
	require.True(t, ok)
}

func TestBuildSkipsMalformedSchemes(t *testing.T) {
	t.Parallel()

	broken := append([]string(nil), oceanBases...)
	broken[10] = "ebcb8"

	provider := newFixtureProvider(t)
	require.NoError(t, provider.Add("mem://ocean", map[string]string{
		"ocean.yaml":        schemeYAML("Ocean", oceanBases),
		"ocean-broken.yaml": schemeYAML("Ocean Broken", broken),
	}))

	p := newTestPipeline(testOptions(), provider)
	result, err := p.Build(context.Background(), Request{Filters: catalog.Filters{SchemeFamily: "ocean"}})
	require.NoError(t, err)
	require.Equal(t, []string{"ocean"}, result.Tree.Slugs())
	require.Len(t, result.Skipped, 1)

	var schemeErr *b16errors.MalformedSchemeError
	require.ErrorAs(t, result.Skipped[0], &schemeErr)
	require.Equal(t, "ocean-broken", schemeErr.Slug)
	require.Equal(t, "base0A", schemeErr.Base)
}

func TestBuildStrictAbortsOnMalformedScheme(t *testing.T) {
	t.Parallel()

	provider := newFixtureProvider(t)
	require.NoError(t, provider.Add("mem://ocean", map[string]string{
		"ocean.yaml": "scheme: Ocean\nbase00: [\n",
	}))

	opts := testOptions()
	opts.Strict = true
	p := newTestPipeline(opts, provider)

	_, err := p.Build(context.Background(), Request{})
	var schemeErr *b16errors.MalformedSchemeError
	require.ErrorAs(t, err, &schemeErr)
	require.Equal(t, "ocean", schemeErr.Slug)
}

func TestBuildIgnoresUnselectedMalformedScheme(t *testing.T) {
	t.Parallel()

	provider := newFixtureProvider(t)
	require.NoError(t, provider.Add("mem://tomorrow", map[string]string{
		"tomorrow-night.yaml": schemeYAML("Tomorrow Night", tomorrowNightBases),
		"zzz-broken.yaml":     "scheme: [\n",
	}))

	for _, strict := range []bool{false, true} {
		opts := testOptions()
		opts.Strict = strict
		p := newTestPipeline(opts, provider)

		result, err := p.Build(context.Background(), Request{Filters: catalog.Filters{
			Scheme:    "tomorrow-night",
			Templates: []string{"vim"},
		}})
		require.NoError(t, err, "strict=%t", strict)
		require.Empty(t, result.Skipped, "strict=%t", strict)
		require.Equal(t, []string{"tomorrow-night"}, result.Tree.Slugs())
	}
}

func TestBuildSkipsMalformedTemplateFamily(t *testing.T) {
	t.Parallel()

	provider := newFixtureProvider(t)
	require.NoError(t, provider.Add("mem://vim", map[string]string{
		"templates/config.yaml": "default:\n  extension: .vim\n",
	}))

	p := newTestPipeline(testOptions(), provider)
	result, err := p.Build(context.Background(), Request{Filters: catalog.Filters{Scheme: "ocean"}})
	require.NoError(t, err)
	require.Equal(t, []string{"i3"}, result.Tree.Families("ocean"))
	require.Len(t, result.Skipped, 1)

	var docErr *b16errors.MalformedCatalogDocumentError
	require.ErrorAs(t, result.Skipped[0], &docErr)
	require.Equal(t, "vim", docErr.Family)
}

func TestBuildRenderFailureAborts(t *testing.T) {
	t.Parallel()

	provider := newFixtureProvider(t)
	require.NoError(t, provider.Add("mem://vim", map[string]string{
		"templates/config.yaml":      "default:\n  extension: .vim\n  output: colors\n",
		"templates/default.mustache": "{{#unclosed}}",
	}))

	p := newTestPipeline(testOptions(), provider)
	_, err := p.Build(context.Background(), Request{})

	var renderErr *b16errors.RenderError
	require.ErrorAs(t, err, &renderErr)
	require.Equal(t, "vim", renderErr.Family)
	require.Equal(t, "default", renderErr.Template)
}

func TestBuildFetchFailureAborts(t *testing.T) {
	t.Parallel()

	provider := newFixtureProvider(t)
	provider.Fail("mem://ocean", errors.New("connection reset"))

	p := newTestPipeline(testOptions(), provider)
	result, err := p.Build(context.Background(), Request{})

	var fetchErr *b16errors.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, "mem://ocean", fetchErr.Locator)
	require.NotNil(t, result)
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	sequential := newTestPipeline(testOptions(), newFixtureProvider(t))
	want, err := sequential.Build(context.Background(), Request{})
	require.NoError(t, err)

	opts := testOptions()
	opts.Parallel = 4
	parallel := newTestPipeline(opts, newFixtureProvider(t))
	got, err := parallel.Build(context.Background(), Request{})
	require.NoError(t, err)

	require.Equal(t, want.Tree.Slugs(), got.Tree.Slugs())
	require.Equal(t, want.Tree.Map(), got.Tree.Map())
}

func TestBuildSlugCollisionLastWins(t *testing.T) {
	t.Parallel()

	darker := append([]string(nil), oceanBases...)
	darker[0] = "000000"

	for _, workers := range []int{1, 4} {
		provider := newFixtureProvider(t)
		require.NoError(t, provider.Add(schemesLocator, map[string]string{
			"list.yaml": "ocean: mem://ocean\nocean-fork: mem://ocean-fork\n",
		}))
		require.NoError(t, provider.Add("mem://ocean-fork", map[string]string{
			"ocean.yaml": schemeYAML("Ocean (fork)", darker),
		}))

		opts := testOptions()
		opts.Parallel = workers
		p := newTestPipeline(opts, provider)

		result, err := p.Build(context.Background(), Request{})
		require.NoError(t, err)
		require.Equal(t, []string{"ocean"}, result.Tree.Slugs())

		vars, _ := result.Tree.Variables("ocean")
		require.Equal(t, "000000", vars["base00-hex"], "workers=%d", workers)
		require.Equal(t, "0.0", vars["base00-dec-r"], "workers=%d", workers)
		require.Equal(t, "Ocean (fork)", vars["scheme-name"], "workers=%d", workers)
	}
}

func TestBuildReportsChangedSources(t *testing.T) {
	t.Parallel()

	provider := statusProvider{
		SourceProvider: newFixtureProvider(t),
		statuses:       map[string]ports.FetchStatus{"mem://ocean": ports.FetchCloned},
	}

	p := newTestPipeline(testOptions(), provider)

	result, err := p.Build(context.Background(), Request{Filters: catalog.Filters{Scheme: "ocean"}})
	require.NoError(t, err)
	require.True(t, result.Changed)

	result, err = p.Build(context.Background(), Request{Filters: catalog.Filters{Scheme: "tomorrow"}})
	require.NoError(t, err)
	require.False(t, result.Changed)
}

func TestBuildUpdateOnly(t *testing.T) {
	t.Parallel()

	base := newFixtureProvider(t)
	provider := statusProvider{
		SourceProvider: base,
		statuses:       map[string]ports.FetchStatus{"mem://vim": ports.FetchUpdated},
	}

	opts := testOptions()
	opts.Update = true
	opts.Build = false
	p := newTestPipeline(opts, provider)

	result, err := p.Build(context.Background(), Request{Filters: catalog.Filters{Templates: []string{"vim"}}})
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Zero(t, result.Tree.Len())

	var locators []string
	for _, req := range base.Requests() {
		require.True(t, req.Pull, req.Locator)
		locators = append(locators, req.Locator)
	}
	require.Equal(t, []string{schemesLocator, "mem://tomorrow", "mem://ocean", templatesLocator, "mem://vim"}, locators)
}

func TestBuildHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestPipeline(testOptions(), newFixtureProvider(t))
	_, err := p.Build(ctx, Request{})
	require.ErrorIs(t, err, context.Canceled)
}
