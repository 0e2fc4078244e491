// Package build renders every selected scheme with every selected template
// into an in-memory result tree.
package build

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/base16-builder/internal/catalog"
	"github.com/alexisbeaulieu97/base16-builder/internal/config"
	"github.com/alexisbeaulieu97/base16-builder/internal/logging"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	"github.com/alexisbeaulieu97/base16-builder/internal/scheme"
	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

// Request selects what a build renders.
type Request struct {
	Filters catalog.Filters
}

// Result is the outcome of a build run.
type Result struct {
	Tree *Tree
	// Changed reports whether any fetch cloned or pulled new content.
	Changed bool
	// Skipped holds the malformed schemes and families left out of the tree.
	Skipped []error
}

// Pipeline ties the catalogs, the renderer and the result tree together.
type Pipeline struct {
	opts      config.Options
	schemes   *catalog.SchemeCatalog
	templates *catalog.TemplateCatalog
	renderer  ports.Renderer
	tracker   *trackingProvider
	logger    ports.Logger
}

// New creates a Pipeline. The provider is shared by both catalogs.
func New(opts config.Options, provider ports.SourceProvider, renderer ports.Renderer, logger ports.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	tracker := &trackingProvider{next: provider}
	return &Pipeline{
		opts:      opts,
		schemes:   catalog.NewSchemeCatalog(opts, tracker, logger),
		templates: catalog.NewTemplateCatalog(opts, tracker, logger),
		renderer:  renderer,
		tracker:   tracker,
		logger:    logger.With("component", "pipeline"),
	}
}

// Update clones or pulls the source lists and every family selected by
// filters. It reports whether anything changed.
func (p *Pipeline) Update(ctx context.Context, filters catalog.Filters) (bool, error) {
	schemesChanged, err := p.schemes.Update(ctx, filters)
	if err != nil {
		return schemesChanged, err
	}
	templatesChanged, err := p.templates.Update(ctx, filters)
	if err != nil {
		return schemesChanged || templatesChanged, err
	}
	p.tracker.reset()
	return schemesChanged || templatesChanged, nil
}

// Build updates the sources when the options ask for it and, unless
// building is disabled, renders the scheme x template product. On error the
// partial result is returned alongside it.
func (p *Pipeline) Build(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	p.tracker.reset()
	result := &Result{Tree: NewTree()}

	if p.opts.Update {
		changed, err := p.Update(ctx, req.Filters)
		result.Changed = changed
		if err != nil {
			return result, err
		}
	}
	if !p.opts.Build {
		return result, nil
	}

	err := p.render(ctx, req.Filters, result)
	result.Changed = result.Changed || p.tracker.reset()
	if err != nil {
		return result, err
	}

	if req.Filters.HasSchemeFilter() && result.Tree.Len() == 0 {
		return result, b16errors.NewNoMatchingSchemesError(req.Filters.Scheme, req.Filters.SchemeFamily)
	}

	p.logger.Info(ctx, "build finished",
		"schemes", result.Tree.Len(),
		"skipped", len(result.Skipped),
		"changed", result.Changed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// render walks the scheme catalog and renders each scheme on a bounded pool
// of workers.
func (p *Pipeline) render(ctx context.Context, filters catalog.Filters, result *Result) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := p.opts.Parallel
	if workers < 1 {
		workers = 1
	}
	pool := make(chan struct{}, workers)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		once      sync.Once
		firstErr  error
		templates []*catalog.TemplateFile
		loaded    bool
		seq       int
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}
	skip := func(err error) error {
		if p.opts.Strict {
			return err
		}
		p.logger.Warn(ctx, "skipping malformed entry", "error", err)
		mu.Lock()
		result.Skipped = append(result.Skipped, err)
		mu.Unlock()
		return nil
	}

	for s, err := range p.schemes.Sources(ctx, filters) {
		if err != nil {
			if isSkippable(err) {
				err = skip(err)
			}
			if err != nil {
				fail(err)
				break
			}
			continue
		}

		if !loaded {
			loaded = true
			var err error
			templates, err = p.loadTemplates(ctx, filters, skip)
			if err != nil {
				fail(err)
				break
			}
			if filters.HasTemplateFilter() && len(templates) == 0 {
				fail(b16errors.NewNoMatchingTemplatesError(filters.Templates))
				break
			}
		}

		select {
		case pool <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(seq int, s *scheme.Scheme) {
			defer wg.Done()
			defer func() { <-pool }()

			out, err := p.renderScheme(ctx, s, templates)
			if err != nil {
				if isSkippable(err) {
					err = skip(err)
				}
				if err != nil {
					fail(err)
				}
				return
			}
			result.Tree.Insert(seq, out)
		}(seq, s)
		seq++
	}

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	// The caller's context, not our own cancel, ended the walk.
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// loadTemplates collects the selected templates once per build.
func (p *Pipeline) loadTemplates(ctx context.Context, filters catalog.Filters, skip func(error) error) ([]*catalog.TemplateFile, error) {
	var templates []*catalog.TemplateFile
	for tmpl, err := range p.templates.Sources(ctx, filters) {
		if err != nil {
			if !isSkippable(err) {
				return nil, err
			}
			if err := skip(err); err != nil {
				return nil, err
			}
			continue
		}
		templates = append(templates, tmpl)
	}
	p.logger.Debug(ctx, "templates loaded", "count", len(templates))
	return templates, nil
}

// renderScheme derives the variables of s once and renders every template
// with them.
func (p *Pipeline) renderScheme(ctx context.Context, s *scheme.Scheme, templates []*catalog.TemplateFile) (*SchemeOutput, error) {
	vars, err := s.Variables()
	if err != nil {
		return nil, err
	}

	out := NewSchemeOutput(s.Slug(), vars)
	for _, tmpl := range templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := p.renderer.Render(tmpl.Text, tmpl.Dir, vars)
		if err != nil {
			return nil, b16errors.NewRenderError(tmpl.Family, tmpl.Name, s.Slug(), err)
		}
		if err := out.Put(tmpl.Family, tmpl.Output, tmpl.OutputFileName(s.Slug()), text); err != nil {
			return nil, fmt.Errorf("store %s/%s: %w", tmpl.Family, tmpl.Name, err)
		}
	}

	p.logger.Debug(ctx, "scheme rendered", "slug", s.Slug(), "family", s.Family, "templates", len(templates))
	return out, nil
}

// isSkippable reports whether err only affects one scheme or family.
func isSkippable(err error) bool {
	var schemeErr *b16errors.MalformedSchemeError
	var docErr *b16errors.MalformedCatalogDocumentError
	return errors.As(err, &schemeErr) || errors.As(err, &docErr)
}
