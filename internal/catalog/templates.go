package catalog

import (
	"context"
	"fmt"
	"iter"

	"github.com/go-git/go-billy/v5"

	"github.com/alexisbeaulieu97/base16-builder/internal/config"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

const (
	// ReservedFamily is the result tree key holding scheme variables; no
	// template family may use it.
	ReservedFamily = "scheme-variables"

	templatesDir      = "templates"
	templateConfig    = "config"
	templateExtension = ".mustache"
)

// TemplateFile is one renderable template of a template family.
type TemplateFile struct {
	Family    string
	Name      string
	Path      string
	Output    string
	Extension string
	Text      string
	// Dir is the family's templates directory, used to resolve partials.
	Dir billy.Filesystem
}

// OutputFileName is the artifact name for a scheme slug.
func (t *TemplateFile) OutputFileName(slug string) string {
	return "base16-" + slug + t.Extension
}

// TemplateConfig is one entry of a family's templates/config.yaml.
type TemplateConfig struct {
	Output    string `yaml:"output" validate:"required"`
	Extension string `yaml:"extension"`
}

// TemplateCatalog enumerates template files from the template source list.
type TemplateCatalog struct {
	families families
}

// NewTemplateCatalog creates a catalog reading opts.TemplatesSource.
func NewTemplateCatalog(opts config.Options, provider ports.SourceProvider, logger ports.Logger) *TemplateCatalog {
	return &TemplateCatalog{families: newFamilies(KindTemplates, opts.TemplatesSource, opts, provider, logger)}
}

// Sources lazily yields every template file of the families selected by
// filters. A malformed family yields one error and is skipped.
func (c *TemplateCatalog) Sources(ctx context.Context, filters Filters) iter.Seq2[*TemplateFile, error] {
	return func(yield func(*TemplateFile, error) bool) {
		entries, src, err := c.families.list(ctx, false)
		if err != nil {
			yield(nil, err)
			return
		}
		if src.FS == nil {
			yield(nil, b16errors.NewSourceFetchError(c.families.locator, "", errSourceUnavailable))
			return
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !filters.MatchesTemplateFamily(entry.Name) {
				continue
			}
			if entry.Name == ReservedFamily {
				err := b16errors.NewMalformedCatalogDocumentError(entry.Name, ListFile, fmt.Errorf("%q is reserved", ReservedFamily))
				if !yield(nil, err) {
					return
				}
				continue
			}

			famSrc, err := c.families.fetch(ctx, entry, false)
			if err != nil {
				yield(nil, err)
				return
			}

			templates, err := readTemplates(entry.Name, famSrc)
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			for _, tmpl := range templates {
				if !yield(tmpl, nil) {
					return
				}
			}
		}
	}
}

// Update clones or pulls the template list and every family selected by filters.
func (c *TemplateCatalog) Update(ctx context.Context, filters Filters) (bool, error) {
	return c.families.update(ctx, filters.MatchesTemplateFamily)
}

// readTemplates loads every template named by the family's config documents.
// Any failure rejects the whole family.
func readTemplates(family string, src *ports.Source) ([]*TemplateFile, error) {
	if src.FS == nil {
		return nil, b16errors.NewMalformedCatalogDocumentError(family, src.Root, errSourceUnavailable)
	}

	dir, err := src.FS.Chroot(templatesDir)
	if err != nil {
		return nil, b16errors.NewMalformedCatalogDocumentError(family, templatesDir, err)
	}

	names, err := documentNames(dir, "/", templateConfig)
	if err != nil {
		return nil, b16errors.NewMalformedCatalogDocumentError(family, templatesDir, err)
	}

	var templates []*TemplateFile
	for _, name := range names {
		docPath := src.FS.Join(templatesDir, name)
		data, err := readFile(dir, name)
		if err != nil {
			return nil, b16errors.NewMalformedCatalogDocumentError(family, docPath, err)
		}

		configs, err := decodeTemplateConfigs(data)
		if err != nil {
			return nil, b16errors.NewMalformedCatalogDocumentError(family, docPath, err)
		}

		for _, cfg := range configs {
			bodyName := cfg.name + templateExtension
			body, err := readFile(dir, bodyName)
			if err != nil {
				return nil, b16errors.NewMalformedCatalogDocumentError(family, src.FS.Join(templatesDir, bodyName), err)
			}
			templates = append(templates, &TemplateFile{
				Family:    family,
				Name:      cfg.name,
				Path:      src.FS.Join(src.Root, templatesDir, bodyName),
				Output:    cfg.Output,
				Extension: cfg.Extension,
				Text:      string(body),
				Dir:       dir,
			})
		}
	}
	return templates, nil
}

type namedTemplateConfig struct {
	name string
	TemplateConfig
}

func decodeTemplateConfigs(data []byte) ([]namedTemplateConfig, error) {
	mapping, err := decodeMapping(data)
	if err != nil {
		return nil, err
	}

	configs := make([]namedTemplateConfig, 0, len(mapping))
	for _, item := range mapping {
		var cfg TemplateConfig
		if err := item.Value.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("template %q: %w", item.Key, err)
		}
		if err := config.GetValidator().Struct(cfg); err != nil {
			return nil, fmt.Errorf("template %q: %s is required", item.Key, config.FirstInvalidField(err))
		}
		configs = append(configs, namedTemplateConfig{name: item.Key, TemplateConfig: cfg})
	}
	return configs, nil
}
