package catalog

import (
	"context"
	"iter"

	"github.com/alexisbeaulieu97/base16-builder/internal/config"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	"github.com/alexisbeaulieu97/base16-builder/internal/scheme"
	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

// SchemeCatalog enumerates schemes from the scheme source list.
type SchemeCatalog struct {
	families families
}

// NewSchemeCatalog creates a catalog reading opts.SchemesSource.
func NewSchemeCatalog(opts config.Options, provider ports.SourceProvider, logger ports.Logger) *SchemeCatalog {
	return &SchemeCatalog{families: newFamilies(KindSchemes, opts.SchemesSource, opts, provider, logger)}
}

// Sources lazily yields every scheme selected by filters, one family at a
// time. A malformed family or scheme yields an error and the walk moves on;
// fetch and list failures yield an error and end the walk.
func (c *SchemeCatalog) Sources(ctx context.Context, filters Filters) iter.Seq2[*scheme.Scheme, error] {
	return func(yield func(*scheme.Scheme, error) bool) {
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
			if !filters.MatchesSchemeFamily(entry.Name) {
				continue
			}

			famSrc, err := c.families.fetch(ctx, entry, false)
			if err != nil {
				yield(nil, err)
				return
			}

			schemes, errs := readSchemes(entry.Name, famSrc, filters.MatchesScheme)
			for _, err := range errs {
				if !yield(nil, err) {
					return
				}
			}
			for _, s := range schemes {
				if !yield(s, nil) {
					return
				}
			}
		}
	}
}

// Update clones or pulls the scheme list and every family selected by filters.
func (c *SchemeCatalog) Update(ctx context.Context, filters Filters) (bool, error) {
	return c.families.update(ctx, filters.MatchesSchemeFamily)
}

// readSchemes parses the scheme documents in the family root whose slug
// passes match. Unselected documents are never read. Documents that cannot be
// read are reported individually; an unreadable root fails the family.
func readSchemes(family string, src *ports.Source, match func(slug string) bool) ([]*scheme.Scheme, []error) {
	if src.FS == nil {
		return nil, []error{b16errors.NewMalformedCatalogDocumentError(family, src.Root, errSourceUnavailable)}
	}

	names, err := documentNames(src.FS, "/", "")
	if err != nil {
		return nil, []error{b16errors.NewMalformedCatalogDocumentError(family, src.Root, err)}
	}

	var (
		schemes []*scheme.Scheme
		errs    []error
	)
	for _, name := range names {
		if !match(scheme.SlugFromPath(name)) {
			continue
		}
		filePath := src.FS.Join(src.Root, name)
		data, err := readFile(src.FS, name)
		if err != nil {
			errs = append(errs, b16errors.NewMalformedSchemeError(scheme.SlugFromPath(name), "", err))
			continue
		}
		s, err := scheme.Parse(family, filePath, data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		schemes = append(schemes, s)
	}
	return schemes, errs
}
