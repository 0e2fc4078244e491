package catalog

import (
	"context"
	"errors"

	"github.com/alexisbeaulieu97/base16-builder/internal/config"
	"github.com/alexisbeaulieu97/base16-builder/internal/logging"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
)

// Source kinds, also used as cache directory names.
const (
	KindSchemes   = "schemes"
	KindTemplates = "templates"
)

var errSourceUnavailable = errors.New("source not available locally")

// families resolves a source list repository and the family repositories it
// names. It holds no iteration state so every walk starts from scratch.
type families struct {
	kind     string
	locator  string
	opts     config.Options
	provider ports.SourceProvider
	logger   ports.Logger
}

func newFamilies(kind, locator string, opts config.Options, provider ports.SourceProvider, logger ports.Logger) families {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return families{
		kind:     kind,
		locator:  locator,
		opts:     opts,
		provider: provider,
		logger:   logger.With("component", "catalog", "kind", kind),
	}
}

// list fetches the source list repository and reads its family entries.
func (f families) list(ctx context.Context, pull bool) ([]ListEntry, *ports.Source, error) {
	src, err := f.provider.Fetch(ctx, ports.FetchRequest{
		Locator:     f.locator,
		Destination: f.opts.ListDestination(f.kind),
		Pull:        pull,
	})
	if err != nil {
		return nil, nil, err
	}
	if src.FS == nil {
		return nil, src, nil
	}

	entries, err := ReadList(src.FS)
	if err != nil {
		return nil, src, err
	}
	f.logger.Debug(ctx, "read source list", "locator", f.locator, "families", len(entries))
	return entries, src, nil
}

// fetch materialises one family repository.
func (f families) fetch(ctx context.Context, entry ListEntry, pull bool) (*ports.Source, error) {
	src, err := f.provider.Fetch(ctx, ports.FetchRequest{
		Locator:     entry.Locator,
		Destination: f.opts.FamilyDestination(f.kind, entry.Name),
		Pull:        pull,
	})
	if err != nil {
		return nil, err
	}
	f.logger.Debug(ctx, "fetched family", "family", entry.Name, "status", src.Status.String())
	return src, nil
}

// update clones or pulls the list repository and every family accepted by
// match. It reports whether anything changed on disk.
func (f families) update(ctx context.Context, match func(string) bool) (bool, error) {
	entries, src, err := f.list(ctx, true)
	if err != nil {
		return false, err
	}
	changed := src.Status.Changed()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		if !match(entry.Name) {
			continue
		}
		famSrc, err := f.fetch(ctx, entry, true)
		if err != nil {
			return changed, err
		}
		if famSrc.Status.Changed() {
			f.logger.Info(ctx, "family refreshed", "family", entry.Name, "status", famSrc.Status.String())
			changed = true
		}
	}
	return changed, nil
}
