package build

import (
	"context"
	"sync/atomic"

	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
)

// trackingProvider records whether any fetch cloned or pulled content.
type trackingProvider struct {
	next    ports.SourceProvider
	changed atomic.Bool
}

func (p *trackingProvider) Fetch(ctx context.Context, req ports.FetchRequest) (*ports.Source, error) {
	src, err := p.next.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if src.Status.Changed() {
		p.changed.Store(true)
	}
	return src, nil
}

// reset clears the flag and returns its previous value.
func (p *trackingProvider) reset() bool {
	return p.changed.Swap(false)
}

var _ ports.SourceProvider = (*trackingProvider)(nil)
