package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

// MemoryProvider serves sources from in-memory filesystems keyed by locator.
// It is safe for concurrent use.
type MemoryProvider struct {
	mu       sync.Mutex
	sources  map[string]billy.Filesystem
	failures map[string]error
	requests []ports.FetchRequest
}

// NewMemoryProvider returns an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		sources:  make(map[string]billy.Filesystem),
		failures: make(map[string]error),
	}
}

// Add registers files (path -> contents) under locator, replacing any
// previous tree.
func (p *MemoryProvider) Add(locator string, files map[string]string) error {
	fs := memfs.New()

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := util.WriteFile(fs, path, []byte(files[path]), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.sources[locator] = fs
	return nil
}

// Fail makes every fetch of locator fail with err.
func (p *MemoryProvider) Fail(locator string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[locator] = err
}

// Requests returns a copy of every fetch request received so far.
func (p *MemoryProvider) Requests() []ports.FetchRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.FetchRequest(nil), p.requests...)
}

// Fetch implements ports.SourceProvider.
func (p *MemoryProvider) Fetch(ctx context.Context, req ports.FetchRequest) (*ports.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, b16errors.NewSourceFetchError(req.Locator, req.Destination, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)

	if err, ok := p.failures[req.Locator]; ok {
		return nil, b16errors.NewSourceFetchError(req.Locator, req.Destination, err)
	}
	fs, ok := p.sources[req.Locator]
	if !ok {
		return nil, b16errors.NewSourceFetchError(req.Locator, req.Destination, fmt.Errorf("unknown locator"))
	}
	return &ports.Source{FS: fs, Root: req.Locator, Status: ports.FetchUnchanged}, nil
}

var _ ports.SourceProvider = (*MemoryProvider)(nil)
