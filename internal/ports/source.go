package ports

import (
	"context"

	"github.com/go-git/go-billy/v5"
)

// FetchStatus describes what a provider had to do to make a source available.
type FetchStatus int

const (
	// FetchUnchanged means the source was already present and nothing moved.
	FetchUnchanged FetchStatus = iota
	// FetchCloned means the source was freshly fetched.
	FetchCloned
	// FetchUpdated means an existing copy pulled new content.
	FetchUpdated
)

// String returns the lowercase status name used in logs.
func (s FetchStatus) String() string {
	switch s {
	case FetchCloned:
		return "cloned"
	case FetchUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Changed reports whether the fetch altered local state.
func (s FetchStatus) Changed() bool {
	return s != FetchUnchanged
}

// FetchRequest asks a provider to materialise a locator.
type FetchRequest struct {
	// Locator is a git URL or a local directory path.
	Locator string
	// Destination is where remote locators are cloned to.
	Destination string
	// Pull refreshes an existing clone instead of only cloning when missing.
	Pull bool
}

// Source is a readable directory tree returned by a provider. FS is nil when
// the provider ran in check mode and did not touch disk.
type Source struct {
	FS     billy.Filesystem
	Root   string
	Status FetchStatus
}

// SourceProvider fetches scheme and template repositories. Implementations
// report failures as *errors.SourceFetchError.
type SourceProvider interface {
	Fetch(ctx context.Context, req FetchRequest) (*Source, error)
}
