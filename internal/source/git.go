// Package source makes scheme and template repositories available on disk,
// cloning or pulling git remotes and using local directories in place.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	git "github.com/go-git/go-git/v5"

	"github.com/alexisbeaulieu97/base16-builder/internal/logging"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

// GitProvider fetches remote locators with go-git and serves existing local
// directories without copying them.
type GitProvider struct {
	// DryRun reports what would be cloned or pulled without touching disk.
	DryRun bool
	// Depth limits fresh clones to the given number of commits when positive.
	Depth int

	logger ports.Logger
}

// NewGitProvider creates a GitProvider.
func NewGitProvider(logger ports.Logger, dryRun bool) *GitProvider {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &GitProvider{
		DryRun: dryRun,
		logger: logger.With("component", "source"),
	}
}

var _ ports.SourceProvider = (*GitProvider)(nil)

// repoState describes what sits at a clone destination.
type repoState int

const (
	stateMissing repoState = iota
	stateForeign
	statePresent
)

// Fetch implements ports.SourceProvider.
func (p *GitProvider) Fetch(ctx context.Context, req ports.FetchRequest) (*ports.Source, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, b16errors.NewSourceFetchError(req.Locator, req.Destination, err)
		}
	}

	if dir, ok := localDirectory(req.Locator); ok {
		return &ports.Source{FS: osfs.New(dir), Root: dir, Status: ports.FetchUnchanged}, nil
	}

	if strings.TrimSpace(req.Destination) == "" {
		return nil, b16errors.NewSourceFetchError(req.Locator, "", errors.New("destination is required for remote sources"))
	}

	state, err := inspectDestination(req.Destination, req.Locator)
	if err != nil {
		return nil, b16errors.NewSourceFetchError(req.Locator, req.Destination, err)
	}

	if state == statePresent {
		if !req.Pull {
			return p.opened(req.Destination, ports.FetchUnchanged), nil
		}
		if p.DryRun {
			p.logger.Info(ctx, "would pull", "locator", req.Locator, "destination", req.Destination)
			return p.opened(req.Destination, ports.FetchUpdated), nil
		}
		status, err := p.pull(ctx, req.Destination)
		if err != nil {
			return nil, b16errors.NewSourceFetchError(req.Locator, req.Destination, err)
		}
		return p.opened(req.Destination, status), nil
	}

	if p.DryRun {
		p.logger.Info(ctx, "would clone", "locator", req.Locator, "destination", req.Destination)
		return &ports.Source{Root: req.Destination, Status: ports.FetchCloned}, nil
	}

	if err := p.clone(ctx, req.Locator, req.Destination, state == stateForeign); err != nil {
		return nil, b16errors.NewSourceFetchError(req.Locator, req.Destination, err)
	}
	return p.opened(req.Destination, ports.FetchCloned), nil
}

func (p *GitProvider) opened(dir string, status ports.FetchStatus) *ports.Source {
	return &ports.Source{FS: osfs.New(dir), Root: dir, Status: status}
}

func (p *GitProvider) clone(ctx context.Context, url, destination string, replace bool) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// A different repository or a plain directory is in the way.
	if replace {
		if err := os.RemoveAll(destination); err != nil {
			return fmt.Errorf("failed to remove existing directory: %w", err)
		}
	}

	opts := &git.CloneOptions{URL: url}
	if p.Depth > 0 {
		opts.Depth = p.Depth
	}
	if _, err := git.PlainCloneContext(ctx, destination, false, opts); err != nil {
		return fmt.Errorf("failed to clone repository: %w", err)
	}

	p.logger.Info(ctx, "cloned", "locator", url, "destination", destination)
	return nil
}

func (p *GitProvider) pull(ctx context.Context, destination string) (ports.FetchStatus, error) {
	repo, err := git.PlainOpen(destination)
	if err != nil {
		return ports.FetchUnchanged, fmt.Errorf("failed to open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return ports.FetchUnchanged, fmt.Errorf("failed to open worktree: %w", err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{RemoteName: git.DefaultRemoteName})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		p.logger.Debug(ctx, "already up to date", "destination", destination)
		return ports.FetchUnchanged, nil
	}
	if err != nil {
		return ports.FetchUnchanged, fmt.Errorf("failed to pull repository: %w", err)
	}

	p.logger.Info(ctx, "pulled", "destination", destination)
	return ports.FetchUpdated, nil
}

// inspectDestination checks whether destination holds a clone of url.
func inspectDestination(destination, url string) (repoState, error) {
	if _, err := os.Stat(destination); err != nil {
		if os.IsNotExist(err) {
			return stateMissing, nil
		}
		return stateMissing, fmt.Errorf("cannot access destination: %w", err)
	}

	repo, err := git.PlainOpen(destination)
	if err != nil {
		return stateForeign, nil
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return stateForeign, nil
	}
	if remote.Config().URLs[0] != url {
		return stateForeign, nil
	}
	return statePresent, nil
}

// localDirectory reports whether locator names an existing directory. URLs,
// including file:// URLs, are always fetched through git.
func localDirectory(locator string) (string, bool) {
	if strings.Contains(locator, "://") {
		return "", false
	}
	info, err := os.Stat(locator)
	if err != nil || !info.IsDir() {
		return "", false
	}
	abs, err := filepath.Abs(locator)
	if err != nil {
		return "", false
	}
	return abs, true
}
