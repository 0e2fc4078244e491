// Package output writes rendered artifacts to disk and encodes build results.
package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/alexisbeaulieu97/base16-builder/internal/build"
	"github.com/alexisbeaulieu97/base16-builder/internal/logging"
	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
	"github.com/alexisbeaulieu97/base16-builder/pkg/diff"
)

// ChangeStatus classifies what writing an artifact did, or would do.
type ChangeStatus string

const (
	StatusCreated   ChangeStatus = "created"
	StatusUpdated   ChangeStatus = "updated"
	StatusUnchanged ChangeStatus = "unchanged"
)

// Change describes one artifact write.
type Change struct {
	Path   string
	Status ChangeStatus
	Stat   diff.Stat
	// Diff is only filled in check mode.
	Diff string
}

// Writer lays artifacts out as <root>/<family>/<subdir>/<file>.
type Writer struct {
	fs     afero.Fs
	root   string
	check  bool
	logger ports.Logger
}

// NewWriter creates a Writer rooted at root. In check mode nothing is
// written and every change carries a diff against the file on disk.
func NewWriter(fs afero.Fs, root string, check bool, logger ports.Logger) *Writer {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Writer{
		fs:     fs,
		root:   root,
		check:  check,
		logger: logger.With("component", "output"),
	}
}

// Path returns where an artifact is written. Paths resolving outside root
// are rejected.
func (w *Writer) Path(a build.Artifact) (string, error) {
	target := filepath.Join(w.root, a.Family, a.Subdir, a.File)
	rel, err := filepath.Rel(w.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("artifact %s/%s/%s escapes output directory %s", a.Family, a.Subdir, a.File, w.root)
	}
	return target, nil
}

// Write stores every artifact, skipping files whose content already matches.
func (w *Writer) Write(ctx context.Context, artifacts []build.Artifact) ([]Change, error) {
	changes := make([]Change, 0, len(artifacts))
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return changes, err
		}
		change, err := w.write(a)
		if err != nil {
			return changes, err
		}
		if change.Status != StatusUnchanged {
			w.logger.Debug(ctx, "artifact "+string(change.Status), "path", change.Path, "diff", change.Stat.String())
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func (w *Writer) write(a build.Artifact) (Change, error) {
	target, err := w.Path(a)
	if err != nil {
		return Change{}, err
	}
	rendered := []byte(a.Text)

	existing, err := afero.ReadFile(w.fs, target)
	switch {
	case err == nil && bytes.Equal(existing, rendered):
		return Change{Path: target, Status: StatusUnchanged}, nil
	case err != nil && !os.IsNotExist(err):
		return Change{}, fmt.Errorf("read %s: %w", target, err)
	}

	status := StatusUpdated
	label := target
	if err != nil {
		status = StatusCreated
		label = os.DevNull
	}

	text, stat := diff.Unified(existing, rendered, label, target)
	change := Change{Path: target, Status: status, Stat: stat}
	if w.check {
		change.Diff = text
		return change, nil
	}

	if err := w.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return Change{}, fmt.Errorf("failed to create destination directory: %w", err)
	}
	if err := afero.WriteFile(w.fs, target, rendered, 0o644); err != nil {
		return Change{}, fmt.Errorf("failed to write artifact %s: %w", target, err)
	}
	return change, nil
}

// Summary counts changes by status.
func Summary(changes []Change) map[ChangeStatus]int {
	counts := map[ChangeStatus]int{}
	for _, c := range changes {
		counts[c.Status]++
	}
	return counts
}
