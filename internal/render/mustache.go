// Package render fills mustache templates with scheme variables.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cbroglie/mustache"
	"github.com/go-git/go-billy/v5"

	"github.com/alexisbeaulieu97/base16-builder/internal/ports"
)

// PartialExtension is appended to partial names when resolving them.
const PartialExtension = ".mustache"

// MustacheRenderer renders templates with HTML escaping of double-brace tags,
// matching the behaviour template authors expect from other base16 builders.
type MustacheRenderer struct {
	// Raw disables HTML escaping of double-brace variables.
	Raw bool
}

// NewMustacheRenderer returns a renderer with escaping enabled.
func NewMustacheRenderer() *MustacheRenderer {
	return &MustacheRenderer{}
}

var _ ports.Renderer = (*MustacheRenderer)(nil)

// Render implements ports.Renderer. Unknown variables render as empty
// strings and missing partials render as nothing.
func (r *MustacheRenderer) Render(text string, partials billy.Filesystem, variables map[string]string) (string, error) {
	var provider mustache.PartialProvider = noPartials{}
	if partials != nil {
		provider = &partialProvider{fs: partials}
	}

	tmpl, err := mustache.ParseStringPartialsRaw(text, provider, r.Raw)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	out, err := tmpl.Render(variables)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// partialProvider resolves {{> name}} tags against a family's templates
// directory.
type partialProvider struct {
	fs billy.Filesystem
}

func (p *partialProvider) Get(name string) (string, error) {
	f, err := p.fs.Open(name + PartialExtension)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("open partial %q: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read partial %q: %w", name, err)
	}
	return string(data), nil
}

type noPartials struct{}

func (noPartials) Get(string) (string, error) { return "", nil }
