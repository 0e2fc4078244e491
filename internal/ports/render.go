package ports

import "github.com/go-git/go-billy/v5"

// Renderer substitutes scheme variables into a template body. Partials, when
// non-nil, is the directory partial templates are resolved from.
type Renderer interface {
	Render(text string, partials billy.Filesystem, variables map[string]string) (string, error)
}
