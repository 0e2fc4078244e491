// Package scheme loads base16 scheme documents and derives the template
// variables for them.
package scheme

import (
	"path"
	"strings"
	"sync"

	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

// Scheme is one palette from a scheme family. Its variable map is derived on
// first use and kept for the lifetime of the value.
type Scheme struct {
	Family string
	Path   string

	slug string
	doc  Document

	once sync.Once
	vars Variables
	err  error
}

// New builds a Scheme from an already decoded document.
func New(family, filePath string, doc Document) *Scheme {
	return &Scheme{
		Family: family,
		Path:   filePath,
		slug:   SlugFromPath(filePath),
		doc:    doc,
	}
}

// Parse decodes a scheme document read from filePath.
func Parse(family, filePath string, data []byte) (*Scheme, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, b16errors.NewMalformedSchemeError(SlugFromPath(filePath), "", err)
	}
	return New(family, filePath, doc), nil
}

// SlugFromPath derives the scheme slug from its file name: the base name
// without extension, lower cased. Spaces are kept as they are.
func SlugFromPath(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}

// Slug returns the scheme identifier.
func (s *Scheme) Slug() string { return s.slug }

// DisplayName returns the human readable scheme name.
func (s *Scheme) DisplayName() string { return s.doc.Scheme }

// Author returns the scheme author.
func (s *Scheme) Author() string { return s.doc.Author }

// BaseColors returns the sixteen RRGGBB base colours as written in the document.
func (s *Scheme) BaseColors() [BaseCount]string { return s.doc.Bases() }

// Variables returns the derived variable map. The result is computed once;
// callers receive a copy they are free to modify.
func (s *Scheme) Variables() (Variables, error) {
	s.once.Do(func() {
		s.vars, s.err = Derive(s.slug, s.doc)
	})
	if s.err != nil {
		return nil, s.err
	}
	return s.vars.Clone(), nil
}
