package catalog

import (
	"strings"

	"github.com/samber/lo"
)

// Filters narrows a build to a subset of the catalogs. Zero values select
// everything.
type Filters struct {
	Scheme       string
	SchemeFamily string
	Templates    []string
}

// MatchesSchemeFamily reports whether a scheme family repository may contain
// a requested scheme. The family name must appear inside the family filter,
// which falls back to the scheme filter, so family "tomorrow" is selected by
// scheme "tomorrow-night".
func (f Filters) MatchesSchemeFamily(family string) bool {
	effective := f.SchemeFamily
	if effective == "" {
		effective = f.Scheme
	}
	if effective == "" {
		return true
	}
	return strings.Contains(effective, family)
}

// MatchesScheme reports whether a scheme slug is selected. Unlike family
// matching the filter must appear inside the slug, so "tomorrow" selects
// both "tomorrow" and "tomorrow-night".
func (f Filters) MatchesScheme(slug string) bool {
	if f.Scheme == "" {
		return true
	}
	return strings.Contains(slug, f.Scheme)
}

// MatchesTemplateFamily reports whether a template family is selected. Only
// exact names match.
func (f Filters) MatchesTemplateFamily(family string) bool {
	if len(f.Templates) == 0 {
		return true
	}
	return lo.Contains(f.Templates, family)
}

// HasSchemeFilter reports whether the caller asked for specific schemes.
func (f Filters) HasSchemeFilter() bool {
	return f.Scheme != "" || f.SchemeFamily != ""
}

// HasTemplateFilter reports whether the caller asked for specific templates.
func (f Filters) HasTemplateFilter() bool {
	return len(f.Templates) > 0
}
