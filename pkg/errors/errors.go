package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures option validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SourceFetchError reports a provider failure. It aborts the whole build.
type SourceFetchError struct {
	Locator     string
	Destination string
	Err         error
}

// NewSourceFetchError constructs a SourceFetchError.
func NewSourceFetchError(locator, destination string, err error) error {
	return &SourceFetchError{Locator: locator, Destination: destination, Err: err}
}

func (e *SourceFetchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Destination != "" {
		return fmt.Sprintf("fetch error: %s -> %s: %v", e.Locator, e.Destination, e.Err)
	}
	return fmt.Sprintf("fetch error: %s: %v", e.Locator, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SourceFetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MalformedCatalogDocumentError marks an unreadable or malformed family
// document. Only the offending family is skipped.
type MalformedCatalogDocumentError struct {
	Family string
	Path   string
	Err    error
}

// NewMalformedCatalogDocumentError constructs a MalformedCatalogDocumentError.
func NewMalformedCatalogDocumentError(family, path string, err error) error {
	return &MalformedCatalogDocumentError{Family: family, Path: path, Err: err}
}

func (e *MalformedCatalogDocumentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("malformed catalog document [%s] %s: %v", e.Family, e.Path, e.Err)
	}
	return fmt.Sprintf("malformed catalog document [%s]: %v", e.Family, e.Err)
}

// Unwrap exposes the underlying error.
func (e *MalformedCatalogDocumentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MalformedSchemeError identifies a scheme whose document cannot be derived.
// Base is empty when the failure is not tied to a single base colour.
type MalformedSchemeError struct {
	Slug string
	Base string
	Err  error
}

// NewMalformedSchemeError constructs a MalformedSchemeError.
func NewMalformedSchemeError(slug, base string, err error) error {
	return &MalformedSchemeError{Slug: slug, Base: base, Err: err}
}

func (e *MalformedSchemeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Base != "" {
		return fmt.Sprintf("malformed scheme %s: %s: %v", e.Slug, e.Base, e.Err)
	}
	return fmt.Sprintf("malformed scheme %s: %v", e.Slug, e.Err)
}

// Unwrap exposes the underlying error.
func (e *MalformedSchemeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NoMatchingSchemesError is returned when a scheme filter selected nothing.
type NoMatchingSchemesError struct {
	Scheme       string
	SchemeFamily string
}

// NewNoMatchingSchemesError constructs a NoMatchingSchemesError.
func NewNoMatchingSchemesError(scheme, family string) error {
	return &NoMatchingSchemesError{Scheme: scheme, SchemeFamily: family}
}

func (e *NoMatchingSchemesError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("Failed to build any schemes. Scheme name %q was passed, but didn't match any known schemes", e.Scheme)
	if e.SchemeFamily != "" {
		msg = fmt.Sprintf("%s (scheme family %q)", msg, e.SchemeFamily)
	}
	return msg
}

// NoMatchingTemplatesError is returned when a template filter selected nothing.
type NoMatchingTemplatesError struct {
	Templates []string
}

// NewNoMatchingTemplatesError constructs a NoMatchingTemplatesError.
func NewNoMatchingTemplatesError(templates []string) error {
	return &NoMatchingTemplatesError{Templates: append([]string(nil), templates...)}
}

func (e *NoMatchingTemplatesError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("Failed to build any templates. Template names %q were passed, but didn't match any known templates", e.Templates)
}

// RenderError represents a template that failed to render for a scheme.
type RenderError struct {
	Family   string
	Template string
	Slug     string
	Err      error
}

// NewRenderError constructs a RenderError.
func NewRenderError(family, template, slug string, err error) error {
	return &RenderError{Family: family, Template: template, Slug: slug, Err: err}
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("render error [%s/%s] for scheme %s: %v", e.Family, e.Template, e.Slug, e.Err)
}

// Unwrap exposes the underlying error.
func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
