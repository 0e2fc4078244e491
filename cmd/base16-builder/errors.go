package main

import (
	"errors"
	"fmt"

	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// suggestionFor picks a hint matching the failure returned by a build.
func suggestionFor(err error) string {
	var (
		noSchemes   *b16errors.NoMatchingSchemesError
		noTemplates *b16errors.NoMatchingTemplatesError
		fetchErr    *b16errors.SourceFetchError
		renderErr   *b16errors.RenderError
		schemeErr   *b16errors.MalformedSchemeError
		docErr      *b16errors.MalformedCatalogDocumentError
	)

	switch {
	case errors.As(err, &noSchemes):
		return "Run 'base16-builder list' to see the available schemes."
	case errors.As(err, &noTemplates):
		return "Run 'base16-builder list --templates' to see the available template families."
	case errors.As(err, &fetchErr):
		return "Check the source locator and your network connection, then retry with --update."
	case errors.As(err, &renderErr):
		return "Fix the template syntax or exclude the family with --template."
	case errors.As(err, &schemeErr), errors.As(err, &docErr):
		return "Drop --strict to skip malformed entries."
	default:
		return "Re-run with --verbose for more details."
	}
}
