package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

func TestCommandErrorFormatsSuggestion(t *testing.T) {
	cause := errors.New("boom")
	err := newCommandError("build", "rendering schemes", cause, "Try again.")

	require.Equal(t, "Failed to build: rendering schemes\n\nError: boom\n\nSuggestion: Try again.", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestSuggestionForMatchesErrorKind(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"no schemes":   {b16errors.NewNoMatchingSchemesError("x", ""), "base16-builder list'"},
		"no templates": {b16errors.NewNoMatchingTemplatesError([]string{"x"}), "list --templates"},
		"fetch":        {b16errors.NewSourceFetchError("https://example.com", "/tmp/x", errors.New("down")), "network"},
		"render":       {b16errors.NewRenderError("i3", "colors", "ocean", errors.New("bad")), "template syntax"},
		"strict":       {b16errors.NewMalformedSchemeError("ocean", "base00", errors.New("bad")), "--strict"},
		"other":        {errors.New("other"), "--verbose"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Contains(t, suggestionFor(tc.err), tc.want)
		})
	}
}
