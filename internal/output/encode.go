package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/base16-builder/internal/build"
)

// Format selects the result encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" and "json" in any case.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want yaml or json)", value)
	}
}

// document is the encoded shape of a build result.
type document struct {
	Changed bool        `yaml:"changed" json:"changed"`
	Skipped []string    `yaml:"skipped,omitempty" json:"skipped,omitempty"`
	Schemes *build.Tree `yaml:"schemes" json:"schemes"`
}

// Encode writes result as {changed, schemes} in the given format.
func Encode(w io.Writer, format Format, result *build.Result) error {
	doc := document{
		Changed: result.Changed,
		Skipped: lo.Map(result.Skipped, func(err error, _ int) string { return err.Error() }),
		Schemes: result.Tree,
	}
	if doc.Schemes == nil {
		doc.Schemes = build.NewTree()
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
