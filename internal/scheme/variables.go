package scheme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/base16-builder/internal/config"
	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

// Identity keys present in every variable map.
const (
	KeyAuthor          = "scheme-author"
	KeyName            = "scheme-name"
	KeySlug            = "scheme-slug"
	KeySlugUnderscored = "scheme-slug-underscored"
)

var baseSuffixes = []string{
	"-hex", "-hex-r", "-hex-g", "-hex-b", "-hex-bgr",
	"-rgb-r", "-rgb-g", "-rgb-b",
	"-dec-r", "-dec-g", "-dec-b",
}

// VariableCount is the number of keys Derive emits.
var VariableCount = 4 + BaseCount*len(baseSuffixes)

var orderedKeys = func() []string {
	keys := []string{KeyAuthor, KeyName, KeySlug, KeySlugUnderscored}
	for i := 0; i < BaseCount; i++ {
		for _, suffix := range baseSuffixes {
			keys = append(keys, BaseName(i)+suffix)
		}
	}
	return keys
}()

// Variables maps template variable names to their string values.
type Variables map[string]string

// Keys returns the keys of v in derivation order.
func (v Variables) Keys() []string {
	keys := make([]string, 0, len(v))
	for _, key := range orderedKeys {
		if _, ok := v[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// Clone returns an independent copy of v.
func (v Variables) Clone() Variables {
	out := make(Variables, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// BaseName formats a palette index as base00..base0F.
func BaseName(index int) string {
	return fmt.Sprintf("base%02X", index)
}

// Derive computes the full variable map for a scheme document.
func Derive(slug string, doc Document) (Variables, error) {
	if err := config.GetValidator().Struct(doc); err != nil {
		base := config.FirstInvalidField(err)
		if !strings.HasPrefix(base, "base") {
			return nil, b16errors.NewMalformedSchemeError(slug, "", err)
		}
		return nil, b16errors.NewMalformedSchemeError(slug, base, fmt.Errorf("expected 6 hex digits, got %q", baseValue(doc, base)))
	}

	vars := make(Variables, VariableCount)
	vars[KeyAuthor] = doc.Author
	vars[KeyName] = doc.Scheme
	vars[KeySlug] = slug
	vars[KeySlugUnderscored] = strings.ReplaceAll(slug, "-", "_")

	for i, hex := range doc.Bases() {
		base := BaseName(i)
		r, g, b := hex[0:2], hex[2:4], hex[4:6]

		vars[base+"-hex"] = hex
		vars[base+"-hex-r"] = r
		vars[base+"-hex-g"] = g
		vars[base+"-hex-b"] = b
		vars[base+"-hex-bgr"] = b + g + r

		for channel, pair := range map[string]string{"r": r, "g": g, "b": b} {
			value, err := strconv.ParseUint(pair, 16, 8)
			if err != nil {
				return nil, b16errors.NewMalformedSchemeError(slug, base, err)
			}
			vars[base+"-rgb-"+channel] = strconv.FormatUint(value, 10)
			vars[base+"-dec-"+channel] = formatChannel(value)
		}
	}

	return vars, nil
}

// formatChannel renders value/255 as the shortest decimal that round-trips to
// the same float64, keeping a fractional part so 0 and 255 read "0.0" and "1.0".
func formatChannel(value uint64) string {
	s := strconv.FormatFloat(float64(value)/255, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func baseValue(doc Document, base string) string {
	for i, hex := range doc.Bases() {
		if BaseName(i) == base {
			return hex
		}
	}
	return ""
}
