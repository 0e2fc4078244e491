package config

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	base16HexPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)
	sshGitPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+:[a-zA-Z0-9._/~-]+$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report yaml/mapstructure names so errors read like the documents they came from.
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"yaml", "mapstructure"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})

		_ = v.RegisterValidation("base16hex", func(fl validator.FieldLevel) bool {
			return base16HexPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("source_locator", func(fl validator.FieldLevel) bool {
			return isSourceLocator(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

func isSourceLocator(locator string) bool {
	if strings.TrimSpace(locator) == "" || strings.Contains(locator, "\x00") {
		return false
	}

	if parsedURL, err := url.Parse(locator); err == nil {
		switch strings.ToLower(parsedURL.Scheme) {
		case "http", "https", "ssh", "git":
			return parsedURL.Host != ""
		case "file":
			return parsedURL.Path != ""
		}
	}

	if sshGitPattern.MatchString(locator) {
		return true
	}

	// Anything else is treated as a local directory path.
	return !strings.ContainsAny(locator, "\n\r")
}
