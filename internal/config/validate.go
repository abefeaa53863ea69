package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Valid enum values for configuration fields.
var (
	ValidSortKeys       = []string{"mtime", "author", "none"}
	ValidErrorModes     = []string{"hide", "short", "full"}
	ValidActivityScopes = []string{"tracked", "all"}
	ValidThemeNames     = []string{"default", "dracula", "nord", "gruvbox", "catppuccin", "none"}
	ValidThemeModes     = []string{"auto", "light", "dark"}
)

// MinWorkers is the lowest accepted worker count; 0 means sequential and
// -1 means pick automatically.
const MinWorkers = -1

// Validate checks every field and returns all problems at once.
func (c Config) Validate() error {
	var errs *multierror.Error

	if c.Workers != nil && *c.Workers < MinWorkers {
		errs = multierror.Append(errs, fmt.Errorf("invalid workers %d: must be -1 (auto), 0 (sequential) or positive", *c.Workers))
	}
	for _, check := range []struct {
		value, field string
		allowed      []string
	}{
		{c.Sort, "sort", ValidSortKeys},
		{c.Errors, "errors", ValidErrorModes},
		{c.ActivityScope, "activity_scope", ValidActivityScopes},
		{c.Theme.Name, "theme.name", ValidThemeNames},
		{c.Theme.Mode, "theme.mode", ValidThemeModes},
	} {
		if err := validateEnum(check.value, check.field, check.allowed); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	for i, root := range c.Roots {
		if strings.TrimSpace(root) == "" {
			errs = multierror.Append(errs, fmt.Errorf("roots[%d] is empty", i))
		}
	}

	if errs == nil {
		return nil
	}
	errs.ErrorFormat = formatErrors
	return errs
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, strings.ToLower(value)) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// formatErrors renders one problem per line.
func formatErrors(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  - " + err.Error()
	}
	return fmt.Sprintf("%d problems:\n%s", len(errs), strings.Join(lines, "\n"))
}
