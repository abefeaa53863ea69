// Package config handles loading and validation of gitoverit configuration.
//
// Configuration is read from ~/.config/gitoverit/config.toml, or from the
// file named by the GITOVERIT_CONFIG environment variable. A missing file
// is not an error.
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags
//   - Config file settings
//   - Default values
//
// # Example
//
//	roots = ["~/src", "~/work"]
//	workers = 4          # -1 = auto, 0 = sequential
//	fetch = false
//	sort = "mtime"       # mtime, author or none
//	reverse = false
//	dirty_only = true
//	columns = "-ident,mtime"
//	errors = "short"     # hide, short or full
//	activity_scope = "tracked"
//
//	[theme]
//	name = "nord"
//	mode = "auto"
//
// # Validation
//
// [Config.Validate] reports every invalid value at once. Unknown keys are
// rejected so typos do not silently fall back to defaults.
package config
