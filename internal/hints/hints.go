// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/lastwish/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/lastwish") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output file creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForBundle returns hints for input bundle decoding errors.
func ForBundle() string {
	return formatHints([]string{
		"bundles are YAML or JSON",
		"top-level keys: owner, executor, jurisdiction, beneficiaries, allocations, assets, walletProviders, resolvedNames, instructions, instructionsFormat",
	})
}

// ForAssetPath returns hints for invalid custom legal text directories.
func ForAssetPath() string {
	return format("the directory must contain legal/<name>.tmpl files (disclaimer, notarization, instructions)")
}

// ForDateFormat returns hints for invalid date formats.
func ForDateFormat() string {
	return format("use a preset (iso, european, us, long) or tokens like \"MMMM D, YYYY\"")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
