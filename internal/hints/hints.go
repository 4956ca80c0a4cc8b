// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"net/http"
	"strings"
)

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-md2notion") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForMissingToken returns the hint shown when no API token is configured.
func ForMissingToken() string {
	return format("export NOTION_TOKEN with an internal integration secret")
}

// ForParent returns the hint shown when no parent page could be resolved.
func ForParent() string {
	return format("pass --parent with a page URL or id, or set notion.parent in the config")
}

// ForAPIStatus returns a hint for an API error status, or "" when there is
// nothing actionable to add.
func ForAPIStatus(status int) string {
	var hints []string

	switch status {
	case http.StatusUnauthorized:
		hints = append(hints, "check NOTION_TOKEN is valid")
	case http.StatusForbidden, http.StatusNotFound:
		hints = append(hints, "share the parent page with the integration")
	case http.StatusTooManyRequests:
		hints = append(hints, "rate limited", "lower --workers or raise notion.retryWait")
	case http.StatusBadRequest:
		hints = append(hints, "run convert and inspect the JSON for the rejected block")
	}

	return formatHints(hints)
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
