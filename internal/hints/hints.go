// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-slides2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a common CI environment variable is set.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForBrowserConnect returns hints for browser startup errors.
// sandbox reports whether the Chrome sandbox was requested with --sandbox.
func ForBrowserConnect(sandbox bool) string {
	var hints []string

	if sandbox && (inCI() || IsInContainer()) {
		hints = append(hints, "drop --sandbox in Docker/CI")
	}

	if os.Getenv("SLIDES2PDF_BROWSER_BIN") == "" && os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set SLIDES2PDF_BROWSER_BIN or use --auto-download")
	}

	hints = append(hints, "run 'slides2pdf doctor'")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the per-presentation timeout.
func ForTimeout() string {
	return format("for long decks, raise --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-slides2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-slides2pdf") {
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

// ForElementNotFound returns a hint naming the class that was looked up.
func ForElementNotFound(class string) string {
	if class == "" {
		return ""
	}
	return format(fmt.Sprintf("no element with class %q; decks not hosted on slides.com may need --fullscreen-class or --content-class", class))
}

// ForSlideLimit returns a hint for decks that hit the slide cap.
func ForSlideLimit() string {
	return format("raise --max-slides if the deck really is that long")
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
