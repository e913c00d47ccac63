package slides2pdf

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxTitleLength caps the sanitized title so the PDF name stays within
// common filesystem limits once ".pdf" is appended.
const MaxTitleLength = 200

// SanitizeTitle turns a page title into a file name stem:
// whitespace and slashes become '_', colons are removed, and characters
// that are invalid in Windows file names become '_'.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	for _, r := range strings.TrimSpace(title) {
		switch {
		case r == ':':
			// dropped
		case unicode.IsSpace(r), r == '/', r == '\\':
			b.WriteRune('_')
		case strings.ContainsRune(`*?"<>|`, r), unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	name := b.String()
	if strings.Trim(name, "._") == "" {
		return ""
	}
	return truncateRunes(name, MaxTitleLength)
}

// OutputName returns the sanitized title, or a name derived from the URL
// host and path when the title sanitizes to nothing.
func OutputName(title, rawURL string) string {
	if name := SanitizeTitle(title); name != "" {
		return name
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "presentation"
	}
	if name := SanitizeTitle(u.Host + strings.TrimSuffix(u.Path, "/")); name != "" {
		return name
	}
	return "presentation"
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
