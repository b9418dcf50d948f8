// Package url provides URL helpers for the in-app browser.
package url

import "strings"

var knownSchemes = []string{"http://", "https://", "itch://", "file://", "about:"}

func hasKnownScheme(input string) bool {
	for _, scheme := range knownSchemes {
		if strings.HasPrefix(input, scheme) {
			return true
		}
	}
	return false
}

// Normalize adds https:// prefix if missing for URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || hasKnownScheme(input) {
		return input
	}

	if LooksLikeURL(input) {
		return "https://" + input
	}
	return input
}

// LooksLikeURL checks if the input appears to be a URL rather than free text.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if hasKnownScheme(input) {
		return true
	}
	// Contains a dot and no spaces = likely a URL
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

// IsBlank reports whether the URL is the empty placeholder page.
func IsBlank(rawURL string) bool {
	return rawURL == "" || rawURL == "about:blank"
}
