package utils

import (
	"net/url"
	"path"
	"strings"
)

// FileNameFromURL extracts the final path segment of a URL for display.
// Example: https://example.com/a/b/file.zip -> file.zip
// Directory URLs (trailing slash) and bare hosts yield the host name.
func FileNameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	p := strings.TrimSuffix(parsed.Path, "/")
	if p == "" {
		return parsed.Host
	}
	return path.Base(p)
}
