// Package fs loads documentation sources from the local filesystem and
// exports indexed libraries back to it.
package fs

import (
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// DocExtensions are the file extensions collected when walking directories.
var DocExtensions = []string{".md", ".mdx", ".rst", ".txt", ".html", ".htm"}

// IsDocFile reports whether name has one of the DocExtensions.
func IsDocFile(name string) bool {
	return slices.Contains(DocExtensions, strings.ToLower(filepath.Ext(name)))
}

// StripPrefix returns p, in slash form, with prefix and any leading "./" or
// "/" removed. A prefix that does not match leaves p unchanged.
// Example: ("repo/docs/guide.md", "repo/docs") → "guide.md"
func StripPrefix(p, prefix string) string {
	p = filepath.ToSlash(p)
	if prefix != "" {
		prefix = strings.TrimSuffix(filepath.ToSlash(prefix), "/") + "/"
		p = strings.TrimPrefix(p, prefix)
	}
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return strings.TrimLeft(p, "/")
}

// PathToURL builds the URL of the page rendered from the document at p.
// The documentation extension is dropped and index pages map to their
// directory.
// Example: ("https://react.dev/", "learn/index.md") → "https://react.dev/learn/"
func PathToURL(baseURL, p string) string {
	if baseURL == "" {
		return ""
	}

	p = strings.TrimLeft(filepath.ToSlash(p), "/")
	if IsDocFile(p) {
		p = strings.TrimSuffix(p, path.Ext(p))
	}
	if p == "index" {
		p = ""
	} else if strings.HasSuffix(p, "/index") {
		p = strings.TrimSuffix(p, "index")
	}

	return strings.TrimSuffix(baseURL, "/") + "/" + p
}
