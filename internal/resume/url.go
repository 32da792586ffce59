package resume

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// DocxExtension marks a path that already points at a Word document.
	DocxExtension = ".docx"
	// exportQuery is the Google Docs export suffix for Word output.
	exportQuery = "/export?format=docx"
)

var googleDocIDPattern = regexp.MustCompile(`(?i)docs\.google\.com/document/d/([^/?#]+)`)

// BuildDownloadURL turns a configured resume reference into a URL that
// serves the .docx bytes. The first matching rule wins:
//
//  1. a path ending in .docx is returned as is;
//  2. a path that already contains /export?format=docx is returned as is;
//  3. a Google Docs URL is rewritten to its export URL;
//  4. anything else is assumed to be directly downloadable.
func BuildDownloadURL(path string) string {
	if strings.TrimSpace(path) == "" {
		return path
	}

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, DocxExtension) {
		return path
	}
	if strings.Contains(lower, exportQuery) {
		return path
	}
	if id := DocumentID(path); id != "" {
		return ExportURL(id)
	}
	return path
}

// DocumentID extracts the Google Docs document ID from url, or "".
func DocumentID(url string) string {
	m := googleDocIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExportURL is the public .docx export URL for a Google Docs document.
func ExportURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s%s", id, exportQuery)
}
