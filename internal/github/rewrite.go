package github

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	rawContentHost = "https://raw.githubusercontent.com"
	blobHost       = "https://github.com"
)

// Matches the src/href attribute of an <img>/<a> start tag. Group 1 is
// everything up to the opening quote, group 2 a double-quoted value, group 3
// a single-quoted value. Leading whitespace keeps data-src and friends out.
var (
	imgSrcPattern   = regexp.MustCompile(`(?i)(<img\b[^>]*?\ssrc\s*=\s*)(?:"([^"]*)"|'([^']*)')`)
	anchorPattern   = regexp.MustCompile(`(?i)(<a\b[^>]*?\shref\s*=\s*)(?:"([^"]*)"|'([^']*)')`)
	commonSkips     = []string{"http://", "https://", "//", "#"}
	imgOnlySkips    = []string{"data:"}
	anchorOnlySkips = []string{"mailto:"}
)

// RewriteRelativeURLs points relative image sources at raw.githubusercontent.com
// and relative links at the repository's blob view for branch. Absolute,
// protocol-relative, fragment, data: (images) and mailto: (links) values are
// left alone, as is everything outside those attribute values.
func RewriteRelativeURLs(html, owner, repo, branch string) string {
	html = rewriteAttr(html, imgSrcPattern, imgOnlySkips, func(p string) string {
		return fmt.Sprintf("%s/%s/%s/%s/%s", rawContentHost, owner, repo, branch, p)
	})
	html = rewriteAttr(html, anchorPattern, anchorOnlySkips, func(p string) string {
		return fmt.Sprintf("%s/%s/%s/blob/%s/%s", blobHost, owner, repo, branch, p)
	})
	return html
}

func rewriteAttr(html string, pattern *regexp.Regexp, extraSkips []string, target func(string) string) string {
	return pattern.ReplaceAllStringFunc(html, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		prefix := groups[1]
		quote, value := `"`, groups[2]
		if !strings.HasPrefix(match[len(prefix):], `"`) {
			quote, value = `'`, groups[3]
		}

		if value == "" || hasSkipPrefix(value, extraSkips) {
			return match
		}
		return prefix + quote + target(normalizePath(value)) + quote
	})
}

func hasSkipPrefix(value string, extra []string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, p := range commonSkips {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, p := range extra {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// normalizePath converts backslashes and strips leading "." and "/" runs,
// so "./docs/a.png", "../a.png" and "/a.png" all become repo-root relative.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.TrimLeft(p, "./")
}
