// Package github lists a user's public repositories and renders README content
// that is safe to embed on another site.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/jonathan/dev-portfolio/internal/config"
	"github.com/jonathan/dev-portfolio/internal/fetch"
)

const (
	// NoReadmeHTML is returned when the repository has no README.
	NoReadmeHTML = "<em>No README found for this repository.</em>"
	// EmptyReadmeHTML is returned when the README renders to nothing.
	EmptyReadmeHTML = "<em>README is empty.</em>"

	// JSONMediaType is the default Accept header for REST calls.
	JSONMediaType = "application/vnd.github+json"
	// HTMLMediaType asks the API for server-rendered README HTML.
	HTMLMediaType = "application/vnd.github.v3.html"

	defaultPerPage = 100
	fallbackBranch = "HEAD"
)

// Options configures a Catalog.
type Options struct {
	ProfileURL  string
	PerPage     int
	RecentCount int
	Token       string
}

// Catalog reads repository data for the account named by Options.ProfileURL.
// It keeps no state between calls and is safe for concurrent use.
type Catalog struct {
	client *fetch.Client
	opts   Options
}

// NewClientOptions returns fetch options for the GitHub REST API rooted at baseURL.
func NewClientOptions(baseURL string) *fetch.Options {
	if baseURL == "" {
		baseURL = config.DefaultGitHubAPIBaseURL
	}
	return &fetch.Options{
		Service:   "github",
		BaseURL:   baseURL,
		Timeout:   fetch.DefaultTimeout,
		UserAgent: fetch.DefaultUserAgent,
		Headers:   map[string]string{"Accept": JSONMediaType},
	}
}

// NewCatalog creates a catalog that talks to GitHub through client.
func NewCatalog(client *fetch.Client, opts Options) *Catalog {
	if opts.PerPage <= 0 {
		opts.PerPage = defaultPerPage
	}
	return &Catalog{client: client, opts: opts}
}

// ListRepositories returns the account's non-archived repositories, newest
// first. Only the first page is fetched.
func (c *Catalog) ListRepositories(ctx context.Context) ([]Repository, error) {
	owner, err := c.owner()
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("users/%s/repos?sort=created&direction=desc&per_page=%d", url.PathEscape(owner), c.opts.PerPage)

	body, err := c.client.Get(ctx, endpoint, c.authHeaders())
	if err != nil {
		return nil, err
	}

	var payload []repoDTO
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &DecodeError{Endpoint: endpoint, Cause: err}
		}
	}

	repos := make([]Repository, 0, len(payload))
	for _, dto := range payload {
		repo := dto.toRepository()
		if repo.Archived {
			continue
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// ListRecentRepositories returns the first RecentCount repositories, or all of
// them when RecentCount is zero.
func (c *Catalog) ListRecentRepositories(ctx context.Context) ([]Repository, error) {
	repos, err := c.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	if n := c.opts.RecentCount; n > 0 && len(repos) > n {
		repos = repos[:n]
	}
	return repos, nil
}

// ReadmeHTML returns the rendered README of repoName with relative image and
// link targets rewritten against defaultBranch. A missing README yields
// NoReadmeHTML rather than an error.
func (c *Catalog) ReadmeHTML(ctx context.Context, repoName, defaultBranch string) (string, error) {
	owner, err := c.owner()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(repoName) == "" {
		return "", fmt.Errorf("repository name is required")
	}
	if !validRepoName(repoName) {
		return "", fmt.Errorf("%w %q", ErrInvalidRepoName, repoName)
	}
	branch := defaultBranch
	if branch == "" {
		branch = fallbackBranch
	}

	endpoint := fmt.Sprintf("repos/%s/%s/readme", url.PathEscape(owner), url.PathEscape(repoName))
	headers := c.authHeaders()
	headers["Accept"] = HTMLMediaType

	body, err := c.client.Get(ctx, endpoint, headers)
	if err != nil {
		if fetch.StatusCode(err) == http.StatusNotFound {
			log.Printf("[github] no README for %s/%s", owner, repoName)
			return NoReadmeHTML, nil
		}
		return "", err
	}

	html := RewriteRelativeURLs(string(body), owner, repoName, branch)
	if strings.TrimSpace(html) == "" {
		return EmptyReadmeHTML, nil
	}
	return html, nil
}

// Owner returns the account identifier derived from the profile URL.
func (c *Catalog) Owner() (string, error) {
	return c.owner()
}

func (c *Catalog) owner() (string, error) {
	owner := ExtractUsername(c.opts.ProfileURL)
	if owner == "" {
		return "", &config.Error{
			Field:   "github.profile_url",
			Message: "missing or invalid GitHub profile URL",
		}
	}
	return owner, nil
}

func (c *Catalog) authHeaders() map[string]string {
	headers := make(map[string]string, 2)
	if token := strings.TrimSpace(c.opts.Token); token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}

// ExtractUsername derives the account name from a profile URL: the first
// non-empty path segment of an absolute URL, or, when the value does not
// parse as one, the last non-empty slash-delimited token of the raw string.
func ExtractUsername(profileURL string) string {
	raw := strings.TrimSpace(profileURL)
	if raw == "" {
		return ""
	}

	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		for _, seg := range strings.Split(u.Path, "/") {
			if seg != "" {
				return seg
			}
		}
		return ""
	}

	parts := strings.Split(strings.Trim(raw, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

var repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// validRepoName accepts names GitHub allows. "." and ".." would be collapsed
// into another API path when the endpoint is resolved.
func validRepoName(name string) bool {
	return name != "." && name != ".." && repoNamePattern.MatchString(name)
}
