// Package fetch provides the outbound HTTP client shared by the GitHub and
// resume integrations, together with error classification for upstream calls.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for outbound requests.
const DefaultUserAgent = "DevPortfolio/1.0 (+https://localhost)"

// UnreadableBody replaces a response body that could not be read while
// building an error message.
const UnreadableBody = "<unreadable body>"

// maxErrorBody caps how much of a failed response is copied into an error.
const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	// Service names the upstream in error messages ("github", "parser", ...).
	Service   string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// Transport overrides the underlying round tripper, mostly for tests.
	Transport http.RoundTripper
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client issues requests against one upstream service. It is safe for
// concurrent use.
type Client struct {
	service string
	base    *url.URL
	http    *http.Client
	agent   string
	headers map[string]string
}

// NewClient creates a client. BaseURL is optional; when set, relative
// references passed to NewRequest are resolved against it.
func NewClient(opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	c := &Client{
		service: opts.Service,
		http:    &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		agent:   opts.UserAgent,
		headers: opts.Headers,
	}
	if c.service == "" {
		c.service = "upstream"
	}
	if c.agent == "" {
		c.agent = DefaultUserAgent
	}
	if c.http.Timeout == 0 {
		c.http.Timeout = DefaultTimeout
	}

	if opts.BaseURL != "" {
		base, err := url.Parse(opts.BaseURL)
		if err != nil || base.Scheme == "" || base.Host == "" {
			return nil, &Error{URL: opts.BaseURL, Message: "invalid base URL", Cause: err}
		}
		// A base without a trailing slash would drop its last path segment
		// when resolving relative references.
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		c.base = base
	}

	return c, nil
}

// NewRequest builds a request carrying the client's default headers.
func (c *Client) NewRequest(ctx context.Context, method, ref string, body io.Reader) (*http.Request, error) {
	target, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{URL: target, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", c.agent)
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", &Error{URL: ref, Message: "invalid URL", Cause: err}
	}
	if c.base != nil {
		u = c.base.ResolveReference(u)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &Error{URL: ref, Message: "invalid URL"}
	}
	return u.String(), nil
}

// Do executes the request. Transport failures, including caller
// cancellation and client timeouts, are wrapped in *Error; the caller owns
// the response body on success.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: req.URL.String(), Message: "HTTP request failed", Cause: err}
	}
	return resp, nil
}

// Open performs a GET and returns the response for streaming. Non-2xx
// responses are reported as *StatusError; on success the caller closes the body.
func (c *Client) Open(ctx context.Context, ref string, headers map[string]string) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if !IsSuccess(resp.StatusCode) {
		defer func() { _ = resp.Body.Close() }()
		return nil, c.StatusError(resp)
	}
	return resp, nil
}

// Get performs a GET and returns the body. Non-2xx responses are reported as
// *StatusError with the best-effort body attached.
func (c *Client) Get(ctx context.Context, ref string, headers map[string]string) ([]byte, error) {
	resp, err := c.Open(ctx, ref, headers)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: resp.Request.URL.String(), Message: "failed to read response body", Cause: err}
	}
	return body, nil
}

// StatusError builds the error for a non-success response, reading the body
// best-effort. It never fails itself.
func (c *Client) StatusError(resp *http.Response) *StatusError {
	target := ""
	if resp.Request != nil && resp.Request.URL != nil {
		target = resp.Request.URL.String()
	}
	return &StatusError{
		Service:    c.service,
		URL:        target,
		StatusCode: resp.StatusCode,
		Body:       SafeReadBody(resp.Body),
	}
}

// SafeReadBody returns the (truncated) body text, or UnreadableBody if the
// read fails.
func SafeReadBody(body io.Reader) (text string) {
	if body == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			text = UnreadableBody
		}
	}()

	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return UnreadableBody
	}
	return strings.TrimSpace(string(data))
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
