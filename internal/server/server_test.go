package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/dev-portfolio/internal/config"
	"github.com/jonathan/dev-portfolio/internal/fetch"
	"github.com/jonathan/dev-portfolio/internal/github"
	"github.com/jonathan/dev-portfolio/internal/resume"
	"github.com/jonathan/dev-portfolio/internal/server/middleware"
	"github.com/jonathan/dev-portfolio/internal/server/ratelimit"
)

type fakeCatalog struct {
	repos      []github.Repository
	recent     []github.Repository
	readme     string
	err        error
	readmeArgs [2]string
	wait       bool
}

func (f *fakeCatalog) ListRepositories(ctx context.Context) ([]github.Repository, error) {
	return f.repos, f.err
}

func (f *fakeCatalog) ListRecentRepositories(ctx context.Context) ([]github.Repository, error) {
	if f.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.recent, f.err
}

func (f *fakeCatalog) ReadmeHTML(_ context.Context, repoName, defaultBranch string) (string, error) {
	f.readmeArgs = [2]string{repoName, defaultBranch}
	return f.readme, f.err
}

type fakeResume struct {
	doc   *resume.Document
	url   string
	err   error
	calls int32
}

func (f *fakeResume) Parse(context.Context) (*resume.Document, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.doc, f.err
}

func (f *fakeResume) DownloadURL() string {
	return f.url
}

type testServer struct {
	*Server
	catalog *fakeCatalog
	resume  *fakeResume
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	catalog := &fakeCatalog{}
	res := &fakeResume{}
	limiter := ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	t.Cleanup(limiter.Stop)

	s := newServer(Config{CORSOrigin: "https://portfolio.example"}, catalog,
		func() (ResumeSource, error) { return res, nil }, limiter)
	return &testServer{Server: s, catalog: catalog, resume: res}
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestListRepos(t *testing.T) {
	s := newTestServer(t)
	s.catalog.repos = []github.Repository{
		{Name: "site", HTMLURL: "https://github.com/alice/site", Stars: 3, UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "tool", Language: "Go"},
	}

	w := s.get("/api/repos")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	repos := decode[[]github.Repository](t, w)
	require.Len(t, repos, 2)
	assert.Equal(t, "site", repos[0].Name)
	assert.Equal(t, 3, repos[0].Stars)
	assert.Equal(t, "Go", repos[1].Language)
}

func TestListRepos_EmptyIsArray(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/api/repos")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRecentRepos(t *testing.T) {
	s := newTestServer(t)
	s.catalog.recent = []github.Repository{{Name: "newest"}}

	w := s.get("/api/repos/recent")

	require.Equal(t, http.StatusOK, w.Code)
	repos := decode[[]github.Repository](t, w)
	require.Len(t, repos, 1)
	assert.Equal(t, "newest", repos[0].Name)
}

func TestReadme(t *testing.T) {
	s := newTestServer(t)
	s.catalog.readme = `<h1>site</h1>`

	w := s.get("/api/repos/site/readme?branch=dev")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `<h1>site</h1>`, w.Body.String())
	assert.Equal(t, [2]string{"site", "dev"}, s.catalog.readmeArgs)
}

func TestReadme_NoBranch(t *testing.T) {
	s := newTestServer(t)
	s.catalog.readme = github.NoReadmeHTML

	w := s.get("/api/repos/empty-repo/readme")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, github.NoReadmeHTML, w.Body.String())
	assert.Equal(t, [2]string{"empty-repo", ""}, s.catalog.readmeArgs)
}

func TestResume(t *testing.T) {
	s := newTestServer(t)
	s.resume.doc = &resume.Document{
		Candidate: resume.Candidate{Name: "Alice", GithubURL: "https://github.com/alice"},
		Skills:    []string{"Go"},
	}
	s.resume.doc.Normalize()

	w := s.get("/api/resume")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	candidate := body["candidate"].(map[string]any)
	assert.Equal(t, "Alice", candidate["name"])
	assert.Equal(t, "https://github.com/alice", candidate["github_url"])
	assert.Equal(t, []any{"Go"}, body["skills"])
	assert.Equal(t, []any{}, body["education"])
}

func TestResumeURL(t *testing.T) {
	s := newTestServer(t)
	s.resume.url = "https://docs.google.com/document/d/ABC/export?format=docx"

	w := s.get("/api/resume/url")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, s.resume.url, decode[ResumeURLResponse](t, w).URL)
	assert.Equal(t, int32(0), atomic.LoadInt32(&s.resume.calls), "resolving the URL does not parse")
}

func TestResume_NotConfigured(t *testing.T) {
	s := newTestServer(t)
	s.resume = nil
	s.Server.resume = func() (ResumeSource, error) {
		return nil, &config.Error{Field: "resume.docx_path", Message: "is required"}
	}

	for _, path := range []string{"/api/resume", "/api/resume/url", "/api/portfolio"} {
		t.Run(path, func(t *testing.T) {
			w := s.get(path)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, decode[ErrorResponse](t, w).Error, "resume.docx_path")
		})
	}
}

func TestUpstreamErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantUpstream   int
		wantMessageSub string
	}{
		{
			name:           "github status",
			err:            &fetch.StatusError{Service: "github", StatusCode: http.StatusForbidden, Body: "rate limited"},
			wantStatus:     http.StatusBadGateway,
			wantUpstream:   http.StatusForbidden,
			wantMessageSub: "github error 403",
		},
		{
			name:       "timeout",
			err:        &fetch.Error{URL: "https://api.github.com", Message: "HTTP request failed", Cause: context.DeadlineExceeded},
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "malformed",
			err:        &github.DecodeError{Endpoint: "users/alice/repos", Cause: errors.New("bad json")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "missing profile",
			err:        &config.Error{Field: "github.profile_url", Message: "no account"},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.catalog.err = tt.err

			w := s.get("/api/repos")

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, tt.wantUpstream, resp.UpstreamStatus)
			assert.Contains(t, resp.Error, tt.wantMessageSub)
		})
	}
}

func TestCanceledRequestHasNoBody(t *testing.T) {
	s := newTestServer(t)
	s.catalog.err = &fetch.Error{URL: "x", Message: "HTTP request failed", Cause: context.Canceled}

	w := s.get("/api/repos")

	assert.Equal(t, StatusClientClosedRequest, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestPortfolio(t *testing.T) {
	s := newTestServer(t)
	s.catalog.recent = []github.Repository{{Name: "site"}}
	s.resume.doc = &resume.Document{Candidate: resume.Candidate{Name: "Alice"}}

	w := s.get("/api/portfolio")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[PortfolioResponse](t, w)
	require.Len(t, resp.Repositories, 1)
	assert.Equal(t, "site", resp.Repositories[0].Name)
	require.NotNil(t, resp.Resume)
	assert.Equal(t, "Alice", resp.Resume.Candidate.Name)
}

func TestPortfolio_FailureCancelsSibling(t *testing.T) {
	s := newTestServer(t)
	s.catalog.wait = true
	s.resume.err = &resume.MalformedResponseError{Message: "invalid JSON"}

	w := s.get("/api/portfolio")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "malformed parser response")
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/health")
	assert.Equal(t, "https://portfolio.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	req := httptest.NewRequest(http.MethodOptions, "/api/repos", nil)
	pre := httptest.NewRecorder()
	s.Handler().ServeHTTP(pre, req)
	assert.Equal(t, http.StatusNoContent, pre.Code)
	assert.Contains(t, pre.Header().Get("Access-Control-Allow-Methods"), "GET")
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/health")

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/repos", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/api/repos/", Method: "GET", Limit: 2, Window: time.Minute, Burst: 2},
		},
	})
	t.Cleanup(limiter.Stop)
	catalog := &fakeCatalog{readme: "<p>hi</p>"}
	s := newServer(Config{}, catalog, func() (ResumeSource, error) { return &fakeResume{}, nil }, limiter)

	serve := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.7:5555"
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, serve("/api/repos/a/readme").Code)
	ok := serve("/api/repos/b/readme")
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, "2", ok.Header().Get("X-RateLimit-Limit"))

	limited := serve("/api/repos/c/readme")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, limited)["error"])

	assert.Equal(t, http.StatusOK, serve("/health").Code, "health is never limited")
	assert.Equal(t, "*", serve("/health").Header().Get("Access-Control-Allow-Origin"))
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.1:1234"
	assert.Equal(t, "198.51.100.1", s.extractClientID(req))

	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", s.extractClientID(req))
}
