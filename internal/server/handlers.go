package server

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/dev-portfolio/internal/github"
	"github.com/jonathan/dev-portfolio/internal/resume"
)

// ResumeURLResponse represents the response for /api/resume/url
type ResumeURLResponse struct {
	URL string `json:"url"`
}

// PortfolioResponse represents the response for /api/portfolio
type PortfolioResponse struct {
	Repositories []github.Repository `json:"repositories"`
	Resume       *resume.Document    `json:"resume"`
}

func orEmpty(repos []github.Repository) []github.Repository {
	if repos == nil {
		return []github.Repository{}
	}
	return repos
}

// handleListRepos returns every non-archived repository
func (s *Server) handleListRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := s.catalog.ListRepositories(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(repos))
}

// handleRecentRepos returns the configured number of newest repositories
func (s *Server) handleRecentRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := s.catalog.ListRecentRepositories(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(repos))
}

// handleReadme returns a repository's README as embeddable HTML.
// The optional branch query parameter selects the ref relative links point at.
func (s *Server) handleReadme(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	html, err := s.catalog.ReadmeHTML(r.Context(), name, r.URL.Query().Get("branch"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleResume returns the parsed resume
func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	src, err := s.resume()
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	doc, err := src.Parse(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleResumeURL returns the resolved .docx download URL, for a download link
func (s *Server) handleResumeURL(w http.ResponseWriter, r *http.Request) {
	src, err := s.resume()
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ResumeURLResponse{URL: src.DownloadURL()})
}

// handlePortfolio returns recent repositories and the resume in one response.
// Both are fetched concurrently; the first failure cancels the other.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	var resp PortfolioResponse
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		repos, err := s.catalog.ListRecentRepositories(ctx)
		resp.Repositories = orEmpty(repos)
		return err
	})
	g.Go(func() error {
		src, err := s.resume()
		if err != nil {
			return err
		}
		resp.Resume, err = src.Parse(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
