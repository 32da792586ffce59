// Package app builds the portfolio services from configuration.
package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/dev-portfolio/internal/cache"
	"github.com/jonathan/dev-portfolio/internal/config"
	"github.com/jonathan/dev-portfolio/internal/fetch"
	"github.com/jonathan/dev-portfolio/internal/github"
	"github.com/jonathan/dev-portfolio/internal/resume"
)

// App holds the configured services. A data source that is not configured
// is reported by its accessor as a *config.Error, so the rest keeps working.
type App struct {
	Config *config.Config

	catalog   *github.Catalog
	resolver  *resume.Resolver
	resumeErr error
}

// New wires the catalog and resolver for cfg. Only construction failures of
// the HTTP clients abort; missing resume settings are deferred to Resolver.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	ghClient, err := fetch.NewClient(github.NewClientOptions(cfg.GitHub.APIBaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	a := &App{
		Config: cfg,
		catalog: github.NewCatalog(ghClient, github.Options{
			ProfileURL:  cfg.GitHub.ProfileURL,
			PerPage:     cfg.GitHub.PerPage,
			RecentCount: cfg.GitHub.RecentCount,
			Token:       cfg.GitHub.Token,
		}),
	}

	a.resolver, a.resumeErr = newResolver(ctx, cfg, cache.New[*resume.Document]())
	if a.resumeErr != nil {
		log.Printf("[app] resume disabled: %v", a.resumeErr)
	}
	return a, nil
}

func newResolver(ctx context.Context, cfg *config.Config, c *cache.Cache[*resume.Document]) (*resume.Resolver, error) {
	if strings.TrimSpace(cfg.ResumeParser.BaseURL) == "" {
		return nil, &config.Error{Field: "resume_parser.base_url", Message: "is required"}
	}

	docClient, err := fetch.NewClient(resume.NewDocumentClientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create document client: %w", err)
	}
	parserClient, err := fetch.NewClient(resume.NewParserClientOptions(cfg.ResumeParser.BaseURL))
	if err != nil {
		return nil, &config.Error{Field: "resume_parser.base_url", Message: err.Error()}
	}

	var downloader resume.Downloader = resume.NewHTTPDownloader(docClient)
	if cfg.Resume.GoogleAPIKey != "" {
		drive, err := resume.NewDriveDownloader(ctx, cfg.Resume.GoogleAPIKey, downloader)
		if err != nil {
			return nil, err
		}
		downloader = drive
	}

	return resume.NewResolver(resume.Options{
		DocxPath:       cfg.Resume.DocxPath,
		ExtractRawText: cfg.Resume.ExtractRawText,
	}, downloader, resume.NewParserClient(parserClient), c)
}

// Catalog returns the repository catalog.
func (a *App) Catalog() *github.Catalog {
	return a.catalog
}

// Resolver returns the resume resolver, or the configuration error that
// prevented building it.
func (a *App) Resolver() (*resume.Resolver, error) {
	if a.resumeErr != nil {
		return nil, a.resumeErr
	}
	return a.resolver, nil
}
