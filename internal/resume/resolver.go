// Package resume resolves the configured resume document, has it parsed by
// the remote parsing service and caches the structured result.
package resume

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/jonathan/dev-portfolio/internal/cache"
	"github.com/jonathan/dev-portfolio/internal/config"
)

const (
	// CacheTTL is how long a parsed document is served from cache.
	CacheTTL = 10 * time.Minute

	cacheKeyPrefix = "resume::"
)

// Options configures a Resolver.
type Options struct {
	// DocxPath is a direct .docx URL, a Google Docs URL, or an export URL.
	DocxPath string
	// ExtractRawText fills an empty RawText from the document itself.
	ExtractRawText bool
	// TTL overrides CacheTTL when positive.
	TTL time.Duration
}

// Resolver serves the parsed resume, downloading and parsing it at most once
// per cache window. It is safe for concurrent use.
type Resolver struct {
	downloadURL    string
	downloader     Downloader
	parser         *ParserClient
	cache          *cache.Cache[*Document]
	ttl            time.Duration
	extractRawText bool
}

// NewResolver creates a resolver. Resolvers sharing c also share cached
// documents, keyed by their resolved download URL.
func NewResolver(opts Options, downloader Downloader, parser *ParserClient, c *cache.Cache[*Document]) (*Resolver, error) {
	if strings.TrimSpace(opts.DocxPath) == "" {
		return nil, &config.Error{Field: "resume.docx_path", Message: "is required"}
	}
	if c == nil {
		c = cache.New[*Document]()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = CacheTTL
	}

	return &Resolver{
		downloadURL:    BuildDownloadURL(strings.TrimSpace(opts.DocxPath)),
		downloader:     downloader,
		parser:         parser,
		cache:          c,
		ttl:            ttl,
		extractRawText: opts.ExtractRawText,
	}, nil
}

// DownloadURL returns the resolved .docx URL.
func (r *Resolver) DownloadURL() string {
	return r.downloadURL
}

// CacheKey is the cache key of the resolved document.
func (r *Resolver) CacheKey() string {
	return cacheKeyPrefix + r.downloadURL
}

// Parse returns the structured resume. Within the cache window it is served
// without network activity; concurrent misses share one download and parse.
// The returned Document is shared and must not be modified.
func (r *Resolver) Parse(ctx context.Context) (*Document, error) {
	return r.cache.GetOrCreate(ctx, r.CacheKey(), r.ttl, r.fetchAndParse)
}

// Download returns the raw document bytes, bypassing the cache.
func (r *Resolver) Download(ctx context.Context) ([]byte, error) {
	return r.downloader.Download(ctx, r.downloadURL)
}

// Open streams the raw document, bypassing the cache. The caller closes body;
// size is -1 when the host does not announce it.
func (r *Resolver) Open(ctx context.Context) (body io.ReadCloser, size int64, err error) {
	return openDocument(ctx, r.downloader, r.downloadURL)
}

func (r *Resolver) fetchAndParse(ctx context.Context) (*Document, error) {
	start := time.Now()

	data, err := r.downloader.Download(ctx, r.downloadURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download resume: %w", err)
	}

	doc, err := r.parser.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	if r.extractRawText && strings.TrimSpace(doc.RawText) == "" {
		text, err := ExtractText(data)
		if err != nil {
			log.Printf("[resume] raw text fallback skipped: %v", err)
		} else {
			doc.RawText = text
		}
	}

	log.Printf("[resume] parsed %s (%d bytes) in %v", r.downloadURL, len(data), time.Since(start))
	return doc, nil
}
