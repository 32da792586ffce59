package resume

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonathan/dev-portfolio/internal/fetch"
)

// DocxMediaType is the MIME type of a Word-processing document.
const DocxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DocumentTimeout bounds a single download from the document host.
const DocumentTimeout = 2 * time.Minute

// Downloader fetches the raw resume bytes from a resolved URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Streamer is implemented by downloaders that can hand out the document as a
// stream. size is -1 when unknown.
type Streamer interface {
	Open(ctx context.Context, url string) (body io.ReadCloser, size int64, err error)
}

// NewDocumentClientOptions returns fetch options for the document host.
func NewDocumentClientOptions() *fetch.Options {
	return &fetch.Options{
		Service:   "document host",
		Timeout:   DocumentTimeout,
		UserAgent: fetch.DefaultUserAgent,
		Headers:   map[string]string{"Accept": DocxMediaType},
	}
}

// HTTPDownloader downloads with a plain GET.
type HTTPDownloader struct {
	client *fetch.Client
}

// NewHTTPDownloader creates a downloader using client, which should be
// dedicated to the document host.
func NewHTTPDownloader(client *fetch.Client) *HTTPDownloader {
	return &HTTPDownloader{client: client}
}

// Download implements Downloader.
func (d *HTTPDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	return d.client.Get(ctx, url, nil)
}

// Open implements Streamer.
func (d *HTTPDownloader) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	resp, err := d.client.Open(ctx, url, nil)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}

// DriveDownloader exports Google Docs through the Drive v3 API, which works
// for documents shared with the API key's project rather than only for
// publicly exported ones. URLs that do not name a Google document go to the
// fallback downloader.
type DriveDownloader struct {
	files    *drive.FilesService
	fallback Downloader
}

// NewDriveDownloader creates a Drive-backed downloader authenticated with apiKey.
func NewDriveDownloader(ctx context.Context, apiKey string, fallback Downloader, opts ...option.ClientOption) (*DriveDownloader, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveDownloader{files: svc.Files, fallback: fallback}, nil
}

// Download implements Downloader.
func (d *DriveDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DocumentTimeout)
	defer cancel()

	body, _, err := d.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &fetch.Error{URL: url, Message: "failed to read drive export", Cause: err}
	}
	if id := DocumentID(url); id != "" {
		log.Printf("[resume] exported document %s via drive (%d bytes)", id, len(data))
	}
	return data, nil
}

// Open implements Streamer. The export honours ctx for as long as the body is read.
func (d *DriveDownloader) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	id := DocumentID(url)
	if id == "" {
		if d.fallback == nil {
			return nil, 0, &fetch.Error{URL: url, Message: "not a Google Docs URL and no fallback downloader"}
		}
		return openDocument(ctx, d.fallback, url)
	}

	resp, err := d.files.Export(id, DocxMediaType).Context(ctx).Download()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, 0, &fetch.StatusError{
				Service:    "drive",
				URL:        url,
				StatusCode: gerr.Code,
				Body:       gerr.Message,
			}
		}
		return nil, 0, &fetch.Error{URL: url, Message: "drive export failed", Cause: err}
	}
	return resp.Body, resp.ContentLength, nil
}

// openDocument streams from d when it can, and buffers otherwise.
func openDocument(ctx context.Context, d Downloader, url string) (io.ReadCloser, int64, error) {
	if s, ok := d.(Streamer); ok {
		return s.Open(ctx, url)
	}
	data, err := d.Download(ctx, url)
	if err != nil {
		return nil, 0, err
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}
