package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/jonathan/dev-portfolio/internal/fetch"
	"github.com/jonathan/dev-portfolio/internal/schemas"
)

const (
	// ParserTimeout bounds a single call to the parsing service.
	ParserTimeout = 2 * time.Minute

	multipartField    = "file"
	multipartFilename = "resume.docx"
	parseEndpoint     = "parse"
)

// NewParserClientOptions returns fetch options for the parsing service at baseURL.
func NewParserClientOptions(baseURL string) *fetch.Options {
	return &fetch.Options{
		Service:   "parser",
		BaseURL:   baseURL,
		Timeout:   ParserTimeout,
		UserAgent: fetch.DefaultUserAgent,
	}
}

// ParserClient uploads documents to the remote parsing service.
type ParserClient struct {
	client *fetch.Client
}

// NewParserClient wraps a client whose base URL points at the parsing service.
func NewParserClient(client *fetch.Client) *ParserClient {
	return &ParserClient{client: client}
}

// Parse posts data as a multipart upload to {base}/parse and decodes the
// structured result. Non-2xx answers become *fetch.StatusError whose message
// carries the status code and, when readable, the response body.
func (p *ParserClient) Parse(ctx context.Context, data []byte) (*Document, error) {
	body, contentType, err := multipartBody(data)
	if err != nil {
		return nil, err
	}

	req, err := p.client.NewRequest(ctx, http.MethodPost, parseEndpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !fetch.IsSuccess(resp.StatusCode) {
		return nil, p.client.StatusError(resp)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &fetch.Error{URL: req.URL.String(), Message: "failed to read parser response", Cause: err}
	}
	return DecodeDocument(payload)
}

func multipartBody(data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, multipartField, multipartFilename))
	header.Set("Content-Type", DocxMediaType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// DecodeDocument decodes a parser payload. An empty or null payload yields an
// empty Document; anything that is not a resume-shaped JSON object is a
// *MalformedResponseError.
func DecodeDocument(payload []byte) (*Document, error) {
	payload = bytes.TrimSpace(payload)
	doc := &Document{}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		doc.Normalize()
		return doc, nil
	}

	if err := schemas.ValidateResumeDocument(payload); err != nil {
		return nil, &MalformedResponseError{Message: "payload does not match resume schema", Cause: err}
	}
	if err := json.Unmarshal(payload, doc); err != nil {
		return nil, &MalformedResponseError{Message: "invalid JSON", Cause: err}
	}
	doc.Normalize()
	return doc, nil
}
