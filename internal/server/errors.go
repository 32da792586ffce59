package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/dev-portfolio/internal/config"
	"github.com/jonathan/dev-portfolio/internal/fetch"
	"github.com/jonathan/dev-portfolio/internal/github"
	"github.com/jonathan/dev-portfolio/internal/resume"
	"github.com/jonathan/dev-portfolio/internal/server/middleware"
)

// StatusClientClosedRequest is recorded when the caller went away before the
// response was ready.
const StatusClientClosedRequest = 499

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error          string `json:"error"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		cfgErr    *config.Error
		statusErr *fetch.StatusError
		malformed *resume.MalformedResponseError
		decodeErr *github.DecodeError
		fetchErr  *fetch.Error
	)

	switch {
	case fetch.IsCanceled(err):
		return StatusClientClosedRequest
	case fetch.IsTimeout(err):
		return http.StatusGatewayTimeout
	case errors.Is(err, github.ErrInvalidRepoName):
		return http.StatusBadRequest
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError
	case errors.As(err, &statusErr):
		return http.StatusBadGateway
	case errors.As(err, &malformed), errors.As(err, &decodeErr):
		return http.StatusBadGateway
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs err and writes the matching response. A cancelled request
// is not a failure and gets no body.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	requestID, _ := middleware.GetRequestID(r)
	status := HTTPStatus(err)

	if status == StatusClientClosedRequest {
		log.Printf("[server] %s %s canceled by client", requestID, r.URL.Path)
		w.WriteHeader(status)
		return
	}

	log.Printf("[server] %s %s failed: %v", requestID, r.URL.Path, err)
	s.jsonResponse(w, status, ErrorResponse{
		Error:          err.Error(),
		UpstreamStatus: fetch.StatusCode(err),
	})
}
