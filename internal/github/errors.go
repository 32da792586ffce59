package github

import (
	"errors"
	"fmt"
)

// ErrInvalidRepoName is returned for repository names GitHub would not accept.
var ErrInvalidRepoName = errors.New("invalid repository name")

// DecodeError is returned when GitHub answers 2xx with a body that is not
// the expected JSON shape.
type DecodeError struct {
	Endpoint string
	Cause    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
