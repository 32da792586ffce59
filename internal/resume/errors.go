package resume

import "fmt"

// MalformedResponseError is returned when the parser answers 2xx with a
// payload that is not a resume document.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed parser response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed parser response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
