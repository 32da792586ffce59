package config

import "fmt"

// Error reports a missing or invalid required setting. It is fatal for the
// operation that needs the setting and is never retried.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}
