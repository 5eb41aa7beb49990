package domain

import "fmt"

// ValidationError reports a malformed or missing input field. It is the
// single validation error shape used by every layer, so transports can map
// it to a 400-class response with errors.As.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
