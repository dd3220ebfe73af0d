package common

import "strings"

// FieldError is a single validation violation: the offending field and a
// human-readable message. The JSON shape matches the API error contract.
type FieldError struct {
	Field   string `json:"param,omitempty"`
	Message string `json:"msg"`
}

// ValidationError carries every violation collected for a request. A request
// with a non-empty violation list is rejected as a whole; there is no partial
// acceptance.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
