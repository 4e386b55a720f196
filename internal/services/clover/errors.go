package clover

import "fmt"

// TransportError covers network failures and non-2xx responses from the
// Clover API. Status and body are kept for the audit log.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: API request failed: %d - %s", e.Op, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SchemaError marks a 2xx response missing an expected field. The call is
// treated as failed despite the success status code.
type SchemaError struct {
	Op    string
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing %q field in response", e.Op, e.Field)
}
