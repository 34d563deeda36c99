package services

import "fmt"

// DataAccessError reports a failed read or write against the store.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// ValidationError is returned before any store access when form input is
// malformed. Errors is keyed by form field name.
type ValidationError struct {
	Message string
	Errors  map[string][]string
}

func (e *ValidationError) Error() string {
	return e.Message
}
