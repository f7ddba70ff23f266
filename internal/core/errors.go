package core

import "fmt"

// ReasonRequired is the ValidationError reason for missing fields.
const ReasonRequired = "is required"

// ValidationError reports a rejected entry form. State is never mutated when
// one is returned.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MissingFields reports whether the error is about absent required fields
// rather than a malformed value.
func (e *ValidationError) MissingFields() bool {
	return e.Reason == ReasonRequired
}

// PersistenceError reports a failed read or write against the byte store.
// The in-memory ledger keeps whatever mutation preceded the failure.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
