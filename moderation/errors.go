package moderation

import "fmt"

// ValidationError reports bad input shape or value. Nothing was mutated.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports that no record matched the id within the guild scope.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no infraction record found with id %d", e.ID)
}

// AlreadyVoidedError reports a second void attempt on a voided record. The
// original void fields are never overwritten.
type AlreadyVoidedError struct {
	ID int64
}

func (e *AlreadyVoidedError) Error() string {
	return fmt.Sprintf("infraction %d is already voided", e.ID)
}

// StoreError wraps an underlying storage failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }
