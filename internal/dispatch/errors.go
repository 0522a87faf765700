package dispatch

import "fmt"

// InvocationError reports the account whose invocation failed and stopped
// the run. Index is the account's position in the dispatched list.
type InvocationError struct {
	Index     int
	AccountID string
	Err       error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke account %s: %v", e.AccountID, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }
