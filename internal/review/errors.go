package review

import "fmt"

// Error represents a review queue write failure. Callers log it and
// move on; a lost review record never fails the surrounding run.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("review error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("review error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
