// Package importer ingests exercise directories into the catalog, from
// JSON snapshot files or crawled HTML directory pages.
package importer

import "fmt"

// ImportError represents a general import failure
type ImportError struct {
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("import error: %s", e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// PageError represents a failure fetching or parsing one directory page
type PageError struct {
	URL     string
	Message string
	Cause   error
}

func (e *PageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("page error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("page error for %s: %s", e.URL, e.Message)
}

func (e *PageError) Unwrap() error {
	return e.Cause
}
