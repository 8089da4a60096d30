package ingestion

import (
	"fmt"

	"github.com/tobias/plan-reconciler/internal/schemas"
)

// Error represents a plan ingestion failure. The boundary fails hard,
// unlike validation downstream: when the document cannot be decoded
// there is no plan to degrade to. Fields carries per-field schema
// violations when the document parsed but did not conform.
type Error struct {
	Message string
	Fields  []schemas.FieldError
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
