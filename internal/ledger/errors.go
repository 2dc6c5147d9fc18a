package ledger

import (
	"errors"
	"fmt"
)

// Error kinds callers can test with errors.Is. Validation means the input was
// bad and nothing changed; NotFound means a referenced record does not exist
// (a stale reference rather than bad input); Consistency is only reported by
// the reconciliation audit, never thrown during normal operation.
var (
	ErrValidation  = errors.New("invalid input")
	ErrNotFound    = errors.New("record not found")
	ErrConsistency = errors.New("ledger inconsistency")
)

func invalidf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, a...))
}

func notFoundf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, a...))
}
