// Package notice holds the ticket status state machine shared by the store
// and handlers.
package notice

import "fmt"

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// Valid reports whether s is a known ticket status.
func Valid(s Status) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// CanTransition validates a status change. A ticket moves open -> in_progress
// -> resolved, or straight open -> resolved. Resolved is terminal: no
// transition out of it is allowed, including re-resolving.
func CanTransition(from, to Status) error {
	if !Valid(to) {
		return fmt.Errorf("unknown status %q", to)
	}
	if from == StatusResolved {
		return fmt.Errorf("notice is resolved; no further transitions")
	}
	switch {
	case from == StatusOpen && (to == StatusInProgress || to == StatusResolved):
		return nil
	case from == StatusInProgress && to == StatusResolved:
		return nil
	}
	return fmt.Errorf("cannot transition from %q to %q", from, to)
}
