package planner

import "fmt"

// ColumnNotFoundError reports a requested column_id absent from the
// Catalog. The planner returns the first one it hits; it does not
// accumulate.
type ColumnNotFoundError struct {
	ColumnID string
}

func (e ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column not found: %s", e.ColumnID)
}

// MissingFilterError reports a structurally unacceptable filter tree: the
// root isn't an And, or the date window is incomplete.
type MissingFilterError struct {
	Reason string
}

func (e MissingFilterError) Error() string {
	return fmt.Sprintf("missing filter: %s", e.Reason)
}
