package order

import (
	"time"

	"dispatch/internal/pkg/errs"
)

// AuditEntry is a single timestamped line in an order's append-only audit log.
// Entries are created once and never mutated.
type AuditEntry struct {
	at   time.Time
	text string
}

// NewAuditEntry creates an audit entry with the given timestamp and text.
// Text must be non-empty.
func NewAuditEntry(at time.Time, text string) (AuditEntry, error) {
	if text == "" {
		return AuditEntry{}, errs.NewValueIsRequiredError("audit entry text")
	}
	return AuditEntry{at: at, text: text}, nil
}

// At returns the timestamp of the entry.
func (e AuditEntry) At() time.Time {
	return e.at
}

// Text returns the entry text.
func (e AuditEntry) Text() string {
	return e.text
}
