package models

import "time"

// Bill represents a one-off obligation with a single due date,
// split among household members.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// Name is the human-readable name (e.g. "Electric - March").
	Name string `json:"name"`

	// Amount is the total owed, in cents.
	Amount Cents `json:"amount"`

	// DueDate is the calendar day the bill is due. Only the date portion
	// is meaningful; payments made any time that day count as on time.
	DueDate time.Time `json:"due_date"`

	// Mode determines how Splits are interpreted.
	Mode SplitMode `json:"mode"`

	// Splits is the per-person split configuration.
	Splits []SplitEntry `json:"splits"`

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64 `json:"created_at"`
}

// SplitAmount returns the total the split configuration divides.
func (b *Bill) SplitAmount() Cents { return b.Amount }

// SplitMode returns the split interpretation mode.
func (b *Bill) SplitMode() SplitMode { return b.Mode }

// SplitEntries returns the per-person split configuration.
func (b *Bill) SplitEntries() []SplitEntry { return b.Splits }
