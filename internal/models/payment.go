package models

import "time"

// Payment represents money paid toward a bill or a mortgage.
// Exactly one of BillID / MortgageID is set.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// BillID is the bill this payment applies to, if any.
	BillID string `json:"bill_id,omitempty"`

	// MortgageID is the mortgage this payment applies to, if any.
	MortgageID string `json:"mortgage_id,omitempty"`

	// Amount is the amount paid, in cents.
	Amount Cents `json:"amount"`

	// PaidDate is the calendar day the payment was made. Cycle matching
	// uses only the date portion.
	PaidDate time.Time `json:"paid_date"`

	// Method is an optional payment method label (e.g. "autopay").
	Method string `json:"method,omitempty"`

	// Note is an optional free-form note.
	Note string `json:"note,omitempty"`

	// Allocations is the optional explicit per-person breakdown entered by
	// the user. When empty, the engine derives one proportional to
	// ownership. When present, the form layer guarantees the amounts sum
	// to Amount; the engine does not re-validate.
	Allocations []PaymentAllocation `json:"allocations,omitempty"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `json:"created_at"`
}

// PaymentAllocation attributes part of a payment to one person.
type PaymentAllocation struct {
	PersonID string `json:"person_id"`
	Amount   Cents  `json:"amount"`
}
