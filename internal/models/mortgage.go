package models

import "time"

// Mortgage represents a fixed-rate home loan with a recurring monthly
// scheduled payment split among household members.
type Mortgage struct {
	// ID is the unique identifier for the mortgage (UUID format).
	ID string `json:"id"`

	// Name is the human-readable name (e.g. "123 Maple St").
	Name string `json:"name"`

	// OriginalPrincipal is the loan amount at origination, in cents.
	OriginalPrincipal Cents `json:"original_principal"`

	// CurrentPrincipal is the remaining balance, in cents. Maintained by
	// the caller; the engine treats it as the balance as of "now".
	CurrentPrincipal Cents `json:"current_principal"`

	// InterestRateAPY is the annual rate in percent (e.g. 6.25).
	InterestRateAPY float64 `json:"interest_rate_apy"`

	// TermMonths is the loan term in months.
	TermMonths int `json:"term_months"`

	// StartDate is the day the loan became active. The first due date is
	// derived from it together with PaymentDay.
	StartDate time.Time `json:"start_date"`

	// PaymentDay is the day of month payments are due, 1-31. Days past the
	// end of a short month clamp to that month's last day.
	PaymentDay int `json:"payment_day"`

	// ScheduledPayment is the full monthly payment in cents, including
	// escrow components.
	ScheduledPayment Cents `json:"scheduled_payment"`

	// Monthly escrow components, in cents. Zero means not escrowed.
	EscrowTaxes             Cents `json:"escrow_taxes"`
	EscrowInsurance         Cents `json:"escrow_insurance"`
	EscrowMortgageInsurance Cents `json:"escrow_mortgage_insurance"`
	EscrowHOA               Cents `json:"escrow_hoa"`

	// Mode determines how Splits are interpreted.
	Mode SplitMode `json:"mode"`

	// Splits is the per-person split configuration over ScheduledPayment.
	Splits []SplitEntry `json:"splits"`

	// CreatedAt is the Unix timestamp when the mortgage was created.
	CreatedAt int64 `json:"created_at"`
}

// MonthlyRate returns the periodic interest rate as a fraction.
func (m *Mortgage) MonthlyRate() float64 {
	return m.InterestRateAPY / 100 / 12
}

// EscrowMonthly returns the sum of all enabled escrow components.
func (m *Mortgage) EscrowMonthly() Cents {
	return m.EscrowTaxes + m.EscrowInsurance + m.EscrowMortgageInsurance + m.EscrowHOA
}

// PrincipalAndInterest returns the scheduled payment net of escrow.
func (m *Mortgage) PrincipalAndInterest() Cents {
	return m.ScheduledPayment - m.EscrowMonthly()
}

// SplitAmount returns the total the split configuration divides.
func (m *Mortgage) SplitAmount() Cents { return m.ScheduledPayment }

// SplitMode returns the split interpretation mode.
func (m *Mortgage) SplitMode() SplitMode { return m.Mode }

// SplitEntries returns the per-person split configuration.
func (m *Mortgage) SplitEntries() []SplitEntry { return m.Splits }
