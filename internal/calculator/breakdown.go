package calculator

import (
	"math"

	"github.com/mmynk/homebills/internal/models"
)

// PaymentBreakdown is the estimated principal/interest/escrow composition of
// a single mortgage payment.
type PaymentBreakdown struct {
	Principal models.Cents `json:"principal"`
	Interest  models.Cents `json:"interest"`
	Escrow    models.Cents `json:"escrow"`
}

// EstimateBreakdown approximates how one payment divided into interest,
// escrow and principal.
//
// The balance at the time of the payment is approximated by adding the
// amounts of all later payments back onto the current principal. This is a
// deliberate heuristic, not an amortization ledger: it misattributes
// interest when payments are recorded out of order or when the principal
// changed outside the payment stream (recasts, lump sums). The exact
// historical balance would require a running ledger keyed by payment
// sequence, which would change reported values.
//
// The payment amount is consumed interest first, then escrow, then
// principal, each portion capped by what remains.
func EstimateBreakdown(p *models.Payment, m *models.Mortgage, all []models.Payment) PaymentBreakdown {
	balance := m.CurrentPrincipal
	for _, q := range all {
		if q.PaidDate.After(p.PaidDate) {
			balance += q.Amount
		}
	}

	interest := models.Cents(math.Floor(float64(balance) * m.MonthlyRate()))
	if interest < 0 {
		interest = 0
	}

	remaining := p.Amount
	if interest > remaining {
		interest = remaining
	}
	remaining -= interest

	escrow := m.EscrowMonthly()
	if escrow > remaining {
		escrow = remaining
	}
	remaining -= escrow

	return PaymentBreakdown{
		Principal: remaining,
		Interest:  interest,
		Escrow:    escrow,
	}
}

// EstimateBreakdowns estimates every payment's breakdown, keyed by payment ID.
func EstimateBreakdowns(m *models.Mortgage, payments []models.Payment) map[string]PaymentBreakdown {
	breakdowns := make(map[string]PaymentBreakdown, len(payments))
	for i := range payments {
		breakdowns[payments[i].ID] = EstimateBreakdown(&payments[i], m, payments)
	}
	return breakdowns
}
