package calculator

import (
	"math"

	"github.com/mmynk/homebills/internal/models"
)

// Splittable is any obligation that divides a total among people.
// Satisfied by *models.Bill and *models.Mortgage.
type Splittable interface {
	SplitAmount() models.Cents
	SplitMode() models.SplitMode
	SplitEntries() []models.SplitEntry
}

// PersonShare is one person's resolved share of an obligation.
type PersonShare struct {
	PersonID string
	Amount   models.Cents
}

// ResolveSplits computes each person's share of an obligation's total.
//
// Entries are filtered to people that exist in the roster. Entries with a
// non-positive value are excluded entirely rather than kept at zero; for
// share-based splits this matters because the divisor is the sum over active
// entries only. If the amount is non-positive or no active entry remains,
// every listed person gets a zero share so callers can still look everyone up.
//
// Fixed-amount values are trusted as-is (validation happens in the form
// layer). Percent and share values are ratios, so they are normalized and
// reconciled to the exact total through Allocate.
func ResolveSplits(ob Splittable, people []models.Person) []PersonShare {
	known := make(map[string]bool, len(people))
	for _, p := range people {
		known[p.ID] = true
	}

	var listed, active []models.SplitEntry
	for _, e := range ob.SplitEntries() {
		if !known[e.PersonID] {
			continue
		}
		listed = append(listed, e)
		if e.Value > 0 {
			active = append(active, e)
		}
	}

	total := ob.SplitAmount()
	if total <= 0 || len(active) == 0 {
		shares := make([]PersonShare, len(listed))
		for i, e := range listed {
			shares[i] = PersonShare{PersonID: e.PersonID}
		}
		return shares
	}

	if ob.SplitMode() == models.SplitFixedAmount {
		shares := make([]PersonShare, len(active))
		for i, e := range active {
			shares[i] = PersonShare{PersonID: e.PersonID, Amount: models.Cents(math.Round(e.Value))}
		}
		return shares
	}

	var sum float64
	for _, e := range active {
		sum += e.Value
	}

	weights := make([]WeightedShare, len(active))
	for i, e := range active {
		var raw float64
		switch ob.SplitMode() {
		case models.SplitPercent:
			// Normalize so percentages need not literally sum to 100.
			pct := e.Value * 100 / sum
			raw = float64(total) * pct / 100
		case models.SplitShares:
			raw = float64(total) * e.Value / sum
		}
		weights[i] = WeightedShare{Key: e.PersonID, Raw: raw}
	}

	amounts := make(map[string]models.Cents, len(weights))
	for _, a := range Allocate(total, weights) {
		amounts[a.Key] = a.Amount
	}

	shares := make([]PersonShare, len(active))
	for i, e := range active {
		shares[i] = PersonShare{PersonID: e.PersonID, Amount: amounts[e.PersonID]}
	}
	return shares
}

// AllocatePayment derives a per-person breakdown for a payment that was
// recorded without an explicit allocation. Each person's resolved share of
// the obligation is used as a weight against the payment amount, so a
// partial payment splits in the same proportion as the full obligation.
// Returns nil when nothing is owed.
func AllocatePayment(amount models.Cents, ob Splittable, people []models.Person) []PersonShare {
	owed := ResolveSplits(ob, people)

	var totalOwed models.Cents
	for _, s := range owed {
		totalOwed += s.Amount
	}
	if totalOwed <= 0 {
		return nil
	}

	weights := make([]WeightedShare, len(owed))
	for i, s := range owed {
		weights[i] = WeightedShare{
			Key: s.PersonID,
			Raw: float64(amount) * float64(s.Amount) / float64(totalOwed),
		}
	}

	allocs := Allocate(amount, weights)
	shares := make([]PersonShare, len(allocs))
	for i, a := range allocs {
		shares[i] = PersonShare{PersonID: a.Key, Amount: a.Amount}
	}
	return shares
}
