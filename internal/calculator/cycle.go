package calculator

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mmynk/homebills/internal/models"
)

// BillStatus is the aggregate state of an obligation's current cycle.
// It is recomputed from payment history on every resolution; nothing is
// persisted or cached.
type BillStatus int

const (
	StatusUnpaid BillStatus = iota
	StatusPartiallyPaid
	StatusPaid
	StatusOverdue
	StatusUpcoming
)

var statusNames = map[BillStatus]string{
	StatusUnpaid:        "unpaid",
	StatusPartiallyPaid: "partially_paid",
	StatusPaid:          "paid",
	StatusOverdue:       "overdue",
	StatusUpcoming:      "upcoming",
}

// String returns the stable wire name for the status.
func (s BillStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("BillStatus(%d)", int(s))
}

// MarshalJSON encodes the status as its string name.
func (s BillStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the status from its string name.
func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for status, n := range statusNames {
		if n == name {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status: %q", name)
}

// PersonCycleTotal is one person's position within a cycle.
type PersonCycleTotal struct {
	PersonID  string       `json:"person_id"`
	Owed      models.Cents `json:"owed"`
	Paid      models.Cents `json:"paid"`
	Remaining models.Cents `json:"remaining"`
}

// ItemCycle is the resolved current billing cycle for a bill or mortgage.
// Built fresh on every call and never mutated afterward.
type ItemCycle struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	DueDate time.Time `json:"due_date"`

	Status         BillStatus   `json:"status"`
	TotalPaid      models.Cents `json:"total_paid"`
	TotalRemaining models.Cents `json:"total_remaining"`

	People []PersonCycleTotal `json:"people"`
}

// NormalizeDueDate builds the due date for a given month, clamping the day
// into the month's actual length (day 31 in February becomes the 28th or
// 29th). The returned time is midnight UTC.
func NormalizeDueDate(year int, month time.Month, day int) time.Time {
	if day < 1 {
		day = 1
	}
	// Day 0 of the next month normalizes to this month's last day.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

// statusForCycle derives the aggregate status from cycle totals. The order
// matters: a settled cycle is Paid even when the due date has passed.
func statusForCycle(paid, remaining models.Cents, end, asOf time.Time) BillStatus {
	switch {
	case remaining <= 0:
		return StatusPaid
	case asOf.After(end):
		return StatusOverdue
	case paid > 0:
		return StatusPartiallyPaid
	default:
		return StatusUnpaid
	}
}

// ResolveBillCycle resolves a one-off bill against its payment history.
// The cycle window is the bill's single due day; every payment for the bill
// counts toward it regardless of paid date.
func ResolveBillCycle(bill *models.Bill, payments []models.Payment, people []models.Person, asOf time.Time) *ItemCycle {
	due := startOfDay(bill.DueDate)
	return resolveWindow(bill, payments, people, due, endOfDay(due), due, asOf)
}

// ResolveMortgageCycle resolves the current monthly cycle of a mortgage.
//
// Before the first due date the result is an Upcoming cycle with the full
// scheduled payment owed. A nil result means no applicable cycle: the due
// date computed for the reference month precedes the first due date, which
// only happens with inconsistent caller-supplied dates. Callers treat nil as
// "omit from due lists", never as an error.
func ResolveMortgageCycle(m *models.Mortgage, payments []models.Payment, people []models.Person, asOf time.Time) *ItemCycle {
	firstDue := firstDueDate(m)

	if asOf.Before(firstDue) {
		cycle := resolveWindow(m, nil, people, startOfDay(m.StartDate), endOfDay(firstDue), firstDue, asOf)
		cycle.Status = StatusUpcoming
		return cycle
	}

	due := NormalizeDueDate(asOf.Year(), asOf.Month(), m.PaymentDay)
	if due.Before(firstDue) {
		return nil
	}

	var start time.Time
	if due.Equal(firstDue) {
		start = startOfDay(m.StartDate)
	} else {
		prevMonth := due.AddDate(0, 0, -due.Day()) // last day of previous month
		prevDue := NormalizeDueDate(prevMonth.Year(), prevMonth.Month(), m.PaymentDay)
		start = prevDue.AddDate(0, 0, 1)
	}
	end := endOfDay(due)

	var inWindow []models.Payment
	for _, p := range payments {
		pd := startOfDay(p.PaidDate)
		if !pd.Before(start) && !pd.After(end) {
			inWindow = append(inWindow, p)
		}
	}

	return resolveWindow(m, inWindow, people, start, end, due, asOf)
}

// firstDueDate returns the first cycle's due date: the start month's clamped
// payment day when the loan starts on or before it, otherwise the next
// month's.
func firstDueDate(m *models.Mortgage) time.Time {
	start := startOfDay(m.StartDate)
	due := NormalizeDueDate(start.Year(), start.Month(), m.PaymentDay)
	if start.After(due) {
		next := due.AddDate(0, 0, 1-due.Day()).AddDate(0, 1, 0) // first of next month
		due = NormalizeDueDate(next.Year(), next.Month(), m.PaymentDay)
	}
	return due
}

// resolveWindow builds an ItemCycle from an obligation and the payments that
// fall inside the cycle window. Both the bill and mortgage branches share
// this so the status ordering lives in exactly one place.
func resolveWindow(ob Splittable, inWindow []models.Payment, people []models.Person, start, end, due, asOf time.Time) *ItemCycle {
	total := ob.SplitAmount()

	var totalPaid models.Cents
	for _, p := range inWindow {
		totalPaid += p.Amount
	}
	totalRemaining := total - totalPaid
	if totalRemaining < 0 {
		totalRemaining = 0
	}

	owed := ResolveSplits(ob, people)

	paidBy := make(map[string]models.Cents)
	for _, p := range inWindow {
		if len(p.Allocations) > 0 {
			for _, a := range p.Allocations {
				paidBy[a.PersonID] += a.Amount
			}
			continue
		}
		for _, s := range AllocatePayment(p.Amount, ob, people) {
			paidBy[s.PersonID] += s.Amount
		}
	}

	totals := make([]PersonCycleTotal, 0, len(owed))
	seen := make(map[string]bool, len(owed))
	for _, s := range owed {
		paid := paidBy[s.PersonID]
		remaining := s.Amount - paid
		if remaining < 0 {
			remaining = 0
		}
		totals = append(totals, PersonCycleTotal{
			PersonID:  s.PersonID,
			Owed:      s.Amount,
			Paid:      paid,
			Remaining: remaining,
		})
		seen[s.PersonID] = true
	}

	// Explicit allocations can name people outside the split configuration.
	var extras []string
	for id := range paidBy {
		if !seen[id] {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	for _, id := range extras {
		totals = append(totals, PersonCycleTotal{PersonID: id, Paid: paidBy[id]})
	}

	return &ItemCycle{
		Start:          start,
		End:            end,
		DueDate:        due,
		Status:         statusForCycle(totalPaid, totalRemaining, end, asOf),
		TotalPaid:      totalPaid,
		TotalRemaining: totalRemaining,
		People:         totals,
	}
}
