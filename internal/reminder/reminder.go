// Package reminder implements the scheduled due-date sweep: a periodic job
// that resolves every obligation's current cycle, logs what is overdue or
// coming up, and exports gauges for alerting.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/homebills/internal/calculator"
	"github.com/mmynk/homebills/internal/models"
	"github.com/mmynk/homebills/internal/storage"
)

var (
	overdueGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "homebills_overdue_obligations",
		Help: "Obligations whose current cycle is overdue.",
	})
	outstandingGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "homebills_outstanding_cents",
		Help: "Total unpaid cents across all current cycles.",
	})
)

// Job sweeps all obligations and reports their due state.
type Job struct {
	store storage.Store
}

// NewJob creates a reminder job over the given store.
func NewJob(store storage.Store) *Job {
	return &Job{store: store}
}

// Run performs one sweep anchored at the current date. It is safe to call
// from a cron scheduler; failures are logged and the gauges keep their last
// good values.
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	asOf := time.Now().UTC()

	stored, err := j.store.ListPeople(ctx)
	if err != nil {
		slog.Error("Reminder sweep failed", "error", err)
		return
	}
	people := make([]models.Person, len(stored))
	for i, p := range stored {
		people[i] = *p
	}

	var overdue int
	var outstanding models.Cents

	bills, err := j.store.ListBills(ctx)
	if err != nil {
		slog.Error("Reminder sweep failed", "error", err)
		return
	}
	for _, bill := range bills {
		payments, err := j.store.ListPaymentsForBill(ctx, bill.ID)
		if err != nil {
			slog.Error("Reminder sweep failed", "bill_id", bill.ID, "error", err)
			return
		}
		cycle := calculator.ResolveBillCycle(bill, payments, people, asOf)
		outstanding += cycle.TotalRemaining
		if cycle.Status == calculator.StatusOverdue {
			overdue++
			slog.Warn("Bill overdue",
				"bill", bill.Name,
				"due_date", cycle.DueDate.Format(time.DateOnly),
				"remaining", cycle.TotalRemaining,
			)
		}
	}

	mortgages, err := j.store.ListMortgages(ctx)
	if err != nil {
		slog.Error("Reminder sweep failed", "error", err)
		return
	}
	for _, mortgage := range mortgages {
		payments, err := j.store.ListPaymentsForMortgage(ctx, mortgage.ID)
		if err != nil {
			slog.Error("Reminder sweep failed", "mortgage_id", mortgage.ID, "error", err)
			return
		}
		cycle := calculator.ResolveMortgageCycle(mortgage, payments, people, asOf)
		if cycle == nil {
			continue
		}
		outstanding += cycle.TotalRemaining
		switch cycle.Status {
		case calculator.StatusOverdue:
			overdue++
			slog.Warn("Mortgage payment overdue",
				"mortgage", mortgage.Name,
				"due_date", cycle.DueDate.Format(time.DateOnly),
				"remaining", cycle.TotalRemaining,
			)
		case calculator.StatusUnpaid, calculator.StatusPartiallyPaid:
			slog.Info("Mortgage payment coming up",
				"mortgage", mortgage.Name,
				"due_date", cycle.DueDate.Format(time.DateOnly),
				"remaining", cycle.TotalRemaining,
			)
		}
	}

	overdueGauge.Set(float64(overdue))
	outstandingGauge.Set(float64(outstanding))
	slog.Info("Reminder sweep complete",
		"bills", len(bills),
		"mortgages", len(mortgages),
		"overdue", overdue,
		"outstanding", outstanding,
	)
}
