package calculator

import (
	"math"
	"sort"
	"time"

	"github.com/mmynk/homebills/internal/models"
)

// Projection is a payoff forecast for one payment scenario.
type Projection struct {
	// Months remaining until the balance reaches zero.
	Months int `json:"months"`

	// PayoffDate is the reference date advanced by Months.
	PayoffDate time.Time `json:"payoff_date"`

	// InsufficientPayment is set when the payment does not cover the
	// interest accrued per period, so the loan can never amortize. Months
	// and PayoffDate are meaningless in that case.
	InsufficientPayment bool `json:"insufficient_payment"`
}

// PersonContribution is one person's total contribution toward a mortgage.
type PersonContribution struct {
	PersonID string       `json:"person_id"`
	Total    models.Cents `json:"total"`
}

// MortgageStats aggregates year-to-date and lifetime figures plus payoff
// projections for a mortgage. Computed fresh on every call.
type MortgageStats struct {
	YTDPrincipal models.Cents `json:"ytd_principal"`
	YTDInterest  models.Cents `json:"ytd_interest"`
	YTDEscrow    models.Cents `json:"ytd_escrow"`

	LifetimePrincipal models.Cents `json:"lifetime_principal"`
	PercentPaid       float64      `json:"percent_paid"`

	// TrailingExtraPrincipal estimates the extra principal the household
	// has been voluntarily paying, averaged over the three best months.
	TrailingExtraPrincipal models.Cents `json:"trailing_extra_principal"`

	Baseline    Projection `json:"baseline"`
	Accelerated Projection `json:"accelerated"`

	ContributionsYTD      []PersonContribution `json:"contributions_ytd"`
	ContributionsLifetime []PersonContribution `json:"contributions_lifetime"`
}

// ComputeStats derives MortgageStats from the payment history and the
// per-payment breakdowns (see EstimateBreakdowns). asOf anchors the
// calendar year and the projection start; it is always caller-supplied so
// results are reproducible.
func ComputeStats(m *models.Mortgage, payments []models.Payment, breakdowns map[string]PaymentBreakdown, people []models.Person, asOf time.Time) MortgageStats {
	stats := MortgageStats{}

	monthlyPrincipal := make(map[string]models.Cents)
	for _, p := range payments {
		bd := breakdowns[p.ID]

		stats.LifetimePrincipal += bd.Principal
		monthlyPrincipal[p.PaidDate.Format("2006-01")] += bd.Principal

		if p.PaidDate.Year() == asOf.Year() {
			stats.YTDPrincipal += bd.Principal
			stats.YTDInterest += bd.Interest
			stats.YTDEscrow += bd.Escrow
		}
	}

	if m.OriginalPrincipal > 0 {
		stats.PercentPaid = float64(stats.LifetimePrincipal) / float64(m.OriginalPrincipal) * 100
	}

	stats.TrailingExtraPrincipal = trailingExtraPrincipal(monthlyPrincipal, m.PrincipalAndInterest())

	rate := m.MonthlyRate()
	pni := m.PrincipalAndInterest()
	stats.Baseline = project(m.CurrentPrincipal, pni, rate, asOf)
	stats.Accelerated = project(m.CurrentPrincipal, pni+stats.TrailingExtraPrincipal, rate, asOf)

	stats.ContributionsYTD, stats.ContributionsLifetime = contributions(m, payments, people, asOf)

	return stats
}

// trailingExtraPrincipal averages the excess over the scheduled
// principal-and-interest across the three largest monthly principal sums.
// Months below the scheduled amount count as zero extra, not negative.
func trailingExtraPrincipal(monthlyPrincipal map[string]models.Cents, scheduledPNI models.Cents) models.Cents {
	if len(monthlyPrincipal) == 0 {
		return 0
	}

	sums := make([]models.Cents, 0, len(monthlyPrincipal))
	for _, sum := range monthlyPrincipal {
		sums = append(sums, sum)
	}
	sort.Slice(sums, func(a, b int) bool { return sums[a] > sums[b] })

	n := 3
	if len(sums) < n {
		n = len(sums)
	}

	var extra models.Cents
	for _, sum := range sums[:n] {
		if over := sum - scheduledPNI; over > 0 {
			extra += over
		}
	}
	return extra / models.Cents(n)
}

// project solves the remaining-term formula for a fixed-rate amortizing
// loan: n = ln(pay / (pay - P*r)) / ln(1 + r).
func project(principal, payment models.Cents, monthlyRate float64, asOf time.Time) Projection {
	if principal <= 0 {
		return Projection{PayoffDate: asOf}
	}
	if payment <= 0 {
		return Projection{InsufficientPayment: true}
	}

	var months int
	if monthlyRate == 0 {
		months = int(math.Ceil(float64(principal) / float64(payment)))
	} else {
		p := float64(principal)
		pay := float64(payment)
		if pay <= p*monthlyRate {
			return Projection{InsufficientPayment: true}
		}
		n := math.Log(pay/(pay-p*monthlyRate)) / math.Log(1+monthlyRate)
		months = int(math.Ceil(n - 1e-9))
	}

	return Projection{
		Months:     months,
		PayoffDate: asOf.AddDate(0, months, 0),
	}
}

// contributions accumulates each person's share of every payment, using the
// explicit allocation when present and the proportional split otherwise.
// Both rankings sort descending by total, ties by person ID.
func contributions(m *models.Mortgage, payments []models.Payment, people []models.Person, asOf time.Time) (ytd, lifetime []PersonContribution) {
	ytdTotals := make(map[string]models.Cents)
	lifetimeTotals := make(map[string]models.Cents)

	for _, p := range payments {
		shares := make(map[string]models.Cents)
		if len(p.Allocations) > 0 {
			for _, a := range p.Allocations {
				shares[a.PersonID] += a.Amount
			}
		} else {
			for _, s := range AllocatePayment(p.Amount, m, people) {
				shares[s.PersonID] += s.Amount
			}
		}

		for id, amount := range shares {
			lifetimeTotals[id] += amount
			if p.PaidDate.Year() == asOf.Year() {
				ytdTotals[id] += amount
			}
		}
	}

	return rankContributions(ytdTotals), rankContributions(lifetimeTotals)
}

func rankContributions(totals map[string]models.Cents) []PersonContribution {
	ranked := make([]PersonContribution, 0, len(totals))
	for id, total := range totals {
		ranked = append(ranked, PersonContribution{PersonID: id, Total: total})
	}
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].Total != ranked[b].Total {
			return ranked[a].Total > ranked[b].Total
		}
		return ranked[a].PersonID < ranked[b].PersonID
	})
	return ranked
}
