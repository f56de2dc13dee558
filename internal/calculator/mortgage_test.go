package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/homebills/internal/models"
)

func TestEstimateBreakdown(t *testing.T) {
	t.Run("interest then escrow then principal", func(t *testing.T) {
		m := testMortgage() // 300,000.00 principal, 6% APY -> 0.5% monthly
		m.EscrowTaxes = 40000
		m.EscrowInsurance = 10000

		p := models.Payment{ID: "p1", MortgageID: m.ID, Amount: 250000, PaidDate: date(2025, time.March, 15)}
		bd := EstimateBreakdown(&p, m, []models.Payment{p})

		// interest = floor(30,000,000 * 0.005) = 150,000
		if bd.Interest != 150000 {
			t.Errorf("interest = %d, want 150000", bd.Interest)
		}
		if bd.Escrow != 50000 {
			t.Errorf("escrow = %d, want 50000", bd.Escrow)
		}
		if bd.Principal != 50000 {
			t.Errorf("principal = %d, want 50000", bd.Principal)
		}
		if bd.Principal+bd.Interest+bd.Escrow != p.Amount {
			t.Errorf("components sum to %d, want %d", bd.Principal+bd.Interest+bd.Escrow, p.Amount)
		}
	})

	t.Run("later payments are added back to the balance", func(t *testing.T) {
		m := testMortgage()
		earlier := models.Payment{ID: "p1", MortgageID: m.ID, Amount: 200000, PaidDate: date(2025, time.February, 15)}
		later := models.Payment{ID: "p2", MortgageID: m.ID, Amount: 200000, PaidDate: date(2025, time.March, 15)}
		all := []models.Payment{earlier, later}

		// Balance at p1's time approximates 30,000,000 + 200,000.
		bd := EstimateBreakdown(&earlier, m, all)
		if bd.Interest != 151000 {
			t.Errorf("interest = %d, want 151000", bd.Interest)
		}
	})

	t.Run("small payment is consumed entirely by interest", func(t *testing.T) {
		m := testMortgage()
		p := models.Payment{ID: "p1", MortgageID: m.ID, Amount: 100000, PaidDate: date(2025, time.March, 15)}

		bd := EstimateBreakdown(&p, m, []models.Payment{p})
		if bd.Interest != 100000 || bd.Escrow != 0 || bd.Principal != 0 {
			t.Errorf("breakdown = %+v, want all interest", bd)
		}
	})
}

func TestProject(t *testing.T) {
	asOf := date(2025, time.June, 1)

	tests := []struct {
		name             string
		principal        models.Cents
		payment          models.Cents
		monthlyRate      float64
		wantMonths       int
		wantInsufficient bool
	}{
		{"zero rate divides directly", 1200000, 100000, 0, 12, false},
		{"zero rate rounds partial months up", 1250000, 100000, 0, 13, false},
		// n = ln(200/(200-100)) / ln(1.01) = 69.66 -> 70
		{"standard amortization", 1000000, 20000, 0.01, 70, false},
		{"payment equal to interest never amortizes", 10000000, 100000, 0.01, 0, true},
		{"zero payment never amortizes", 1000000, 0, 0.01, 0, true},
		{"nothing left to pay", 0, 100000, 0.01, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := project(tt.principal, tt.payment, tt.monthlyRate, asOf)
			if got.InsufficientPayment != tt.wantInsufficient {
				t.Fatalf("insufficient = %v, want %v", got.InsufficientPayment, tt.wantInsufficient)
			}
			if tt.wantInsufficient {
				return
			}
			if got.Months != tt.wantMonths {
				t.Errorf("months = %d, want %d", got.Months, tt.wantMonths)
			}
			if want := asOf.AddDate(0, tt.wantMonths, 0); !got.PayoffDate.Equal(want) {
				t.Errorf("payoffDate = %v, want %v", got.PayoffDate, want)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	asOf := date(2025, time.May, 1)

	t.Run("zero-rate baseline equals principal over scheduled P&I", func(t *testing.T) {
		m := testMortgage()
		m.InterestRateAPY = 0
		m.CurrentPrincipal = 1200000
		m.ScheduledPayment = 120000
		m.EscrowTaxes = 20000 // P&I = 100,000

		stats := ComputeStats(m, nil, nil, testPeople, asOf)
		if stats.Baseline.InsufficientPayment {
			t.Fatal("unexpected insufficient payment")
		}
		if stats.Baseline.Months != 12 {
			t.Errorf("baseline months = %d, want 12", stats.Baseline.Months)
		}
	})

	t.Run("ytd and lifetime figures from breakdowns", func(t *testing.T) {
		m := testMortgage()
		payments := []models.Payment{
			{ID: "p1", MortgageID: m.ID, Amount: 200000, PaidDate: date(2024, time.December, 15)},
			{ID: "p2", MortgageID: m.ID, Amount: 200000, PaidDate: date(2025, time.January, 15)},
			{ID: "p3", MortgageID: m.ID, Amount: 200000, PaidDate: date(2025, time.February, 15)},
		}
		breakdowns := map[string]PaymentBreakdown{
			"p1": {Principal: 40000, Interest: 150000, Escrow: 10000},
			"p2": {Principal: 45000, Interest: 145000, Escrow: 10000},
			"p3": {Principal: 50000, Interest: 140000, Escrow: 10000},
		}

		stats := ComputeStats(m, payments, breakdowns, testPeople, asOf)
		if stats.YTDPrincipal != 95000 {
			t.Errorf("ytd principal = %d, want 95000", stats.YTDPrincipal)
		}
		if stats.YTDInterest != 285000 {
			t.Errorf("ytd interest = %d, want 285000", stats.YTDInterest)
		}
		if stats.YTDEscrow != 20000 {
			t.Errorf("ytd escrow = %d, want 20000", stats.YTDEscrow)
		}
		if stats.LifetimePrincipal != 135000 {
			t.Errorf("lifetime principal = %d, want 135000", stats.LifetimePrincipal)
		}
		// 135,000 / 40,000,000 * 100
		if got, want := stats.PercentPaid, 0.3375; got != want {
			t.Errorf("percentPaid = %v, want %v", got, want)
		}
	})

	t.Run("trailing extra principal averages the three best months", func(t *testing.T) {
		m := testMortgage()
		m.ScheduledPayment = 100000
		m.InterestRateAPY = 0 // keep projection simple; extra comes from breakdowns
		payments := []models.Payment{
			{ID: "p1", MortgageID: m.ID, Amount: 150000, PaidDate: date(2025, time.January, 15)},
			{ID: "p2", MortgageID: m.ID, Amount: 120000, PaidDate: date(2025, time.February, 15)},
			{ID: "p3", MortgageID: m.ID, Amount: 90000, PaidDate: date(2025, time.March, 15)},
			{ID: "p4", MortgageID: m.ID, Amount: 180000, PaidDate: date(2025, time.April, 15)},
		}
		breakdowns := map[string]PaymentBreakdown{
			"p1": {Principal: 150000},
			"p2": {Principal: 120000},
			"p3": {Principal: 90000},
			"p4": {Principal: 180000},
		}

		stats := ComputeStats(m, payments, breakdowns, testPeople, asOf)
		// Top three months: 180,000, 150,000, 120,000; scheduled P&I 100,000.
		// Extras 80,000 + 50,000 + 20,000 averaged = 50,000.
		if stats.TrailingExtraPrincipal != 50000 {
			t.Errorf("trailing extra = %d, want 50000", stats.TrailingExtraPrincipal)
		}
	})

	t.Run("contributions rank people by total descending", func(t *testing.T) {
		m := testMortgage()
		payments := []models.Payment{
			// Derived 50/50 split.
			{ID: "p1", MortgageID: m.ID, Amount: 200000, PaidDate: date(2025, time.January, 15)},
			// Explicit allocation entirely to bob.
			{
				ID: "p2", MortgageID: m.ID, Amount: 200000, PaidDate: date(2025, time.February, 15),
				Allocations: []models.PaymentAllocation{{PersonID: "bob", Amount: 200000}},
			},
			// Last year: lifetime only.
			{ID: "p3", MortgageID: m.ID, Amount: 100000, PaidDate: date(2024, time.June, 15)},
		}

		stats := ComputeStats(m, payments, EstimateBreakdowns(m, payments), testPeople, asOf)

		if len(stats.ContributionsYTD) != 2 {
			t.Fatalf("ytd contributions = %v, want 2 entries", stats.ContributionsYTD)
		}
		if stats.ContributionsYTD[0].PersonID != "bob" || stats.ContributionsYTD[0].Total != 300000 {
			t.Errorf("top ytd = %+v, want bob/300000", stats.ContributionsYTD[0])
		}
		if stats.ContributionsYTD[1].PersonID != "alice" || stats.ContributionsYTD[1].Total != 100000 {
			t.Errorf("second ytd = %+v, want alice/100000", stats.ContributionsYTD[1])
		}

		if stats.ContributionsLifetime[0].Total != 300000+50000 {
			t.Errorf("top lifetime = %+v, want bob/350000", stats.ContributionsLifetime[0])
		}
	})
}
